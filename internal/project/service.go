package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no project matches the requested ID.
var ErrNotFound = errors.New("project not found")

const projectColumns = `id, name, config, created_at, updated_at`

// Service provides project data operations.
type Service struct {
	db *sql.DB
}

// NewService creates a project service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Create inserts a new project. The configuration is clamped before it
// is stored.
func (s *Service) Create(ctx context.Context, p *Project) error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	p.Config.Clamp()
	if err := p.Config.Validate(); err != nil {
		return err
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	cfg, err := json.Marshal(p.Config)
	if err != nil {
		return fmt.Errorf("encoding project config: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, config, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		p.ID, p.Name, string(cfg),
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by primary key.
func (s *Service) GetByID(ctx context.Context, id string) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting project by id: %w", err)
	}
	return p, nil
}

// List returns all projects ordered by most recently updated.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// Update modifies an existing project's name and configuration.
func (s *Service) Update(ctx context.Context, p *Project) error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	p.Config.Clamp()
	if err := p.Config.Validate(); err != nil {
		return err
	}

	p.UpdatedAt = time.Now().UTC()

	cfg, err := json.Marshal(p.Config)
	if err != nil {
		return fmt.Errorf("encoding project config: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE projects SET name = ?, config = ?, updated_at = ?
		WHERE id = ?
	`,
		p.Name, string(cfg), p.UpdatedAt.Format(time.RFC3339), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
	}
	return nil
}

// Delete removes a project by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*Project, error) {
	var (
		p         Project
		cfg       string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&p.ID, &p.Name, &cfg, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(cfg), &p.Config); err != nil {
		return nil, fmt.Errorf("decoding project config: %w", err)
	}
	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
