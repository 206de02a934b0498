package project

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sydlexius/scplabel/internal/label"
)

// Bundle file layout. A bundle is a zip holding the project metadata
// plus an optional rendered preview image.
const (
	bundleConfigName  = "config.json"
	bundlePreviewName = "preview.png"
)

type bundleMeta struct {
	Name   string       `json:"name"`
	Config label.Config `json:"config"`
}

// WriteBundle serializes a project, and optionally a rendered preview,
// into a portable bundle.
func WriteBundle(w io.Writer, p *Project, preview []byte) error {
	zw := zip.NewWriter(w)

	cfg, err := zw.Create(bundleConfigName)
	if err != nil {
		return fmt.Errorf("creating bundle entry: %w", err)
	}
	enc := json.NewEncoder(cfg)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bundleMeta{Name: p.Name, Config: p.Config}); err != nil {
		return fmt.Errorf("encoding bundle config: %w", err)
	}

	if len(preview) > 0 {
		img, err := zw.Create(bundlePreviewName)
		if err != nil {
			return fmt.Errorf("creating preview entry: %w", err)
		}
		if _, err := img.Write(preview); err != nil {
			return fmt.Errorf("writing preview: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing bundle: %w", err)
	}
	return nil
}

// ReadBundle parses a bundle back into an unsaved Project. The caller
// decides whether to persist it.
func ReadBundle(r io.ReaderAt, size int64) (*Project, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening bundle: %w", err)
	}

	f, err := zr.Open(bundleConfigName)
	if err != nil {
		return nil, fmt.Errorf("bundle has no %s: %w", bundleConfigName, err)
	}
	defer f.Close() //nolint:errcheck

	var meta bundleMeta
	if err := json.NewDecoder(f).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decoding bundle config: %w", err)
	}
	if meta.Name == "" {
		return nil, fmt.Errorf("bundle config has no project name")
	}

	meta.Config.Clamp()
	if err := meta.Config.Validate(); err != nil {
		return nil, err
	}
	return &Project{Name: meta.Name, Config: meta.Config}, nil
}
