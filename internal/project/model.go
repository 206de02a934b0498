// Package project stores named label configurations and packages them
// into portable bundle files.
package project

import (
	"time"

	"github.com/sydlexius/scplabel/internal/label"
)

// Project is a saved label configuration with a user-facing name.
type Project struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Config    label.Config `json:"config"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
