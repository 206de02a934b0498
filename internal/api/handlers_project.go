package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sydlexius/scplabel/internal/imaging"
	"github.com/sydlexius/scplabel/internal/label"
	"github.com/sydlexius/scplabel/internal/project"
)

func (r *Router) handleListProjects(w http.ResponseWriter, req *http.Request) {
	projects, err := r.projectService.List(req.Context())
	if err != nil {
		writeProjectError(w, err)
		return
	}
	if projects == nil {
		projects = []project.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (r *Router) handleCreateProject(w http.ResponseWriter, req *http.Request) {
	var p project.Project
	if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p.ID = ""
	if err := r.projectService.Create(req.Context(), &p); err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (r *Router) handleGetProject(w http.ResponseWriter, req *http.Request) {
	p, err := r.projectService.GetByID(req.Context(), req.PathValue("id"))
	if err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (r *Router) handleUpdateProject(w http.ResponseWriter, req *http.Request) {
	var p project.Project
	if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p.ID = req.PathValue("id")
	if err := r.projectService.Update(req.Context(), &p); err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (r *Router) handleDeleteProject(w http.ResponseWriter, req *http.Request) {
	if err := r.projectService.Delete(req.Context(), req.PathValue("id")); err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleExportProject streams a portable bundle holding the project
// configuration and a freshly rendered PNG preview.
func (r *Router) handleExportProject(w http.ResponseWriter, req *http.Request) {
	p, err := r.projectService.GetByID(req.Context(), req.PathValue("id"))
	if err != nil {
		writeProjectError(w, err)
		return
	}

	var preview []byte
	if store := r.assets.Store(); store != nil {
		cfg := p.Config
		cfg.ImagePath = ""
		if img, renderErr := r.composer.Compose(cfg, store, nil); renderErr == nil {
			var buf bytes.Buffer
			if encErr := imaging.Encode(&buf, img, label.FormatPNG, 0); encErr == nil {
				preview = buf.Bytes()
			}
		} else {
			r.logger.Warn("bundle preview render failed", "project", p.ID, "error", renderErr)
		}
	}

	var bundle bytes.Buffer
	if err := project.WriteBundle(&bundle, p, preview); err != nil {
		writeError(w, http.StatusInternalServerError, "building bundle")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", p.Name+".scplabel"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(bundle.Bytes())
}

func (r *Router) handleImportProject(w http.ResponseWriter, req *http.Request) {
	data, err := io.ReadAll(io.LimitReader(req.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading bundle")
		return
	}

	p, err := project.ReadBundle(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := r.projectService.Create(req.Context(), p); err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}
