package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sydlexius/scplabel/internal/label"
	"github.com/sydlexius/scplabel/internal/project"
	"github.com/sydlexius/scplabel/internal/version"
)

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (r *Router) handleVersion(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": version.Version,
		"commit":  version.Commit,
	})
}

// writeRenderError maps a render failure to an HTTP status, surfacing
// the error kind so clients can distinguish bad input from server
// trouble.
func (r *Router) writeRenderError(w http.ResponseWriter, err error) {
	var lerr *label.Error
	if errors.As(err, &lerr) {
		status := http.StatusInternalServerError
		switch lerr.Kind {
		case label.KindInvalidConfig, label.KindInvalidFormat, label.KindImageLoading, label.KindNoImageSelected:
			status = http.StatusBadRequest
		case label.KindAssetLoading:
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]string{
			"error": lerr.Error(),
			"kind":  lerr.Kind.String(),
		})
		return
	}
	r.logger.Warn("render failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
}

func writeProjectError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, project.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		var lerr *label.Error
		if errors.As(err, &lerr) && lerr.Kind == label.KindInvalidConfig {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}
