package api

import (
	"bytes"
	"encoding/json"
	"image"
	"mime"
	"net/http"
	"strings"

	"github.com/sydlexius/scplabel/internal/imaging"
	"github.com/sydlexius/scplabel/internal/label"
)

const maxUploadBytes = 32 << 20

// parseRenderRequest accepts either a bare JSON config or a multipart
// form with a "config" JSON field and an optional "image" file.
func parseRenderRequest(req *http.Request) (label.Config, image.Image, error) {
	cfg := label.Default()

	ct, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if !strings.HasPrefix(ct, "multipart/") {
		if err := json.NewDecoder(req.Body).Decode(&cfg); err != nil {
			return cfg, nil, label.Wrap(label.KindInvalidConfig, err, "decoding render config")
		}
		return cfg, nil, nil
	}

	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return cfg, nil, label.Wrap(label.KindInvalidConfig, err, "parsing multipart form")
	}
	if raw := req.FormValue("config"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
			return cfg, nil, label.Wrap(label.KindInvalidConfig, err, "decoding render config")
		}
	}

	file, _, err := req.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return cfg, nil, nil
		}
		return cfg, nil, label.Wrap(label.KindImageLoading, err, "reading uploaded image")
	}
	defer file.Close() //nolint:errcheck

	img, err := imaging.Decode(file)
	if err != nil {
		return cfg, nil, label.Wrap(label.KindImageLoading, err, "decoding uploaded image")
	}
	return cfg, img, nil
}

func (r *Router) handleRender(w http.ResponseWriter, req *http.Request) {
	cfg, override, err := parseRenderRequest(req)
	if err != nil {
		r.writeRenderError(w, err)
		return
	}
	cfg.Clamp()
	if err := cfg.Validate(); err != nil {
		r.writeRenderError(w, err)
		return
	}
	// Uploaded images only; a server-side path in an API request is not
	// honored.
	cfg.ImagePath = ""

	store := r.assets.Store()
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "assets not loaded")
		return
	}

	img, err := r.composer.Compose(cfg, store, override)
	if err != nil {
		r.writeRenderError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, cfg.OutputFormat, cfg.OutputQuality); err != nil {
		r.writeRenderError(w, label.Wrap(label.KindImageSaving, err, "encoding render"))
		return
	}

	switch cfg.OutputFormat {
	case label.FormatJPEG:
		w.Header().Set("Content-Type", "image/jpeg")
	default:
		w.Header().Set("Content-Type", "image/png")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (r *Router) handleRenderGIF(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "parsing multipart form")
		return
	}

	cfg := label.Default()
	if raw := req.FormValue("config"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
			writeError(w, http.StatusBadRequest, "decoding render config")
			return
		}
	}
	cfg.Clamp()
	if err := cfg.Validate(); err != nil {
		r.writeRenderError(w, err)
		return
	}
	cfg.ImagePath = ""

	file, _, err := req.FormFile("gif")
	if err != nil {
		writeError(w, http.StatusBadRequest, "a gif file is required")
		return
	}
	defer file.Close() //nolint:errcheck

	store := r.assets.Store()
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "assets not loaded")
		return
	}

	var buf bytes.Buffer
	if err := r.composer.ComposeGIF(cfg, store, file, &buf); err != nil {
		r.writeRenderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/gif")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (r *Router) handleDefaults(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, label.Default())
}

type enumEntry struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

func (r *Router) handleListClasses(w http.ResponseWriter, req *http.Request) {
	classes := label.Classes()
	out := make([]enumEntry, 0, len(classes))
	for _, c := range classes {
		out = append(out, enumEntry{ID: string(c), DisplayName: c.DisplayName()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (r *Router) handleListHazards(w http.ResponseWriter, req *http.Request) {
	hazards := label.Hazards()
	out := make([]enumEntry, 0, len(hazards))
	for _, h := range hazards {
		out = append(out, enumEntry{ID: string(h), DisplayName: h.DisplayName()})
	}
	writeJSON(w, http.StatusOK, out)
}
