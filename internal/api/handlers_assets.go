package api

import (
	"net/http"

	"github.com/sydlexius/scplabel/internal/label"
)

// handleAssetInventory reports what the current asset snapshot holds,
// per class: whether a distinct alternate template exists and which
// hazard icons are present.
func (r *Router) handleAssetInventory(w http.ResponseWriter, req *http.Request) {
	store := r.assets.Store()
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "assets not loaded")
		return
	}

	type classAssets struct {
		Class        string   `json:"class"`
		HasAlternate bool     `json:"has_alternate"`
		Hazards      []string `json:"hazards"`
	}

	var out struct {
		Packs   []string      `json:"packs"`
		Classes []classAssets `json:"classes"`
	}
	out.Packs = store.Packs()
	if out.Packs == nil {
		out.Packs = []string{}
	}

	for _, class := range label.Classes() {
		ca := classAssets{
			Class:        string(class),
			HasAlternate: store.Template(class, true) != store.Template(class, false),
			Hazards:      []string{},
		}
		for _, h := range label.Hazards() {
			if h == label.HazardNone {
				continue
			}
			if store.Icon(class, h) != store.Placeholder() {
				ca.Hazards = append(ca.Hazards, string(h))
			}
		}
		out.Classes = append(out.Classes, ca)
	}
	writeJSON(w, http.StatusOK, out)
}

func (r *Router) handleReloadAssets(w http.ResponseWriter, req *http.Request) {
	if err := r.assets.Load(); err != nil {
		r.logger.Error("asset reload failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	store := r.assets.Store()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "reloaded",
		"packs":  store.Packs(),
	})
}
