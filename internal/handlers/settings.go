package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: h.svc.Settings.Company()})
}

// GetTheme returns the resolved login and hotspot page styles.
func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"login":   h.svc.Settings.LoginTheme(),
			"hotspot": h.svc.Settings.HotspotTheme(),
		},
	})
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	patch, err := readBody(r)
	if err != nil {
		h.sendError(w, err)
		return
	}

	company, err := h.svc.Settings.Update(patch)
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: company})
}

func (h *Handler) UpdateLoginConfig(w http.ResponseWriter, r *http.Request) {
	patch, err := readBody(r)
	if err != nil {
		h.sendError(w, err)
		return
	}

	cfg, err := h.svc.Settings.UpdateLoginConfig(patch)
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: cfg})
}

func (h *Handler) UpdateHotspotConfig(w http.ResponseWriter, r *http.Request) {
	patch, err := readBody(r)
	if err != nil {
		h.sendError(w, err)
		return
	}

	cfg, err := h.svc.Settings.UpdateHotspotConfig(patch)
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: cfg})
}

func (h *Handler) GetHotspotPresets(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: h.svc.Settings.PresetNames()})
}

func (h *Handler) ApplyHotspotPreset(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.Settings.ApplyHotspotPreset(mux.Vars(r)["name"])
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Preset applied", Data: cfg})
}

func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Settings.Save(r.Context()); err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Settings saved successfully"})
}
