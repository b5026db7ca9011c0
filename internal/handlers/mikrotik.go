package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"smartisp.net/console/internal/mikrotik"
	"smartisp.net/console/internal/models"
)

func (h *Handler) GetRouters(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: h.svc.Routers.Routers()})
}

func (h *Handler) GetRouter(w http.ResponseWriter, r *http.Request) {
	rt, err := h.svc.Routers.Router(mux.Vars(r)["id"])
	respond(h, w, rt, err, "")
}

func (h *Handler) AddRouter(w http.ResponseWriter, r *http.Request) {
	var req mikrotik.NewRouter
	if err := decode(r, &req); err != nil {
		h.sendError(w, err)
		return
	}

	rt, err := h.svc.Routers.AddRouter(req)
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusCreated, Response{Success: true, Message: "Router added", Data: rt})
}

func (h *Handler) DeleteRouter(w http.ResponseWriter, r *http.Request) {
	h.deleted(w, h.svc.Routers.DeleteRouter(mux.Vars(r)["id"], confirmed(r)), "Router removed")
}

func (h *Handler) GetPPPoESecrets(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: h.svc.Routers.PPPoESecrets()})
}

func (h *Handler) TogglePPPoE(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Routers.TogglePPPoE(mux.Vars(r)["id"])
	respond(h, w, s, err, "")
}

func (h *Handler) SavePPPoE(w http.ResponseWriter, r *http.Request) {
	var req models.PPPoESecret
	if err := decode(r, &req); err != nil {
		h.sendError(w, err)
		return
	}
	req.ID = mux.Vars(r)["id"]
	s, err := h.svc.Routers.SavePPPoE(req)
	respond(h, w, s, err, "PPPoE secret saved")
}

func (h *Handler) DeletePPPoE(w http.ResponseWriter, r *http.Request) {
	h.deleted(w, h.svc.Routers.DeletePPPoE(mux.Vars(r)["id"], confirmed(r)), "PPPoE secret deleted")
}

func (h *Handler) GetHotspotServers(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: h.svc.Routers.HotspotServers()})
}

func (h *Handler) ToggleHotspotServer(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Routers.ToggleHotspot(mux.Vars(r)["id"])
	respond(h, w, s, err, "")
}

func (h *Handler) SaveHotspotServer(w http.ResponseWriter, r *http.Request) {
	var req models.HotspotServer
	if err := decode(r, &req); err != nil {
		h.sendError(w, err)
		return
	}
	req.ID = mux.Vars(r)["id"]
	s, err := h.svc.Routers.SaveHotspot(req)
	respond(h, w, s, err, "Hotspot server saved")
}

func (h *Handler) DeleteHotspotServer(w http.ResponseWriter, r *http.Request) {
	h.deleted(w, h.svc.Routers.DeleteHotspot(mux.Vars(r)["id"], confirmed(r)), "Hotspot server deleted")
}

func (h *Handler) GetFirewallRules(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: h.svc.Routers.FirewallRules()})
}

func (h *Handler) ToggleFirewallRule(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.Routers.ToggleFirewall(mux.Vars(r)["id"])
	respond(h, w, f, err, "")
}

func (h *Handler) SaveFirewallRule(w http.ResponseWriter, r *http.Request) {
	var req models.FirewallRule
	if err := decode(r, &req); err != nil {
		h.sendError(w, err)
		return
	}
	req.ID = mux.Vars(r)["id"]
	f, err := h.svc.Routers.SaveFirewall(req)
	respond(h, w, f, err, "Firewall rule saved")
}

func (h *Handler) DeleteFirewallRule(w http.ResponseWriter, r *http.Request) {
	h.deleted(w, h.svc.Routers.DeleteFirewall(mux.Vars(r)["id"], confirmed(r)), "Firewall rule deleted")
}

func respond[T any](h *Handler, w http.ResponseWriter, v T, err error, msg string) {
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: msg, Data: v})
}

func (h *Handler) deleted(w http.ResponseWriter, err error, msg string) {
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: msg})
}
