package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"smartisp.net/console/internal/clients"
	"smartisp.net/console/internal/models"
)

type CollectRequest struct {
	Amount int64 `json:"amount"`
}

func (h *Handler) GetClients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list := h.svc.Clients.List(clients.ClientFilter{Type: q.Get("type"), Query: q.Get("q")})
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: list})
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Clients.Get(mux.Vars(r)["id"])
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: c})
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req models.Client
	if err := decode(r, &req); err != nil {
		h.sendError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" {
		h.sendJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Client name and phone are required"})
		return
	}

	c := h.svc.Clients.Create(req)
	h.sendJSON(w, http.StatusCreated, Response{Success: true, Message: "Client added", Data: c})
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var patch clients.ClientPatch
	if err := decode(r, &patch); err != nil {
		h.sendError(w, err)
		return
	}

	c, err := h.svc.Clients.Update(mux.Vars(r)["id"], patch)
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Client updated", Data: c})
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clients.Delete(mux.Vars(r)["id"], confirmed(r)); err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Client deleted"})
}

func (h *Handler) ToggleClientStatus(w http.ResponseWriter, r *http.Request) {
	h.clientAction(w, r, h.svc.Clients.ToggleStatus, "Status updated")
}

func (h *Handler) SuspendToggleClient(w http.ResponseWriter, r *http.Request) {
	h.clientAction(w, r, h.svc.Clients.SuspendToggle, "Suspension updated")
}

func (h *Handler) RenewClient(w http.ResponseWriter, r *http.Request) {
	h.clientAction(w, r, h.svc.Clients.Renew, "Client renewed for 30 days")
}

func (h *Handler) CollectPayment(w http.ResponseWriter, r *http.Request) {
	var req CollectRequest
	if err := decode(r, &req); err != nil {
		h.sendError(w, err)
		return
	}

	c, err := h.svc.Clients.CollectPayment(mux.Vars(r)["id"], req.Amount)
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Payment collected", Data: c})
}

func (h *Handler) clientAction(w http.ResponseWriter, r *http.Request, fn func(string) (models.Client, error), msg string) {
	c, err := fn(mux.Vars(r)["id"])
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: msg, Data: c})
}

// GetDashboardSummary gathers the dashboard cards from every module.
func (h *Handler) GetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"clients":  h.svc.Clients.Summary(),
			"invoices": h.svc.Billing.Stats(),
			"tickets":  h.svc.Support.Stats(),
			"routers":  len(h.svc.Routers.Routers()),
			"revenue":  h.svc.Reports.Totals(r.URL.Query().Get("timeframe")),
		},
	})
}

func (h *Handler) GetDashboardSegment(w http.ResponseWriter, r *http.Request) {
	seg := clients.Segment(mux.Vars(r)["kind"])
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: h.svc.Clients.Segment(seg)})
}
