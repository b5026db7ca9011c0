package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"smartisp.net/console/internal/models"
	"smartisp.net/console/internal/support"
)

type TicketStatusRequest struct {
	Status models.TicketStatus `json:"status"`
}

func (h *Handler) GetTickets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list := h.svc.Support.ListTickets(support.TicketFilter{Status: q.Get("status"), Query: q.Get("q")})
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: list})
}

func (h *Handler) GetTicketStats(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: h.svc.Support.Stats()})
}

func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Support.Ticket(mux.Vars(r)["id"])
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: t})
}

func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req models.SupportTicket
	if err := decode(r, &req); err != nil {
		h.sendError(w, err)
		return
	}

	t, err := h.svc.Support.CreateTicket(req)
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusCreated, Response{Success: true, Message: "Ticket created", Data: t})
}

func (h *Handler) UpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	var req TicketStatusRequest
	if err := decode(r, &req); err != nil {
		h.sendError(w, err)
		return
	}

	t, err := h.svc.Support.SetTicketStatus(mux.Vars(r)["id"], req.Status)
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Ticket updated", Data: t})
}

func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Support.DeleteTicket(mux.Vars(r)["id"], confirmed(r)); err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Ticket deleted"})
}

func (h *Handler) GetAnnouncements(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: h.svc.Support.Announcements()})
}

func (h *Handler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req models.Announcement
	if err := decode(r, &req); err != nil {
		h.sendError(w, err)
		return
	}

	a, err := h.svc.Support.CreateAnnouncement(req)
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusCreated, Response{Success: true, Message: "Announcement published", Data: a})
}

func (h *Handler) ToggleAnnouncement(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Support.ToggleAnnouncementActive(mux.Vars(r)["id"])
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: a})
}
