package handlers

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"

	"smartisp.net/console/internal/billing"
)

func (h *Handler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list := h.svc.Billing.List(billing.InvoiceFilter{Status: q.Get("status"), Query: q.Get("q")})
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: list})
}

func (h *Handler) GetInvoiceStats(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: h.svc.Billing.Stats()})
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Billing.Get(mux.Vars(r)["id"])
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: inv})
}

func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req billing.Payment
	if err := decode(r, &req); err != nil {
		h.sendError(w, err)
		return
	}

	inv, err := h.svc.Billing.RecordPayment(req)
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusCreated, Response{Success: true, Message: "Payment recorded", Data: inv})
}

// PrintInvoice serves the printable invoice page.
func (h *Handler) PrintInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Billing.Get(mux.Vars(r)["id"])
	if err != nil {
		h.sendError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := billing.RenderInvoice(&buf, inv, h.svc.Settings.Company()); err != nil {
		h.sendError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
