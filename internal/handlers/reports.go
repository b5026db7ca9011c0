package handlers

import (
	"bytes"
	"net/http"

	"smartisp.net/console/internal/export"
	"smartisp.net/console/internal/reports"
)

func (h *Handler) GetReportSummary(w http.ResponseWriter, r *http.Request) {
	name, points := h.svc.Reports.Series(r.URL.Query().Get("timeframe"))
	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"timeframe":    name,
			"timeframes":   h.svc.Reports.Timeframes(),
			"series":       points,
			"totals":       h.svc.Reports.Totals(name),
			"distribution": h.svc.Reports.Distribution(),
		},
	})
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list := h.svc.Reports.Transactions(reports.TransactionFilter{Type: q.Get("type"), Query: q.Get("q")})
	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"transactions": list,
			"flow":         reports.Flow(list),
		},
	})
}

// ExportReport renders the report in full before answering so a failed
// export still gets a JSON error.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = export.FormatPDF
	}

	var buf bytes.Buffer
	if err := h.svc.Reports.Export(r.Context(), &buf, format, q.Get("timeframe")); err != nil {
		h.sendError(w, err)
		return
	}
	sendFile(w, format, "financial-report", buf.Bytes())
}
