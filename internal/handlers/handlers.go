package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"smartisp.net/console/internal/auth"
	"smartisp.net/console/internal/billing"
	"smartisp.net/console/internal/clients"
	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/export"
	"smartisp.net/console/internal/mikrotik"
	"smartisp.net/console/internal/reports"
	"smartisp.net/console/internal/settings"
	"smartisp.net/console/internal/support"
	"smartisp.net/console/internal/vouchers"
	"smartisp.net/console/pkg/logger"
)

const Version = "1.0.0"

// Services are the console modules the API serves.
type Services struct {
	Auth     *auth.Service
	Clients  *clients.Registry
	Vouchers *vouchers.Engine
	Billing  *billing.Ledger
	Support  *support.Desk
	Settings *settings.Service
	Routers  *mikrotik.Manager
	Reports  *reports.Service
}

// Pinger reports the health of the store backend.
type Pinger func(ctx context.Context) error

type Handler struct {
	svc      Services
	backend  string
	ping     Pinger
	clock    clock.Clock
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// New wires the handlers. ping may be nil for the in-memory backend.
func New(svc Services, backend string, ping Pinger, clk clock.Clock, l *logger.Logger) *Handler {
	return &Handler{
		svc:     svc,
		backend: backend,
		ping:    ping,
		clock:   clk,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: l.With("component", "http"),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (h *Handler) sendJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) sendError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", "error", err)
		msg = "Internal server error"
	}
	h.sendJSON(w, status, Response{Success: false, Error: msg})
}

var (
	notFound = []error{
		clients.ErrClientNotFound, vouchers.ErrPackageNotFound, vouchers.ErrTemplateNotFound,
		billing.ErrInvoiceNotFound, support.ErrTicketNotFound, support.ErrAnnouncementNotFound,
		settings.ErrPresetNotFound, mikrotik.ErrRouterNotFound, mikrotik.ErrEntryNotFound,
	}
	badRequest = []error{
		clients.ErrInvalidDate, vouchers.ErrNoPackageSelected, vouchers.ErrInvalidCount,
		vouchers.ErrTemplateNameRequired, billing.ErrClientRequired, support.ErrInvalidStatus,
		support.ErrSubjectRequired, support.ErrTitleRequired, settings.ErrInvalidPatch,
		mikrotik.ErrRouterFieldsRequired, export.ErrUnsupportedFormat, errBadRequest,
	}
	conflict = []error{
		clients.ErrConfirmationRequired, vouchers.ErrConfirmationRequired,
		support.ErrConfirmationRequired, mikrotik.ErrConfirmationRequired,
		mikrotik.ErrAlreadyWatching, reports.ErrExportInProgress, auth.ErrLoginInProgress,
	}
	unauthorized = []error{auth.ErrInvalidCredentials, auth.ErrInvalidToken}
)

var errBadRequest = errors.New("invalid request body")

func statusFor(err error) int {
	for _, group := range []struct {
		errs   []error
		status int
	}{
		{notFound, http.StatusNotFound},
		{badRequest, http.StatusBadRequest},
		{conflict, http.StatusConflict},
		{unauthorized, http.StatusUnauthorized},
	} {
		for _, target := range group.errs {
			if errors.Is(err, target) {
				return group.status
			}
		}
	}
	return http.StatusInternalServerError
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadRequest
	}
	return nil
}

func readBody(r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || len(raw) == 0 {
		return nil, errBadRequest
	}
	return raw, nil
}

// confirmed reads the ?confirm=true guard on destructive requests.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	storeStatus := "connected"
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			storeStatus = "disconnected"
		}
	}

	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Smart ISP console API is running",
		Data: map[string]interface{}{
			"version":   Version,
			"timestamp": h.clock.Now().Format(time.RFC3339),
			"store":     h.backend,
			"status":    storeStatus,
		},
	})
}
