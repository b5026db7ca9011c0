package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"smartisp.net/console/internal/mikrotik"
	"smartisp.net/console/internal/models"
)

const logWriteTimeout = 5 * time.Second

func (h *Handler) GetRouterLogs(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: h.svc.Routers.Logs()})
}

// StreamRouterLogs upgrades to a websocket and pushes heartbeat entries until
// the client goes away.
func (h *Handler) StreamRouterLogs(w http.ResponseWriter, r *http.Request) {
	routerID := mux.Vars(r)["id"]
	if _, err := h.svc.Routers.Router(routerID); err != nil {
		h.sendError(w, err)
		return
	}
	if h.svc.Routers.Watching(routerID) {
		h.sendError(w, mikrotik.ErrAlreadyWatching)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", "router_id", routerID, "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The feed only writes; a read error means the client closed.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.logger.Info("Router log stream opened", "router_id", routerID)
	err = h.svc.Routers.WatchLogs(ctx, routerID, func(entry models.RouterLog) error {
		conn.SetWriteDeadline(time.Now().Add(logWriteTimeout))
		return conn.WriteJSON(entry)
	})
	switch {
	case errors.Is(err, context.Canceled):
	case errors.Is(err, mikrotik.ErrAlreadyWatching):
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
			time.Now().Add(logWriteTimeout))
	default:
		h.logger.Warn("Router log stream ended", "router_id", routerID, "error", err)
	}
	h.logger.Info("Router log stream closed", "router_id", routerID)
}
