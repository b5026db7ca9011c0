package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartisp.net/console/internal/models"
)

func TestStreamRouterLogs(t *testing.T) {
	e := newEnv(t)
	srv := httptest.NewServer(e.router())
	defer srv.Close()

	before := len(e.svc.Routers.Logs())
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/mikrotik/routers/1/logs/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	e.clock.BlockUntil(1)
	assert.True(t, e.svc.Routers.Watching("1"))

	rec, _ := e.do(t, http.MethodGet, "/api/mikrotik/routers/1/logs/stream", nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "one feed per router")

	for i := 0; i < 2; i++ {
		e.clock.Advance(logInterval)
		var entry models.RouterLog
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		require.NoError(t, conn.ReadJSON(&entry))
		assert.Equal(t, "Monitoring active session heartbeat...", entry.Message)
	}
	assert.Len(t, e.svc.Routers.Logs(), before+2)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return !e.svc.Routers.Watching("1") }, 5*time.Second, 10*time.Millisecond)
}

func TestStreamRouterLogsUnknownRouter(t *testing.T) {
	e := newEnv(t)
	rec, resp := e.do(t, http.MethodGet, "/api/mikrotik/routers/nope/logs/stream", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "router not found", resp.Error)
}

func TestGetRouterLogs(t *testing.T) {
	e := newEnv(t)
	_, resp := e.do(t, http.MethodGet, "/api/mikrotik/logs", nil)
	var logs []models.RouterLog
	into(t, resp, &logs)
	assert.Equal(t, e.svc.Routers.Logs(), logs)
}
