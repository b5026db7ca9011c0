package mikrotik

import (
	"context"
	"time"

	"smartisp.net/console/internal/ids"
	"smartisp.net/console/internal/models"
)

const (
	maxLogs          = 50
	heartbeatMessage = "Monitoring active session heartbeat..."
)

// Logs returns the system log. Heartbeats are added at the front; the
// seeded entries keep their original order behind them.
func (m *Manager) Logs() []models.RouterLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.RouterLog(nil), m.logs...)
}

// Watching reports whether a log feed is running for the router.
func (m *Manager) Watching(routerID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.watching[routerID]
	return ok
}

// WatchLogs appends a heartbeat entry to the log every log interval and
// passes it to emit, until ctx is done or emit fails. Only one feed may run
// per router.
func (m *Manager) WatchLogs(ctx context.Context, routerID string, emit func(models.RouterLog) error) error {
	m.mu.Lock()
	if _, ok := m.routers.get(routerID); !ok {
		m.mu.Unlock()
		return ErrRouterNotFound
	}
	if _, ok := m.watching[routerID]; ok {
		m.mu.Unlock()
		return ErrAlreadyWatching
	}
	m.watching[routerID] = struct{}{}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.watching, routerID)
		m.mu.Unlock()
	}()

	ticker := m.clock.NewTicker(m.logInterval)
	defer ticker.Stop()

	m.logger.Debug("Log feed started", "router_id", routerID)
	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("Log feed stopped", "router_id", routerID)
			return ctx.Err()
		case at := <-ticker.C():
			entry := m.appendHeartbeat(at)
			if emit == nil {
				continue
			}
			if err := emit(entry); err != nil {
				return err
			}
		}
	}
}

func (m *Manager) appendHeartbeat(at time.Time) models.RouterLog {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := models.RouterLog{
		ID:      ids.Base36(m.rng, 5),
		Time:    at.Format("15:04:05"),
		Topics:  "system,info",
		Message: heartbeatMessage,
		Type:    "info",
	}
	next := append([]models.RouterLog{entry}, m.logs...)
	if len(next) > maxLogs {
		next = next[:maxLogs]
	}
	m.logs = next
	return entry
}
