// Package mikrotik serves the router management views from sample data.
// Nothing in this package talks to a router: every change is local.
package mikrotik

import (
	"errors"
	"strings"
	"sync"
	"time"

	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/ids"
	"smartisp.net/console/internal/models"
	"smartisp.net/console/pkg/logger"
)

var (
	ErrRouterNotFound       = errors.New("router not found")
	ErrEntryNotFound        = errors.New("entry not found")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrRouterFieldsRequired = errors.New("router name and ip are required")
	ErrAlreadyWatching      = errors.New("router log feed already running")
)

// Inventory is the starting sample data.
type Inventory struct {
	Routers        []models.Router
	PPPoESecrets   []models.PPPoESecret
	HotspotServers []models.HotspotServer
	FirewallRules  []models.FirewallRule
	Logs           []models.RouterLog
}

type Manager struct {
	mu       sync.RWMutex
	routers  table[models.Router]
	pppoe    table[models.PPPoESecret]
	hotspot  table[models.HotspotServer]
	firewall table[models.FirewallRule]
	logs     []models.RouterLog
	watching map[string]struct{}

	clock       clock.Clock
	rng         ids.Source
	logInterval time.Duration
	logger      *logger.Logger
}

func NewManager(inv Inventory, clk clock.Clock, rng ids.Source, logInterval time.Duration, log *logger.Logger) *Manager {
	return &Manager{
		routers:     newTable(inv.Routers, func(r models.Router) string { return r.ID }),
		pppoe:       newTable(inv.PPPoESecrets, func(p models.PPPoESecret) string { return p.ID }),
		hotspot:     newTable(inv.HotspotServers, func(h models.HotspotServer) string { return h.ID }),
		firewall:    newTable(inv.FirewallRules, func(f models.FirewallRule) string { return f.ID }),
		logs:        append([]models.RouterLog(nil), inv.Logs...),
		watching:    make(map[string]struct{}),
		clock:       clk,
		rng:         rng,
		logInterval: logInterval,
		logger:      log.With("component", "mikrotik"),
	}
}

func (m *Manager) Routers() []models.Router {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.routers.list()
}

func (m *Manager) Router(id string) (models.Router, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.routers.get(id)
	if !ok {
		return models.Router{}, ErrRouterNotFound
	}
	return r, nil
}

// NewRouter is the add-router form. The password is accepted and dropped.
type NewRouter struct {
	Name     string `json:"name"`
	IP       string `json:"ip"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// AddRouter registers a router that shows as freshly connected.
func (m *Manager) AddRouter(in NewRouter) (models.Router, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.IP) == "" {
		return models.Router{}, ErrRouterFieldsRequired
	}

	m.mu.Lock()
	r := models.Router{
		ID:       ids.Base36(m.rng, 9),
		Name:     in.Name,
		IP:       in.IP,
		Username: in.Username,
		Status:   models.RouterConnected,
		CPU:      m.rng.IntN(20),
		Memory:   "256MB / 1024MB",
		Uptime:   "0h 01m",
		Interfaces: []models.InterfaceStats{
			{Name: "ether1", Type: "ether", Status: "up", RX: "0", TX: "0"},
		},
	}
	m.routers.add(r)
	m.mu.Unlock()

	m.logger.Info("Router added", "router_id", r.ID, "name", r.Name, "ip", r.IP)
	return r, nil
}

func (m *Manager) DeleteRouter(id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	m.mu.Lock()
	ok := m.routers.remove(id)
	m.mu.Unlock()
	if !ok {
		return ErrRouterNotFound
	}
	m.logger.Info("Router deleted", "router_id", id)
	return nil
}

func (m *Manager) PPPoESecrets() []models.PPPoESecret {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pppoe.list()
}

func (m *Manager) TogglePPPoE(id string) (models.PPPoESecret, error) {
	return m.mutatePPPoE(id, "PPPoE secret toggled", func(p models.PPPoESecret) models.PPPoESecret {
		p.Status = p.Status.Toggle()
		return p
	})
}

// SavePPPoE replaces the secret with the same id.
func (m *Manager) SavePPPoE(s models.PPPoESecret) (models.PPPoESecret, error) {
	return m.mutatePPPoE(s.ID, "PPPoE secret saved", func(models.PPPoESecret) models.PPPoESecret { return s })
}

func (m *Manager) DeletePPPoE(id string, confirmed bool) error {
	return m.remove(id, confirmed, "PPPoE secret deleted", m.pppoe.remove)
}

func (m *Manager) mutatePPPoE(id, msg string, fn func(models.PPPoESecret) models.PPPoESecret) (models.PPPoESecret, error) {
	m.mu.Lock()
	p, ok := m.pppoe.update(id, fn)
	m.mu.Unlock()
	if !ok {
		return models.PPPoESecret{}, ErrEntryNotFound
	}
	m.logger.Info(msg, "entry_id", id, "status", p.Status)
	return p, nil
}

func (m *Manager) HotspotServers() []models.HotspotServer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hotspot.list()
}

func (m *Manager) ToggleHotspot(id string) (models.HotspotServer, error) {
	return m.mutateHotspot(id, "Hotspot server toggled", func(h models.HotspotServer) models.HotspotServer {
		h.Status = h.Status.Toggle()
		return h
	})
}

func (m *Manager) SaveHotspot(h models.HotspotServer) (models.HotspotServer, error) {
	return m.mutateHotspot(h.ID, "Hotspot server saved", func(models.HotspotServer) models.HotspotServer { return h })
}

func (m *Manager) DeleteHotspot(id string, confirmed bool) error {
	return m.remove(id, confirmed, "Hotspot server deleted", m.hotspot.remove)
}

func (m *Manager) mutateHotspot(id, msg string, fn func(models.HotspotServer) models.HotspotServer) (models.HotspotServer, error) {
	m.mu.Lock()
	h, ok := m.hotspot.update(id, fn)
	m.mu.Unlock()
	if !ok {
		return models.HotspotServer{}, ErrEntryNotFound
	}
	m.logger.Info(msg, "entry_id", id, "status", h.Status)
	return h, nil
}

func (m *Manager) FirewallRules() []models.FirewallRule {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.firewall.list()
}

func (m *Manager) ToggleFirewall(id string) (models.FirewallRule, error) {
	return m.mutateFirewall(id, "Firewall rule toggled", func(f models.FirewallRule) models.FirewallRule {
		f.Status = f.Status.Toggle()
		return f
	})
}

func (m *Manager) SaveFirewall(f models.FirewallRule) (models.FirewallRule, error) {
	return m.mutateFirewall(f.ID, "Firewall rule saved", func(models.FirewallRule) models.FirewallRule { return f })
}

func (m *Manager) DeleteFirewall(id string, confirmed bool) error {
	return m.remove(id, confirmed, "Firewall rule deleted", m.firewall.remove)
}

func (m *Manager) mutateFirewall(id, msg string, fn func(models.FirewallRule) models.FirewallRule) (models.FirewallRule, error) {
	m.mu.Lock()
	f, ok := m.firewall.update(id, fn)
	m.mu.Unlock()
	if !ok {
		return models.FirewallRule{}, ErrEntryNotFound
	}
	m.logger.Info(msg, "entry_id", id, "status", f.Status)
	return f, nil
}

func (m *Manager) remove(id string, confirmed bool, msg string, fn func(string) bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	m.mu.Lock()
	ok := fn(id)
	m.mu.Unlock()
	if !ok {
		return ErrEntryNotFound
	}
	m.logger.Info(msg, "entry_id", id)
	return nil
}
