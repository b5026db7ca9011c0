package mikrotik

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/ids"
	"smartisp.net/console/internal/models"
	"smartisp.net/console/internal/seed"
	"smartisp.net/console/pkg/logger"
)

const interval = 5 * time.Second

func newManager(t *testing.T) (*Manager, *clock.Fake) {
	t.Helper()
	d := seed.MustLoad()
	clk := clock.NewFake(time.Date(2024, 6, 21, 11, 5, 0, 0, time.UTC))
	inv := Inventory{
		Routers:        d.Routers,
		PPPoESecrets:   d.PPPoESecrets,
		HotspotServers: d.HotspotServers,
		FirewallRules:  d.FirewallRules,
		Logs:           d.RouterLogs,
	}
	return NewManager(inv, clk, ids.Seeded(9, 9), interval, logger.Discard()), clk
}

func TestAddAndDeleteRouter(t *testing.T) {
	m, _ := newManager(t)

	_, err := m.AddRouter(NewRouter{Name: "Branch"})
	assert.ErrorIs(t, err, ErrRouterFieldsRequired)

	r, err := m.AddRouter(NewRouter{Name: "Branch", IP: "10.0.0.1", Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.Len(t, r.ID, 9)
	assert.Equal(t, models.RouterConnected, r.Status)
	assert.GreaterOrEqual(t, r.CPU, 0)
	assert.Less(t, r.CPU, 20)
	assert.Equal(t, "256MB / 1024MB", r.Memory)
	require.Len(t, r.Interfaces, 1)
	assert.Equal(t, "ether1", r.Interfaces[0].Name)

	routers := m.Routers()
	require.Len(t, routers, 2)
	assert.Equal(t, r, routers[1], "appended")

	got, err := m.Router(r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, got)

	assert.ErrorIs(t, m.DeleteRouter(r.ID, false), ErrConfirmationRequired)
	require.NoError(t, m.DeleteRouter(r.ID, true))
	assert.ErrorIs(t, m.DeleteRouter(r.ID, true), ErrRouterNotFound)
	_, err = m.Router(r.ID)
	assert.ErrorIs(t, err, ErrRouterNotFound)
}

func TestToggleEntries(t *testing.T) {
	m, _ := newManager(t)

	p, err := m.TogglePPPoE("p2")
	require.NoError(t, err)
	assert.Equal(t, models.EntryEnabled, p.Status)
	p, err = m.TogglePPPoE("p2")
	require.NoError(t, err)
	assert.Equal(t, models.EntryDisabled, p.Status)

	h, err := m.ToggleHotspot("h1")
	require.NoError(t, err)
	assert.Equal(t, models.EntryDisabled, h.Status)
	assert.Equal(t, models.EntryDisabled, m.HotspotServers()[0].Status)

	f, err := m.ToggleFirewall("f3")
	require.NoError(t, err)
	assert.Equal(t, models.EntryDisabled, f.Status)

	_, err = m.TogglePPPoE("zz")
	assert.ErrorIs(t, err, ErrEntryNotFound)
	_, err = m.ToggleHotspot("zz")
	assert.ErrorIs(t, err, ErrEntryNotFound)
	_, err = m.ToggleFirewall("zz")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestSaveReplacesByID(t *testing.T) {
	m, _ := newManager(t)

	secret := m.PPPoESecrets()[0]
	secret.Profile = "50Mbps_Profile"
	secret.Password = "changed"
	saved, err := m.SavePPPoE(secret)
	require.NoError(t, err)
	assert.Equal(t, secret, saved)
	assert.Equal(t, secret, m.PPPoESecrets()[0])

	hs := models.HotspotServer{ID: "h2", Name: "guest", Interface: "wlan2", Profile: "default", Status: models.EntryEnabled, AddressPool: "guest-pool"}
	_, err = m.SaveHotspot(hs)
	require.NoError(t, err)
	assert.Equal(t, hs, m.HotspotServers()[1])

	rule := models.FirewallRule{ID: "f1", Chain: "forward", Action: "accept", Comment: "Unblocked", Status: models.EntryEnabled}
	_, err = m.SaveFirewall(rule)
	require.NoError(t, err)
	assert.Equal(t, rule, m.FirewallRules()[0])

	_, err = m.SaveFirewall(models.FirewallRule{ID: "f9"})
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.Len(t, m.FirewallRules(), 3)
}

func TestDeleteEntries(t *testing.T) {
	m, _ := newManager(t)

	assert.ErrorIs(t, m.DeletePPPoE("p1", false), ErrConfirmationRequired)
	require.NoError(t, m.DeletePPPoE("p1", true))
	assert.Len(t, m.PPPoESecrets(), 2)
	assert.ErrorIs(t, m.DeletePPPoE("p1", true), ErrEntryNotFound)

	require.NoError(t, m.DeleteHotspot("h2", true))
	assert.Len(t, m.HotspotServers(), 1)

	require.NoError(t, m.DeleteFirewall("f2", true))
	rules := m.FirewallRules()
	assert.Equal(t, []string{"f1", "f3"}, []string{rules[0].ID, rules[1].ID})
}

func TestWatchLogsEmitsHeartbeats(t *testing.T) {
	m, clk := newManager(t)
	ctx, cancel := context.WithCancel(context.Background())

	entries := make(chan models.RouterLog)
	done := make(chan error, 1)
	go func() {
		done <- m.WatchLogs(ctx, "1", func(l models.RouterLog) error {
			entries <- l
			return nil
		})
	}()

	clk.BlockUntil(1)
	assert.True(t, m.Watching("1"))

	for i := 0; i < 3; i++ {
		clk.Advance(interval)
		e := <-entries
		assert.Equal(t, heartbeatMessage, e.Message)
		assert.Equal(t, "system,info", e.Topics)
		assert.Equal(t, "info", e.Type)
	}

	logs := m.Logs()
	assert.Len(t, logs, 7)
	assert.Equal(t, heartbeatMessage, logs[0].Message)
	assert.Equal(t, "11:05:15", logs[0].Time)
	got := make([]string, 0, len(logs))
	for _, l := range logs[3:] {
		got = append(got, l.ID)
	}
	assert.Equal(t, []string{"l1", "l2", "l3", "l4"}, got, "heartbeats go in front of the seeded entries")
	for _, l := range logs[:3] {
		assert.Equal(t, heartbeatMessage, l.Message)
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.False(t, m.Watching("1"))
	assert.Equal(t, 0, clk.Waiters(), "ticker stopped")

	clk.Advance(time.Minute)
	assert.Len(t, m.Logs(), 7, "no entries after the feed stops")
}

func TestWatchLogsSingleFeedPerRouter(t *testing.T) {
	m, clk := newManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- m.WatchLogs(ctx, "1", nil) }()
	clk.BlockUntil(1)

	assert.ErrorIs(t, m.WatchLogs(context.Background(), "1", nil), ErrAlreadyWatching)
	assert.ErrorIs(t, m.WatchLogs(context.Background(), "missing", nil), ErrRouterNotFound)

	cancel()
	<-done

	ctx2, cancel2 := context.WithCancel(context.Background())
	go func() { done <- m.WatchLogs(ctx2, "1", nil) }()
	clk.BlockUntil(1)
	cancel2()
	assert.ErrorIs(t, <-done, context.Canceled, "a new feed may start once the old one ends")
}

func TestWatchLogsCapsAtFifty(t *testing.T) {
	m, clk := newManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan struct{})
	go func() {
		_ = m.WatchLogs(ctx, "1", func(models.RouterLog) error {
			got <- struct{}{}
			return nil
		})
	}()
	clk.BlockUntil(1)

	for i := 0; i < 60; i++ {
		clk.Advance(interval)
		<-got
	}
	logs := m.Logs()
	assert.Len(t, logs, maxLogs)
	for _, l := range logs {
		assert.Equal(t, heartbeatMessage, l.Message)
	}
}

func TestWatchLogsStopsOnEmitError(t *testing.T) {
	m, clk := newManager(t)
	closed := errors.New("connection closed")

	done := make(chan error, 1)
	go func() {
		done <- m.WatchLogs(context.Background(), "1", func(models.RouterLog) error { return closed })
	}()
	clk.BlockUntil(1)
	clk.Advance(interval)

	assert.ErrorIs(t, <-done, closed)
	assert.False(t, m.Watching("1"))
}
