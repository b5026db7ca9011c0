package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/kvstore"
	"smartisp.net/console/internal/models"
	"smartisp.net/console/internal/seed"
	"smartisp.net/console/pkg/logger"
)

const saveDelay = 800 * time.Millisecond

func newService(t *testing.T, kv kvstore.Store) (*Service, *clock.Fake) {
	t.Helper()
	if kv == nil {
		kv = kvstore.NewMemory()
	}
	d := seed.MustLoad()
	clk := clock.NewFake(time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC))
	return NewService(context.Background(), d.Company, d.HotspotPresets, kv, clk, saveDelay, logger.Discard()), clk
}

func TestUpdateMergesTopLevelFields(t *testing.T) {
	s, _ := newService(t, nil)
	before := s.Company()

	got, err := s.Update([]byte(`{"name":"Dhaka Net","currencySymbol":"Tk","loginConfig":{"cardRadius":12}}`))
	require.NoError(t, err)

	assert.Equal(t, "Dhaka Net", got.Name)
	assert.Equal(t, "Tk", got.CurrencySymbol)
	assert.Equal(t, before.Address, got.Address)
	assert.Equal(t, 12, got.LoginConfig.CardRadius)
	assert.Equal(t, before.LoginConfig.PrimaryColor, got.LoginConfig.PrimaryColor)
	assert.Equal(t, got, s.Company())
}

func TestUpdateRejectsBadPatch(t *testing.T) {
	s, _ := newService(t, nil)
	before := s.Company()

	_, err := s.Update([]byte(`{"name": 7}`))
	assert.ErrorIs(t, err, ErrInvalidPatch)
	assert.Equal(t, before, s.Company())

	_, err = s.UpdateLoginConfig([]byte(`not json`))
	assert.ErrorIs(t, err, ErrInvalidPatch)
	_, err = s.UpdateHotspotConfig([]byte(`[]`))
	assert.ErrorIs(t, err, ErrInvalidPatch)
}

func TestUpdateNestedConfigs(t *testing.T) {
	s, _ := newService(t, nil)

	login, err := s.UpdateLoginConfig([]byte(`{"bgType":"solid","bgColor":"#111111"}`))
	require.NoError(t, err)
	assert.Equal(t, models.BackgroundSolid, login.BgType)
	assert.Equal(t, models.PatternMesh, login.OverlayPattern)

	hs, err := s.UpdateHotspotConfig([]byte(`{"footerText":"Call 999","loginMode":"userpass","cardBlur":4}`))
	require.NoError(t, err)
	assert.Equal(t, "Call 999", hs.FooterText)
	assert.Equal(t, models.LoginModeUserPass, hs.LoginMode)
	assert.Equal(t, 4, hs.CardBlur)
	assert.True(t, hs.ShowPriceList)

	c := s.Company()
	assert.Equal(t, "#111111", c.LoginConfig.BgColor)
	assert.Equal(t, "Call 999", c.HotspotConfig.FooterText)
}

func TestApplyHotspotPreset(t *testing.T) {
	s, _ := newService(t, nil)
	assert.Equal(t, []string{"Royal Blue Glass", "Eco Green", "Dark Circuit", "Sunset Image"}, s.PresetNames())
	before := s.Company().HotspotConfig

	cfg, err := s.ApplyHotspotPreset("Dark Circuit")
	require.NoError(t, err)
	assert.Equal(t, models.BackgroundSolid, cfg.BgType)
	assert.Equal(t, "#0f172a", cfg.BgColor)
	assert.Equal(t, models.PatternCircuit, cfg.OverlayPattern)
	assert.Equal(t, 85, cfg.CardOpacity)
	assert.Equal(t, "#f42a41", cfg.PrimaryColor)
	assert.Equal(t, before.FooterText, cfg.FooterText, "fields outside the preset are kept")
	assert.Equal(t, before.BgImage, cfg.BgImage)
	assert.Equal(t, cfg, s.Company().HotspotConfig)

	_, err = s.ApplyHotspotPreset("Neon")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestSaveWaitsThenPersists(t *testing.T) {
	kv := kvstore.NewMemory()
	s, clk := newService(t, kv)
	_, err := s.Update([]byte(`{"name":"Saved Net"}`))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Save(context.Background()) }()

	clk.BlockUntil(1)
	_, found, _ := kv.Get(context.Background(), CompanyKey)
	assert.False(t, found, "nothing written before the delay")

	clk.Advance(saveDelay)
	require.NoError(t, <-done)

	reloaded, _ := newService(t, kv)
	assert.Equal(t, "Saved Net", reloaded.Company().Name)
	assert.Equal(t, s.Company(), reloaded.Company())
}

func TestSaveCancelled(t *testing.T) {
	kv := kvstore.NewMemory()
	s, clk := newService(t, kv)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Save(ctx) }()
	clk.BlockUntil(1)
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	_, found, _ := kv.Get(context.Background(), CompanyKey)
	assert.False(t, found)
}

func TestCorruptSavedSettingsFallBackToDefaults(t *testing.T) {
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set(context.Background(), CompanyKey, "{"))

	s, _ := newService(t, kv)
	assert.Equal(t, seed.MustLoad().Company, s.Company())
}
