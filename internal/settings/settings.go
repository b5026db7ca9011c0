// Package settings holds the company profile and the look of the admin
// login page and the hotspot captive portal.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/kvstore"
	"smartisp.net/console/internal/models"
	"smartisp.net/console/internal/seed"
	"smartisp.net/console/pkg/logger"
)

// CompanyKey is the key-value entry the saved settings live under.
const CompanyKey = "company_settings"

var (
	ErrPresetNotFound = errors.New("hotspot preset not found")
	ErrInvalidPatch   = errors.New("invalid settings patch")
)

type Service struct {
	mu        sync.RWMutex
	company   models.CompanySettings
	presets   []seed.HotspotPreset
	kv        kvstore.Store
	clock     clock.Clock
	saveDelay time.Duration
	logger    *logger.Logger
}

// NewService starts from defaults, replaced by previously saved settings
// when the store holds a readable copy.
func NewService(ctx context.Context, defaults models.CompanySettings, presets []seed.HotspotPreset, kv kvstore.Store, clk clock.Clock, saveDelay time.Duration, log *logger.Logger) *Service {
	s := &Service{
		company:   defaults,
		presets:   presets,
		kv:        kv,
		clock:     clk,
		saveDelay: saveDelay,
		logger:    log.With("component", "settings"),
	}

	saved := defaults
	found, err := kvstore.GetJSON(ctx, kv, CompanyKey, &saved)
	switch {
	case err != nil:
		s.logger.Warn("Ignoring saved settings", "error", err)
	case found:
		s.company = saved
	}
	return s
}

func (s *Service) Company() models.CompanySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.company
}

// Update merges a JSON object into the company settings. Keys that are
// absent keep their value; nested configs merge field by field.
func (s *Service) Update(patch []byte) (models.CompanySettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.company
	if err := json.Unmarshal(patch, &next); err != nil {
		return models.CompanySettings{}, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	s.company = next
	s.logger.Info("Company settings updated")
	return next, nil
}

func (s *Service) UpdateLoginConfig(patch []byte) (models.LoginConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.company.LoginConfig
	if err := json.Unmarshal(patch, &next); err != nil {
		return models.LoginConfig{}, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	s.company.LoginConfig = next
	s.logger.Info("Login page design updated")
	return next, nil
}

func (s *Service) UpdateHotspotConfig(patch []byte) (models.HotspotDesignConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.company.HotspotConfig
	if err := json.Unmarshal(patch, &next); err != nil {
		return models.HotspotDesignConfig{}, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	s.company.HotspotConfig = next
	s.logger.Info("Hotspot page design updated")
	return next, nil
}

func (s *Service) PresetNames() []string {
	names := make([]string, 0, len(s.presets))
	for _, p := range s.presets {
		names = append(names, p.Name)
	}
	return names
}

// ApplyHotspotPreset overlays the named preset onto the hotspot design.
func (s *Service) ApplyHotspotPreset(name string) (models.HotspotDesignConfig, error) {
	for _, p := range s.presets {
		if p.Name != name {
			continue
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		next := s.company.HotspotConfig
		if err := p.Config.Decode(&next); err != nil {
			return models.HotspotDesignConfig{}, fmt.Errorf("failed to apply preset %q: %w", name, err)
		}
		s.company.HotspotConfig = next
		s.logger.Info("Hotspot preset applied", "preset", name)
		return next, nil
	}
	return models.HotspotDesignConfig{}, ErrPresetNotFound
}

// Save waits out the save delay, then writes the current settings to the store.
func (s *Service) Save(ctx context.Context) error {
	if err := s.clock.Sleep(ctx, s.saveDelay); err != nil {
		return err
	}
	if err := kvstore.SetJSON(ctx, s.kv, CompanyKey, s.Company()); err != nil {
		s.logger.Error("Failed to save settings", "error", err)
		return fmt.Errorf("failed to save settings: %w", err)
	}
	s.logger.Info("Settings saved successfully")
	return nil
}
