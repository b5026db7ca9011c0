// Package seed holds the console's built-in sample data.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"smartisp.net/console/internal/models"
)

//go:embed seed.yaml
var defaultSeed []byte

// HotspotPreset is a named partial hotspot design. Config only carries the
// fields the preset changes.
type HotspotPreset struct {
	Name   string    `yaml:"name" json:"name"`
	Config yaml.Node `yaml:"config" json:"-"`
}

type Timeframe struct {
	Name   string                `yaml:"name"`
	Points []models.RevenuePoint `yaml:"points"`
}

type Data struct {
	Company             models.CompanySettings        `yaml:"company"`
	HotspotPresets      []HotspotPreset               `yaml:"hotspotPresets"`
	Packages            []models.HotspotPackage       `yaml:"packages"`
	VoucherDesign       models.VoucherTemplate        `yaml:"voucherDesign"`
	VoucherPresets      []models.SavedVoucherTemplate `yaml:"voucherPresets"`
	Clients             []models.Client               `yaml:"clients"`
	Tickets             []models.SupportTicket        `yaml:"tickets"`
	Announcements       []models.Announcement         `yaml:"announcements"`
	Routers             []models.Router               `yaml:"routers"`
	PPPoESecrets        []models.PPPoESecret          `yaml:"pppoeSecrets"`
	HotspotServers      []models.HotspotServer        `yaml:"hotspotServers"`
	FirewallRules       []models.FirewallRule         `yaml:"firewallRules"`
	RouterLogs          []models.RouterLog            `yaml:"routerLogs"`
	Revenue             []Timeframe                   `yaml:"revenue"`
	PackageDistribution []models.PackageShare         `yaml:"packageDistribution"`
	Transactions        []models.Transaction          `yaml:"transactions"`
}

// Load parses the embedded sample data. Every call returns fresh slices.
func Load() (*Data, error) {
	return Parse(defaultSeed)
}

func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &d, nil
}

// MustLoad is Load for start-up and tests; the embedded file is fixed at build time.
func MustLoad() *Data {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

// Empty returns seed data with the company defaults but no sample records.
func Empty() *Data {
	d := MustLoad()
	return &Data{
		Company:        d.Company,
		HotspotPresets: d.HotspotPresets,
		VoucherDesign:  d.VoucherDesign,
		VoucherPresets: d.VoucherPresets,
		Revenue:        d.Revenue,
	}
}
