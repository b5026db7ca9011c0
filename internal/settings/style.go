package settings

import (
	"sort"
	"strings"

	"smartisp.net/console/internal/models"
)

// Page background fallbacks for an unknown background type.
const (
	LoginFallbackColor   = "#006a4e"
	HotspotFallbackColor = "#f8fafc"
)

// Style is a set of CSS declarations.
type Style map[string]string

// CSS renders the declarations in property order.
func (s Style) CSS() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(s[k])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}

// BackgroundStyle derives the page background from a design config.
func BackgroundStyle(cfg models.LoginConfig, fallback string) Style {
	switch cfg.BgType {
	case models.BackgroundSolid:
		return Style{"background-color": cfg.BgColor}
	case models.BackgroundGradient:
		return Style{"background": cfg.BgGradient}
	case models.BackgroundImage:
		return Style{
			"background-image":    "url(" + cfg.BgImage + ")",
			"background-size":     "cover",
			"background-position": "center",
		}
	default:
		return Style{"background-color": fallback}
	}
}

// PatternOverlay returns the CSS background-image drawn over the page
// background, or "none".
func PatternOverlay(p models.VoucherPattern) string {
	switch p {
	case models.PatternDots:
		return "radial-gradient(rgba(255,255,255,0.15) 1px, transparent 1px)"
	case models.PatternMesh:
		return "linear-gradient(45deg, rgba(255,255,255,0.05) 25%, transparent 25%), linear-gradient(-45deg, rgba(255,255,255,0.05) 25%, transparent 25%)"
	case models.PatternCircuit:
		return `url("https://www.transparenttextures.com/patterns/circuit-board.png")`
	default:
		return "none"
	}
}

// Theme is what a login or hotspot page needs to paint itself.
type Theme struct {
	Background Style  `json:"background"`
	Overlay    string `json:"overlay"`
	CSS        string `json:"css"`
}

func themeFor(cfg models.LoginConfig, fallback string) Theme {
	bg := BackgroundStyle(cfg, fallback)
	return Theme{Background: bg, Overlay: PatternOverlay(cfg.OverlayPattern), CSS: bg.CSS()}
}

func (s *Service) LoginTheme() Theme {
	return themeFor(s.Company().LoginConfig, LoginFallbackColor)
}

func (s *Service) HotspotTheme() Theme {
	return themeFor(s.Company().HotspotConfig.LoginConfig, HotspotFallbackColor)
}
