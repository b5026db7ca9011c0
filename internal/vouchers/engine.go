// Package vouchers generates prepaid hotspot voucher cards and manages the
// packages they are sold under and the card designs they are printed with.
package vouchers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/export"
	"smartisp.net/console/internal/ids"
	"smartisp.net/console/internal/kvstore"
	"smartisp.net/console/internal/models"
	"smartisp.net/console/pkg/logger"
)

// MaxBatch caps the cards one GenerateBatch call may create.
const MaxBatch = 500

// TemplatesKey is the key-value entry holding the user's saved designs.
const TemplatesKey = "user_voucher_templates"

var (
	ErrNoPackageSelected    = errors.New("no package selected")
	ErrPackageNotFound      = errors.New("package not found")
	ErrInvalidCount         = errors.New("voucher count must be between 0 and 500")
	ErrTemplateNameRequired = errors.New("template name is required")
	ErrTemplateNotFound     = errors.New("template not found")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Config is the engine's starting state.
type Config struct {
	Packages []models.HotspotPackage
	Design   models.VoucherTemplate
	Presets  []models.SavedVoucherTemplate
}

type Engine struct {
	mu        sync.RWMutex
	packages  []models.HotspotPackage
	selected  string
	cards     []models.VoucherCard
	design    models.VoucherTemplate
	templates []models.SavedVoucherTemplate
	presets   []models.SavedVoucherTemplate

	kv     kvstore.Store
	clock  clock.Clock
	rng    ids.Source
	logger *logger.Logger
}

// NewEngine loads the saved template list from kv. A missing or unreadable
// list starts the library empty.
func NewEngine(ctx context.Context, cfg Config, kv kvstore.Store, clk clock.Clock, rng ids.Source, log *logger.Logger) *Engine {
	e := &Engine{
		packages: append([]models.HotspotPackage(nil), cfg.Packages...),
		design:   cfg.Design,
		presets:  append([]models.SavedVoucherTemplate(nil), cfg.Presets...),
		kv:       kv,
		clock:    clk,
		rng:      rng,
		logger:   log.With("component", "vouchers"),
	}
	if len(e.packages) > 0 {
		e.selected = e.packages[0].ID
	}

	var saved []models.SavedVoucherTemplate
	if _, err := kvstore.GetJSON(ctx, kv, TemplatesKey, &saved); err != nil {
		e.logger.Warn("Ignoring saved voucher templates", "error", err)
		saved = nil
	}
	e.templates = saved
	return e
}

// GenerateCode returns a DDDD-DDDD-DD voucher code. Codes are not
// guaranteed to be unique.
func (e *Engine) GenerateCode() string {
	return fmt.Sprintf("%d-%d-%d", 1000+e.rng.IntN(9000), 1000+e.rng.IntN(9000), 10+e.rng.IntN(89))
}

// GenerateBatch creates count cards for the package and prepends them to the
// generated list. Serials continue from the number of cards already issued.
func (e *Engine) GenerateBatch(packageID string, count int) ([]models.VoucherCard, error) {
	if count < 0 || count > MaxBatch {
		return nil, ErrInvalidCount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	pkg, ok := e.findPackage(packageID)
	if packageID == "" || !ok {
		e.logger.Warn("Voucher generation refused", "package_id", packageID)
		return nil, ErrNoPackageSelected
	}

	createdAt := e.clock.Now().UTC().Format(models.DateLayout)
	batch := make([]models.VoucherCard, count)
	for i := range batch {
		batch[i] = models.VoucherCard{
			ID:        ids.Base36(e.rng, 9),
			Code:      e.GenerateCode(),
			Serial:    "SN-" + strconv.Itoa(len(e.cards)+i+1001),
			Plan:      pkg.Name,
			Price:     pkg.Price,
			Validity:  pkg.Validity,
			Status:    models.VoucherUnused,
			CreatedAt: createdAt,
			Design:    e.design,
		}
	}

	next := make([]models.VoucherCard, 0, len(batch)+len(e.cards))
	next = append(next, batch...)
	e.cards = append(next, e.cards...)

	e.logger.Info("Vouchers generated", "package_id", pkg.ID, "count", count)
	return append([]models.VoucherCard(nil), batch...), nil
}

func (e *Engine) Cards() []models.VoucherCard {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.VoucherCard(nil), e.cards...)
}

// Search matches code or serial by substring and plan case-insensitively.
// An empty query returns every card.
func (e *Engine) Search(query string) []models.VoucherCard {
	e.mu.RLock()
	defer e.mu.RUnlock()

	q := strings.ToLower(query)
	out := make([]models.VoucherCard, 0, len(e.cards))
	for _, c := range e.cards {
		if strings.Contains(c.Code, query) || strings.Contains(c.Serial, query) ||
			strings.Contains(strings.ToLower(c.Plan), q) {
			out = append(out, c)
		}
	}
	return out
}

// ExportCards writes the cards matching query as a printable sheet.
func (e *Engine) ExportCards(w io.Writer, format, query string) error {
	cards := e.Search(query)
	t := export.Table{
		Sheet:   "Vouchers",
		Headers: []string{"Serial", "Code", "Plan", "Price", "Validity", "Status", "Created"},
		Rows:    make([][]string, 0, len(cards)),
	}
	for _, c := range cards {
		t.Rows = append(t.Rows, []string{
			c.Serial, c.Code, c.Plan, strconv.FormatInt(c.Price, 10), c.Validity, string(c.Status), c.CreatedAt,
		})
	}
	if err := export.Write(w, format, t); err != nil {
		return err
	}
	e.logger.Info("Vouchers exported", "format", format, "count", len(cards))
	return nil
}
