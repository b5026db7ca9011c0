package vouchers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"smartisp.net/console/internal/kvstore"
	"smartisp.net/console/internal/models"
)

// Design is the template new cards are printed with.
func (e *Engine) Design() models.VoucherTemplate {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.design
}

func (e *Engine) SetDesign(t models.VoucherTemplate) {
	e.mu.Lock()
	e.design = t
	e.mu.Unlock()
}

// Templates lists the user's saved designs, newest first.
func (e *Engine) Templates() []models.SavedVoucherTemplate {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.SavedVoucherTemplate(nil), e.templates...)
}

func (e *Engine) Presets() []models.SavedVoucherTemplate {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.SavedVoucherTemplate(nil), e.presets...)
}

// ApplyTemplate copies a saved or preset design into the active design.
func (e *Engine) ApplyTemplate(id string) (models.VoucherTemplate, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, list := range [][]models.SavedVoucherTemplate{e.templates, e.presets} {
		for _, t := range list {
			if t.ID == id {
				e.design = t.VoucherTemplate
				return e.design, nil
			}
		}
	}
	return models.VoucherTemplate{}, ErrTemplateNotFound
}

// SaveTemplate stores the active design under name at the front of the
// library and persists the whole library.
func (e *Engine) SaveTemplate(ctx context.Context, name string) (models.SavedVoucherTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.SavedVoucherTemplate{}, ErrTemplateNameRequired
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	tpl := models.SavedVoucherTemplate{
		VoucherTemplate: e.design,
		ID:              "custom-" + strconv.FormatInt(now.UnixMilli(), 10),
		TemplateName:    name,
		CreatedAt:       now.UTC().Format(models.DateLayout),
	}
	next := append([]models.SavedVoucherTemplate{tpl}, e.templates...)
	if err := e.persist(ctx, next); err != nil {
		return models.SavedVoucherTemplate{}, err
	}
	e.templates = next

	e.logger.Info("Voucher template saved", "template_id", tpl.ID, "name", name)
	return tpl, nil
}

func (e *Engine) DeleteTemplate(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next := make([]models.SavedVoucherTemplate, 0, len(e.templates))
	for _, t := range e.templates {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if len(next) == len(e.templates) {
		return ErrTemplateNotFound
	}
	if err := e.persist(ctx, next); err != nil {
		return err
	}
	e.templates = next

	e.logger.Info("Voucher template deleted", "template_id", id)
	return nil
}

func (e *Engine) persist(ctx context.Context, list []models.SavedVoucherTemplate) error {
	if err := kvstore.SetJSON(ctx, e.kv, TemplatesKey, list); err != nil {
		e.logger.Error("Failed to persist voucher templates", "error", err)
		return fmt.Errorf("failed to save templates: %w", err)
	}
	return nil
}
