package vouchers

import (
	"strconv"

	"smartisp.net/console/internal/models"
)

const (
	defaultValidity = "1 Day"
	defaultLimit    = "1GB"
)

type PackagePatch struct {
	Name     *string `json:"name,omitempty"`
	Price    *int64  `json:"price,omitempty"`
	Validity *string `json:"validity,omitempty"`
	Limit    *string `json:"limit,omitempty"`
}

func (e *Engine) Packages() []models.HotspotPackage {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.HotspotPackage(nil), e.packages...)
}

// SelectedPackage returns the id generation uses by default, or "".
func (e *Engine) SelectedPackage() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selected
}

func (e *Engine) SelectPackage(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.findPackage(id); !ok {
		return ErrPackageNotFound
	}
	e.selected = id
	return nil
}

// CreatePackage appends a package with id p-<unix millis>. The first package
// added to an empty list becomes the selected one.
func (e *Engine) CreatePackage(p models.HotspotPackage) models.HotspotPackage {
	if p.Validity == "" {
		p.Validity = defaultValidity
	}
	if p.Limit == "" {
		p.Limit = defaultLimit
	}
	p.ID = "p-" + strconv.FormatInt(e.clock.Now().UnixMilli(), 10)

	e.mu.Lock()
	if len(e.packages) == 0 {
		e.selected = p.ID
	}
	e.packages = append(append([]models.HotspotPackage(nil), e.packages...), p)
	e.mu.Unlock()

	e.logger.Info("Package created", "package_id", p.ID, "name", p.Name)
	return p
}

func (e *Engine) UpdatePackage(id string, patch PackagePatch) (models.HotspotPackage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := append([]models.HotspotPackage(nil), e.packages...)
	for i, p := range next {
		if p.ID != id {
			continue
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Validity != nil {
			p.Validity = *patch.Validity
		}
		if patch.Limit != nil {
			p.Limit = *patch.Limit
		}
		next[i] = p
		e.packages = next
		e.logger.Info("Package updated", "package_id", id)
		return p, nil
	}
	return models.HotspotPackage{}, ErrPackageNotFound
}

// DeletePackage removes the package. Deleting the selected package selects
// the first remaining one. Cards already issued keep their copied plan data.
func (e *Engine) DeletePackage(id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next := make([]models.HotspotPackage, 0, len(e.packages))
	for _, p := range e.packages {
		if p.ID != id {
			next = append(next, p)
		}
	}
	if len(next) == len(e.packages) {
		return ErrPackageNotFound
	}
	e.packages = next

	if e.selected == id {
		e.selected = ""
		if len(next) > 0 {
			e.selected = next[0].ID
		}
	}
	e.logger.Info("Package deleted", "package_id", id)
	return nil
}

// findPackage expects e.mu to be held.
func (e *Engine) findPackage(id string) (models.HotspotPackage, bool) {
	for _, p := range e.packages {
		if p.ID == id {
			return p, true
		}
	}
	return models.HotspotPackage{}, false
}
