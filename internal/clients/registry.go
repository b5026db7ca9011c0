// Package clients manages the subscriber registry: create/edit/delete,
// status toggles, 30-day renewals and bill collection.
package clients

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/ids"
	"smartisp.net/console/internal/models"
	"smartisp.net/console/internal/state"
	"smartisp.net/console/pkg/logger"
)

// RenewalPeriod is a fixed offset, not a calendar month.
const RenewalPeriod = 30 * 24 * time.Hour

const defaultPlan = "5 Mbps"

var (
	ErrClientNotFound       = errors.New("client not found")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrInvalidDate          = errors.New("invalid date")
)

type Registry struct {
	store  *state.Store
	clock  clock.Clock
	rng    ids.Source
	logger *logger.Logger
}

func NewRegistry(store *state.Store, clk clock.Clock, rng ids.Source, log *logger.Logger) *Registry {
	return &Registry{store: store, clock: clk, rng: rng, logger: log.With("component", "clients")}
}

// ClientPatch carries the fields an edit sets; nil fields are left alone.
type ClientPatch struct {
	Name       *string                `json:"name,omitempty"`
	Phone      *string                `json:"phone,omitempty"`
	Email      *string                `json:"email,omitempty"`
	Address    *string                `json:"address,omitempty"`
	MACAddress *string                `json:"macAddress,omitempty"`
	Type       *models.ConnectionType `json:"type,omitempty"`
	Plan       *string                `json:"plan,omitempty"`
	Status     *models.ClientStatus   `json:"status,omitempty"`
	Balance    *int64                 `json:"balance,omitempty"`
	JoinDate   *string                `json:"joinDate,omitempty"`
	ExpiryDate *string                `json:"expiryDate,omitempty"`
}

func (p ClientPatch) apply(c models.Client) models.Client {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.MACAddress != nil {
		c.MACAddress = *p.MACAddress
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Plan != nil {
		c.Plan = *p.Plan
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Balance != nil {
		c.Balance = *p.Balance
	}
	if p.JoinDate != nil {
		c.JoinDate = *p.JoinDate
	}
	if p.ExpiryDate != nil {
		c.ExpiryDate = *p.ExpiryDate
	}
	return c
}

func (r *Registry) List(filter ClientFilter) []models.Client {
	all := r.store.Clients()
	out := make([]models.Client, 0, len(all))
	for _, c := range all {
		if filter.matches(c) {
			out = append(out, c)
		}
	}
	return out
}

func (r *Registry) Get(id string) (models.Client, error) {
	for _, c := range r.store.Clients() {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Client{}, ErrClientNotFound
}

// Create prepends a new client. Unset type, plan, status and dates take the
// new-client form defaults (PPPoE, 5 Mbps, Active, today, today+30 days).
func (r *Registry) Create(fields models.Client) models.Client {
	now := r.clock.Now().UTC()
	if fields.Type == "" {
		fields.Type = models.ConnectionPPPoE
	}
	if fields.Plan == "" {
		fields.Plan = defaultPlan
	}
	if fields.Status == "" {
		fields.Status = models.ClientActive
	}
	if fields.JoinDate == "" {
		fields.JoinDate = now.Format(models.DateLayout)
	}
	if fields.ExpiryDate == "" {
		fields.ExpiryDate = now.Add(RenewalPeriod).Format(models.DateLayout)
	}

	var created models.Client
	r.store.SetClients(func(prev []models.Client) []models.Client {
		created = fields
		created.ID = strconv.Itoa(len(prev)+1) + ids.Base36(r.rng, 4)
		return append([]models.Client{created}, prev...)
	})

	r.logger.Info("Client created", "client_id", created.ID, "name", created.Name, "type", created.Type)
	return created
}

func (r *Registry) Update(id string, patch ClientPatch) (models.Client, error) {
	updated, err := r.mutate(id, func(c models.Client) (models.Client, error) {
		return patch.apply(c), nil
	})
	if err != nil {
		return models.Client{}, err
	}
	r.logger.Info("Client updated", "client_id", id)
	return updated, nil
}

// Delete removes the client. Invoices and tickets reference clients by name
// and are left as they are.
func (r *Registry) Delete(id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	found := false
	r.store.SetClients(func(prev []models.Client) []models.Client {
		next := make([]models.Client, 0, len(prev))
		for _, c := range prev {
			if c.ID == id {
				found = true
				continue
			}
			next = append(next, c)
		}
		return next
	})
	if !found {
		return ErrClientNotFound
	}

	r.logger.Info("Client deleted", "client_id", id)
	return nil
}

// ToggleStatus flips between Active and Disabled: Disabled becomes Active,
// every other status becomes Disabled.
func (r *Registry) ToggleStatus(id string) (models.Client, error) {
	return r.setStatus(id, func(s models.ClientStatus) models.ClientStatus {
		if s == models.ClientDisabled {
			return models.ClientActive
		}
		return models.ClientDisabled
	})
}

// SuspendToggle flips between Suspended and Active, independently of ToggleStatus.
func (r *Registry) SuspendToggle(id string) (models.Client, error) {
	return r.setStatus(id, func(s models.ClientStatus) models.ClientStatus {
		if s == models.ClientSuspended {
			return models.ClientActive
		}
		return models.ClientSuspended
	})
}

func (r *Registry) setStatus(id string, next func(models.ClientStatus) models.ClientStatus) (models.Client, error) {
	updated, err := r.mutate(id, func(c models.Client) (models.Client, error) {
		c.Status = next(c.Status)
		return c, nil
	})
	if err != nil {
		return models.Client{}, err
	}
	r.logger.Info("Client status changed", "client_id", id, "status", updated.Status)
	return updated, nil
}

// Renew pushes the expiry date 30 days past the current expiry (not past
// today) and reactivates the client.
func (r *Registry) Renew(id string) (models.Client, error) {
	updated, err := r.mutate(id, func(c models.Client) (models.Client, error) {
		expiry, err := ParseDate(c.ExpiryDate)
		if err != nil {
			return c, err
		}
		c.ExpiryDate = expiry.Add(RenewalPeriod).Format(models.DateLayout)
		c.Status = models.ClientActive
		return c, nil
	})
	if err != nil {
		return models.Client{}, err
	}
	r.logger.Info("Client renewed", "client_id", id, "expiry_date", updated.ExpiryDate)
	return updated, nil
}

// CollectPayment adds amount to the balance. Any sign is accepted.
func (r *Registry) CollectPayment(id string, amount int64) (models.Client, error) {
	updated, err := r.mutate(id, func(c models.Client) (models.Client, error) {
		c.Balance += amount
		return c, nil
	})
	if err != nil {
		return models.Client{}, err
	}
	r.logger.Info("Payment collected", "client_id", id, "amount", amount, "balance", updated.Balance)
	return updated, nil
}

// mutate applies fn to the client with id. On a missing id or an fn error the
// collection is left as it was.
func (r *Registry) mutate(id string, fn func(models.Client) (models.Client, error)) (models.Client, error) {
	var (
		updated models.Client
		opErr   = ErrClientNotFound
	)
	r.store.SetClients(func(prev []models.Client) []models.Client {
		for i, c := range prev {
			if c.ID != id {
				continue
			}
			next, err := fn(c)
			if err != nil {
				opErr = err
				return prev
			}
			prev[i] = next
			updated, opErr = next, nil
			return prev
		}
		return prev
	})
	return updated, opErr
}

// ParseDate reads a YYYY-MM-DD date (or a full RFC 3339 timestamp) as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(models.DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
