// Package billing is the invoice ledger: payments are recorded as invoices
// that are never edited or removed afterwards.
package billing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/models"
	"smartisp.net/console/internal/state"
	"smartisp.net/console/pkg/logger"
)

const defaultMethod = "Cash"

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrClientRequired  = errors.New("client name is required")
)

type Ledger struct {
	store  *state.Store
	clock  clock.Clock
	logger *logger.Logger
}

func NewLedger(store *state.Store, clk clock.Clock, log *logger.Logger) *Ledger {
	return &Ledger{store: store, clock: clk, logger: log.With("component", "billing")}
}

// Payment is a payment form submission. The client is referenced by name.
type Payment struct {
	Client string               `json:"client"`
	Amount decimal.Decimal      `json:"amount"`
	Date   string               `json:"date"`
	Method string               `json:"method"`
	Status models.InvoiceStatus `json:"status"`
}

// RecordPayment prepends an invoice numbered INV-{1000+count+1}. Empty date,
// method and status default to today, Cash and Paid.
func (l *Ledger) RecordPayment(p Payment) (models.Invoice, error) {
	if strings.TrimSpace(p.Client) == "" {
		return models.Invoice{}, ErrClientRequired
	}
	if p.Date == "" {
		p.Date = l.clock.Now().UTC().Format(models.DateLayout)
	}
	if p.Method == "" {
		p.Method = defaultMethod
	}
	if p.Status == "" {
		p.Status = models.InvoicePaid
	}

	var inv models.Invoice
	l.store.SetInvoices(func(prev []models.Invoice) []models.Invoice {
		inv = models.Invoice{
			ID:     fmt.Sprintf("INV-%d", 1000+len(prev)+1),
			Client: p.Client,
			Amount: p.Amount,
			Date:   p.Date,
			Status: p.Status,
			Method: p.Method,
		}
		return append([]models.Invoice{inv}, prev...)
	})

	l.logger.Info("Payment recorded", "invoice_id", inv.ID, "client", inv.Client, "amount", inv.Amount.String(), "status", inv.Status)
	return inv, nil
}

func (l *Ledger) Get(id string) (models.Invoice, error) {
	for _, inv := range l.store.Invoices() {
		if inv.ID == id {
			return inv, nil
		}
	}
	return models.Invoice{}, ErrInvoiceNotFound
}

// InvoiceFilter matches the client name case-insensitively or the id by
// substring. Status "" or "All" keeps every status.
type InvoiceFilter struct {
	Status string
	Query  string
}

func (l *Ledger) List(f InvoiceFilter) []models.Invoice {
	all := l.store.Invoices()
	q := strings.ToLower(f.Query)
	out := make([]models.Invoice, 0, len(all))
	for _, inv := range all {
		if f.Status != "" && f.Status != "All" && string(inv.Status) != f.Status {
			continue
		}
		if !strings.Contains(strings.ToLower(inv.Client), q) && !strings.Contains(inv.ID, f.Query) {
			continue
		}
		out = append(out, inv)
	}
	return out
}

type Stats struct {
	TotalDue       decimal.Decimal `json:"totalDue"`
	TotalCollected decimal.Decimal `json:"totalCollected"`
	Count          int             `json:"count"`
}

// Stats is recomputed from the current collection on every call.
func (l *Ledger) Stats() Stats {
	all := l.store.Invoices()
	s := Stats{TotalDue: decimal.Zero, TotalCollected: decimal.Zero, Count: len(all)}
	for _, inv := range all {
		if inv.Status == models.InvoicePaid {
			s.TotalCollected = s.TotalCollected.Add(inv.Amount)
		} else {
			s.TotalDue = s.TotalDue.Add(inv.Amount)
		}
	}
	return s
}
