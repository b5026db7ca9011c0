package billing

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartisp.net/console/internal/clients"
	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/ids"
	"smartisp.net/console/internal/models"
	"smartisp.net/console/internal/seed"
	"smartisp.net/console/internal/state"
	"smartisp.net/console/pkg/logger"
)

var today = time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)

func newLedger(t *testing.T) (*Ledger, *state.Store) {
	t.Helper()
	store := state.New(nil, nil)
	return NewLedger(store, clock.NewFake(today), logger.Discard()), store
}

func TestRecordPaymentNumbering(t *testing.T) {
	l, store := newLedger(t)

	first, err := l.RecordPayment(Payment{Client: "Abdur Rahim", Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)
	assert.Equal(t, "INV-1001", first.ID)
	assert.Equal(t, "2024-06-21", first.Date)
	assert.Equal(t, "Cash", first.Method)
	assert.Equal(t, models.InvoicePaid, first.Status)

	second, err := l.RecordPayment(Payment{
		Client: "Karim", Amount: decimal.RequireFromString("750.50"),
		Date: "2024-06-01", Method: "bKash", Status: models.InvoiceUnpaid,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-1002", second.ID)
	assert.Equal(t, "bKash", second.Method)

	all := store.Invoices()
	require.Len(t, all, 2)
	assert.Equal(t, "INV-1002", all[0].ID, "newest first")
}

func TestRecordPaymentRequiresClient(t *testing.T) {
	l, store := newLedger(t)
	_, err := l.RecordPayment(Payment{Client: "  ", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrClientRequired)
	assert.Empty(t, store.Invoices())
}

func TestStats(t *testing.T) {
	l, _ := newLedger(t)
	assert.True(t, l.Stats().TotalDue.IsZero())
	assert.Equal(t, 0, l.Stats().Count)

	payments := []Payment{
		{Client: "A", Amount: decimal.RequireFromString("100.10"), Status: models.InvoicePaid},
		{Client: "B", Amount: decimal.RequireFromString("200.20"), Status: models.InvoiceUnpaid},
		{Client: "C", Amount: decimal.RequireFromString("0.70"), Status: models.InvoiceOverdue},
		{Client: "D", Amount: decimal.RequireFromString("0.20"), Status: models.InvoicePaid},
	}
	for _, p := range payments {
		_, err := l.RecordPayment(p)
		require.NoError(t, err)
	}

	s := l.Stats()
	assert.Equal(t, "100.3", s.TotalCollected.String())
	assert.Equal(t, "200.9", s.TotalDue.String())
	assert.Equal(t, 4, s.Count)
}

func TestListAndGet(t *testing.T) {
	l, _ := newLedger(t)
	for _, p := range []Payment{
		{Client: "Abdur Rahim", Amount: decimal.NewFromInt(500)},
		{Client: "Karim Hossain", Amount: decimal.NewFromInt(300), Status: models.InvoiceUnpaid},
		{Client: "Rahima Begum", Amount: decimal.NewFromInt(200), Status: models.InvoiceOverdue},
	} {
		_, err := l.RecordPayment(p)
		require.NoError(t, err)
	}

	idsOf := func(invs []models.Invoice) []string {
		out := []string{}
		for _, inv := range invs {
			out = append(out, inv.ID)
		}
		return out
	}

	assert.Equal(t, []string{"INV-1003", "INV-1002", "INV-1001"}, idsOf(l.List(InvoiceFilter{})))
	assert.Equal(t, []string{"INV-1003", "INV-1001"}, idsOf(l.List(InvoiceFilter{Query: "RAHIM"})))
	assert.Equal(t, []string{"INV-1002"}, idsOf(l.List(InvoiceFilter{Status: "Unpaid"})))
	assert.Equal(t, []string{"INV-1001"}, idsOf(l.List(InvoiceFilter{Query: "1001", Status: "All"})))
	assert.Empty(t, l.List(InvoiceFilter{Query: "rahim", Status: "Unpaid"}))

	inv, err := l.Get("INV-1002")
	require.NoError(t, err)
	assert.Equal(t, "Karim Hossain", inv.Client)

	_, err = l.Get("INV-9999")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestDeletingClientKeepsInvoices(t *testing.T) {
	store := state.New(nil, nil)
	clk := clock.NewFake(today)
	reg := clients.NewRegistry(store, clk, ids.Seeded(1, 1), logger.Discard())
	l := NewLedger(store, clk, logger.Discard())

	c := reg.Create(models.Client{Name: "Abdur Rahim", Phone: "017"})
	_, err := l.RecordPayment(Payment{Client: c.Name, Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)
	before := store.Invoices()

	require.NoError(t, reg.Delete(c.ID, true))

	assert.Equal(t, before, store.Invoices())
	assert.Empty(t, store.Clients())
}

func TestRenderInvoice(t *testing.T) {
	company := seed.MustLoad().Company
	inv := models.Invoice{
		ID: "INV-1001", Client: "<script>alert(1)</script>", Amount: decimal.RequireFromString("1250.5"),
		Date: "2024-06-21", Status: models.InvoiceOverdue, Method: "Nagad",
	}

	var buf bytes.Buffer
	require.NoError(t, RenderInvoice(&buf, inv, company))
	page := buf.String()

	assert.Contains(t, page, "INVOICE #INV-1001")
	assert.Contains(t, page, "1250.50")
	assert.Contains(t, page, `class="status overdue"`)
	assert.Contains(t, page, "OVERDUE")
	assert.Contains(t, page, company.Name)
	assert.Contains(t, page, "&lt;script&gt;")
	assert.NotContains(t, page, "<script>alert(1)</script>")
}
