package reports

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/export"
	"smartisp.net/console/internal/seed"
	"smartisp.net/console/pkg/logger"
)

const exportDelay = 2 * time.Second

func newService(t *testing.T) (*Service, *clock.Fake) {
	t.Helper()
	d := seed.MustLoad()
	clk := clock.NewFake(time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC))
	return NewService(d.Revenue, d.PackageDistribution, d.Transactions, clk, exportDelay, logger.Discard()), clk
}

func TestTotals(t *testing.T) {
	s, _ := newService(t)

	assert.Equal(t, Totals{Timeframe: "This Month", Revenue: 65000, Expenses: 17300, Profit: 47700}, s.Totals("This Month"))
	assert.Equal(t, Totals{Timeframe: "Today", Revenue: 14500, Expenses: 2700, Profit: 11800}, s.Totals("Today"))
	assert.Equal(t, "This Month", s.Totals("Last Decade").Timeframe)
	assert.Equal(t, []string{"Today", "This Month", "This Year"}, s.Timeframes())
}

func TestSeriesFallback(t *testing.T) {
	s, _ := newService(t)
	name, points := s.Series("")
	assert.Equal(t, "This Month", name)
	assert.Len(t, points, 4)

	_, points = s.Series("This Year")
	assert.Len(t, points, 6)
	assert.Equal(t, "Jan", points[0].Date)

	empty := NewService(nil, nil, nil, clock.Real{}, 0, logger.Discard())
	name, points = empty.Series("Today")
	assert.Equal(t, DefaultTimeframe, name)
	assert.Empty(t, points)
}

func TestTransactions(t *testing.T) {
	s, _ := newService(t)

	assert.Len(t, s.Transactions(TransactionFilter{}), 7)
	assert.Len(t, s.Transactions(TransactionFilter{Type: "Income"}), 4)
	assert.Len(t, s.Transactions(TransactionFilter{Type: "Expense", Query: "990"}), 3)

	one := s.Transactions(TransactionFilter{Query: "TXN-9905"})
	require.Len(t, one, 1)
	assert.EqualValues(t, 12000, one[0].Amount)

	assert.Equal(t, CashFlow{Income: 20700, Expense: 38500}, Flow(s.Transactions(TransactionFilter{})))
	assert.Len(t, s.Distribution(), 5)
}

func runExport(t *testing.T, s *Service, clk *clock.Fake, format, timeframe string) (*bytes.Buffer, error) {
	t.Helper()
	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- s.Export(context.Background(), &buf, format, timeframe) }()
	clk.BlockUntil(1)
	clk.Advance(exportDelay)
	return &buf, <-done
}

func TestExportCSV(t *testing.T) {
	s, clk := newService(t)
	buf, err := runExport(t, s, clk, export.FormatCSV, "Today")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Today,Revenue,Expense,Profit", lines[0])
	assert.Equal(t, "08 AM,1200,200,1000", lines[1])
	assert.Equal(t, "Total,14500,2700,11800", lines[5])
}

func TestExportXLSX(t *testing.T) {
	s, clk := newService(t)
	buf, err := runExport(t, s, clk, export.FormatXLSX, "This Year")
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 8)
	assert.Equal(t, []string{"Total", "336000", "76500", "259500"}, rows[7])
}

func TestExportPDF(t *testing.T) {
	s, clk := newService(t)
	buf, err := runExport(t, s, clk, export.FormatPDF, "This Month")
	require.NoError(t, err)

	page := buf.String()
	assert.Contains(t, page, "Financial Report: This Month")
	assert.Contains(t, page, "47700")
	assert.Contains(t, page, "TXN-9907")
	assert.Contains(t, page, `class="expense">25000`)
}

func TestExportWaitsForDelay(t *testing.T) {
	s, clk := newService(t)
	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- s.Export(context.Background(), &buf, export.FormatCSV, "Today") }()

	clk.BlockUntil(1)
	clk.Advance(exportDelay - time.Millisecond)
	select {
	case <-done:
		t.Fatal("export finished before the delay elapsed")
	default:
	}
	assert.Zero(t, buf.Len())

	assert.ErrorIs(t, s.Export(context.Background(), &bytes.Buffer{}, export.FormatCSV, "Today"), ErrExportInProgress)

	clk.Advance(time.Millisecond)
	require.NoError(t, <-done)
	assert.NotZero(t, buf.Len())
}

func TestExportCancelledAndUnknownFormat(t *testing.T) {
	s, clk := newService(t)

	assert.ErrorIs(t, s.Export(context.Background(), &bytes.Buffer{}, "docx", "Today"), export.ErrUnsupportedFormat)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Export(ctx, &bytes.Buffer{}, export.FormatCSV, "Today") }()
	clk.BlockUntil(1)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	_, err := runExport(t, s, clk, export.FormatCSV, "Today")
	assert.NoError(t, err, "a cancelled export releases the guard")
}
