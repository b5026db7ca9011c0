package reports

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"smartisp.net/console/internal/export"
	"smartisp.net/console/internal/models"
)

// Export waits out the export delay, then writes the timeframe report as
// xlsx, csv or pdf (a printable HTML page). One export runs at a time.
func (s *Service) Export(ctx context.Context, w io.Writer, format, timeframe string) error {
	switch format {
	case export.FormatXLSX, export.FormatCSV, export.FormatPDF:
	default:
		return fmt.Errorf("%w: %q", export.ErrUnsupportedFormat, format)
	}

	if !s.exporting.CompareAndSwap(false, true) {
		return ErrExportInProgress
	}
	defer s.exporting.Store(false)

	s.logger.Info("Generating report", "format", format, "timeframe", timeframe)
	if err := s.clock.Sleep(ctx, s.exportDelay); err != nil {
		return err
	}

	name, points := s.Series(timeframe)
	totals := s.Totals(name)

	var err error
	if format == export.FormatPDF {
		err = printTemplate.Execute(w, printPage{
			Totals:       totals,
			Points:       points,
			Transactions: s.transactions,
			Flow:         Flow(s.transactions),
		})
	} else {
		err = export.Write(w, format, reportTable(name, points, totals))
	}
	if err != nil {
		s.logger.Error("Report export failed", "format", format, "error", err)
		return err
	}

	s.logger.Info("Report exported", "format", format, "timeframe", name)
	return nil
}

func reportTable(name string, points []models.RevenuePoint, totals Totals) export.Table {
	t := export.Table{
		Sheet:   "Report",
		Headers: []string{name, "Revenue", "Expense", "Profit"},
		Rows:    make([][]string, 0, len(points)+1),
	}
	for _, p := range points {
		t.Rows = append(t.Rows, []string{
			p.Date,
			strconv.FormatInt(p.Revenue, 10),
			strconv.FormatInt(p.Expense, 10),
			strconv.FormatInt(p.Revenue-p.Expense, 10),
		})
	}
	t.Rows = append(t.Rows, []string{
		"Total",
		strconv.FormatInt(totals.Revenue, 10),
		strconv.FormatInt(totals.Expenses, 10),
		strconv.FormatInt(totals.Profit, 10),
	})
	return t
}

type printPage struct {
	Totals       Totals
	Points       []models.RevenuePoint
	Transactions []models.Transaction
	Flow         CashFlow
}

var printTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Financial Report - {{.Totals.Timeframe}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; color: #333; }
        h1 { color: #1e293b; border-bottom: 2px solid #3b82f6; padding-bottom: 12px; }
        .cards { display: flex; gap: 24px; margin-bottom: 32px; }
        .card { flex: 1; padding: 16px; border: 1px solid #e2e8f0; border-radius: 12px; }
        .label { font-size: 12px; color: #666; text-transform: uppercase; }
        .value { font-size: 22px; font-weight: bold; }
        table { width: 100%; border-collapse: collapse; margin-bottom: 32px; }
        th { background: #3b82f6; color: white; padding: 10px; text-align: left; }
        td { padding: 10px; border-bottom: 1px solid #e2e8f0; }
        .income { color: #059669; }
        .expense { color: #dc2626; }
        @media print { body { margin: 20px; } }
    </style>
</head>
<body>
    <h1>Financial Report: {{.Totals.Timeframe}}</h1>
    <div class="cards">
        <div class="card"><div class="label">Revenue</div><div class="value">{{.Totals.Revenue}}</div></div>
        <div class="card"><div class="label">Expenses</div><div class="value">{{.Totals.Expenses}}</div></div>
        <div class="card"><div class="label">Profit</div><div class="value">{{.Totals.Profit}}</div></div>
    </div>
    <table>
        <thead><tr><th>Period</th><th>Revenue</th><th>Expense</th></tr></thead>
        <tbody>
        {{- range .Points}}
            <tr><td>{{.Date}}</td><td>{{.Revenue}}</td><td>{{.Expense}}</td></tr>
        {{- end}}
        </tbody>
    </table>
    <table>
        <thead><tr><th>ID</th><th>Party</th><th>Date</th><th>Method</th><th>Amount</th></tr></thead>
        <tbody>
        {{- range .Transactions}}
            <tr><td>{{.ID}}</td><td>{{.Client}}</td><td>{{.Date}}</td><td>{{.Method}}</td><td class="{{if eq (print .Type) "Income"}}income{{else}}expense{{end}}">{{.Amount}}</td></tr>
        {{- end}}
        </tbody>
    </table>
    <p>Income: {{.Flow.Income}} &middot; Expense: {{.Flow.Expense}}</p>
    <p style="text-align: center; color: #666; font-size: 12px;">To save as PDF, press Ctrl+P (or Cmd+P on Mac)</p>
</body>
</html>
`))
