package billing

import (
	"html/template"
	"io"
	"strings"

	"smartisp.net/console/internal/models"
)

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
}).Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice #{{.Invoice.ID}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; color: #333; }
        .header { display: flex; justify-content: space-between; margin-bottom: 40px; border-bottom: 2px solid {{.Accent}}; padding-bottom: 20px; }
        .logo { font-size: 28px; font-weight: bold; color: {{.Accent}}; }
        .logo img { height: 48px; vertical-align: middle; margin-right: 12px; }
        .invoice-info { text-align: right; }
        .invoice-number { font-size: 24px; font-weight: bold; color: #1e293b; }
        .details { display: flex; justify-content: space-between; margin-bottom: 40px; }
        .bill-to, .from { width: 45%; }
        .section-title { font-weight: bold; color: #666; margin-bottom: 10px; text-transform: uppercase; font-size: 12px; }
        table { width: 100%; border-collapse: collapse; margin-bottom: 40px; }
        th { background: {{.Accent}}; color: white; padding: 12px; text-align: left; }
        td { padding: 12px; border-bottom: 1px solid #e2e8f0; }
        .total-row { background: #f8fafc; font-weight: bold; font-size: 18px; }
        .status { display: inline-block; padding: 4px 12px; border-radius: 20px; font-size: 12px; font-weight: bold; }
        .status.paid { background: #d1fae5; color: #059669; }
        .status.unpaid { background: #fef3c7; color: #d97706; }
        .status.overdue { background: #fee2e2; color: #dc2626; }
        .footer { margin-top: 60px; text-align: center; color: #666; font-size: 12px; border-top: 1px solid #e2e8f0; padding-top: 20px; }
        @media print { body { margin: 20px; } }
    </style>
</head>
<body>
    <div class="header">
        <div class="logo">{{if .Company.MenuLogo}}<img src="{{.Company.MenuLogo}}" alt="">{{end}}{{.Company.Name}}</div>
        <div class="invoice-info">
            <div class="invoice-number">INVOICE #{{.Invoice.ID}}</div>
            <div>Date: {{.Invoice.Date}}</div>
            <div>Method: {{.Invoice.Method}}</div>
            <div style="margin-top: 10px;"><span class="status {{lower (print .Invoice.Status)}}">{{upper (print .Invoice.Status)}}</span></div>
        </div>
    </div>

    <div class="details">
        <div class="bill-to">
            <div class="section-title">Bill To:</div>
            <div style="font-size: 18px; font-weight: bold;">{{.Invoice.Client}}</div>
        </div>
        <div class="from">
            <div class="section-title">From:</div>
            <div style="font-size: 18px; font-weight: bold;">{{.Company.Name}}</div>
            <div>{{.Company.Address}}</div>
            <div>{{.Company.Phone}}</div>
        </div>
    </div>

    <table>
        <thead>
            <tr>
                <th>Description</th>
                <th style="text-align: right;">Amount</th>
            </tr>
        </thead>
        <tbody>
            <tr>
                <td>Internet Service Payment</td>
                <td style="text-align: right;">{{.Company.CurrencySymbol}} {{.Amount}}</td>
            </tr>
            <tr class="total-row">
                <td style="text-align: right;">TOTAL:</td>
                <td style="text-align: right;">{{.Company.CurrencySymbol}} {{.Amount}} {{.Company.Currency}}</td>
            </tr>
        </tbody>
    </table>

    <div class="footer">
        <p><strong>Thank you for staying connected!</strong></p>
        <p>{{.Company.Name}}</p>
        <p style="margin-top: 20px;">To print this invoice, press Ctrl+P (or Cmd+P on Mac)</p>
    </div>
</body>
</html>
`))

type invoicePage struct {
	Invoice models.Invoice
	Company models.CompanySettings
	Amount  string
	Accent  template.CSS
}

// RenderInvoice writes the printable invoice page, branded with the company settings.
func RenderInvoice(w io.Writer, inv models.Invoice, company models.CompanySettings) error {
	accent := company.LoginConfig.PrimaryColor
	if accent == "" {
		accent = "#3b82f6"
	}
	return invoiceTemplate.Execute(w, invoicePage{
		Invoice: inv,
		Company: company,
		Amount:  inv.Amount.StringFixed(2),
		Accent:  template.CSS(accent),
	})
}
