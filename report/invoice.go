package report

import (
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/calebo95/athlete-portal/internal/invoices"
	"github.com/calebo95/athlete-portal/internal/shared"
)

var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.Number}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 11px; color: #111; margin: 50px; }
.header { display: flex; justify-content: space-between; }
.from h1 { font-size: 16px; margin: 0 0 8px 0; }
.from div { font-size: 10px; margin-bottom: 2px; }
.meta { text-align: right; }
.meta h2 { font-size: 18px; margin: 0 0 10px 0; }
.meta div { font-size: 10px; margin-bottom: 2px; }
.billto { margin-top: 40px; }
.billto h3 { font-size: 12px; margin-bottom: 6px; }
.billto div { font-size: 10px; margin-bottom: 2px; }
table { width: 100%; border-collapse: collapse; margin-top: 24px; }
th { text-align: left; font-size: 10px; border-bottom: 1px solid #999; padding: 4px 8px 4px 0; }
td { font-size: 10px; padding: 4px 8px 4px 0; }
th.num, td.num { text-align: right; }
.total { text-align: right; font-size: 12px; font-weight: bold; margin-top: 12px; }
.notes { margin-top: 30px; }
.notes h3 { font-size: 11px; margin-bottom: 6px; }
.notes p { font-size: 10px; white-space: pre-wrap; }
</style>
</head>
<body>
<div class="header">
  <div class="from">
    <h1>{{.FromName}}</h1>
    {{range .FromLines}}<div>{{.}}</div>
    {{end}}
  </div>
  <div class="meta">
    <h2>INVOICE</h2>
    <div>Invoice #: {{.Number}}</div>
    <div>Date: {{.Date}}</div>
    <div>Status: {{.Status}}</div>
  </div>
</div>
<div class="billto">
  <h3>Bill To:</h3>
  {{range .BillToLines}}<div>{{.}}</div>
  {{end}}
</div>
<table>
  <thead>
    <tr><th>Description</th><th class="num">Qty</th><th class="num">Unit</th><th class="num">Amount</th></tr>
  </thead>
  <tbody>
    {{range .Items}}<tr><td>{{.Description}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.UnitPrice}}</td><td class="num">{{.Amount}}</td></tr>
    {{end}}
  </tbody>
</table>
<div class="total">Total: {{.Total}}</div>
{{if .Notes}}<div class="notes">
  <h3>Notes:</h3>
  <p>{{.Notes}}</p>
</div>{{end}}
</body>
</html>
`))

type invoiceRow struct {
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

type invoiceView struct {
	FromName    string
	FromLines   []string
	Number      string
	Date        string
	Status      string
	BillToLines []string
	Items       []invoiceRow
	Total       string
	Notes       string
}

// BuildInvoiceHTML lays out a resolved invoice as a printable document.
func BuildInvoiceHTML(data *invoices.PDFData) (string, error) {
	view := invoiceView{
		FromName: "Billing",
		Status:   string(data.Invoice.Status),
		Total:    shared.FormatMoney(data.Invoice.Amount),
		Notes:    data.Invoice.Notes,
	}
	if data.Invoice.Number != nil {
		view.Number = *data.Invoice.Number
	}
	if data.Invoice.SentDate != nil {
		view.Date = data.Invoice.SentDate.String()
	} else {
		view.Date = shared.DateOf(data.Invoice.CreatedAt).String()
	}

	if p := data.Profile; p != nil {
		if p.BusinessName != "" {
			view.FromName = p.BusinessName
		}
		cityLine := joinNonEmpty(", ", p.City, p.State, p.PostalCode)
		view.FromLines = nonEmpty(p.AddressLine1, p.AddressLine2, cityLine, p.Country, p.Email, p.Phone, p.Website)
	}

	if c := data.BillTo; c != nil {
		view.BillToLines = nonEmpty(c.Company, c.Name, c.Email, c.Phone)
	}
	if len(view.BillToLines) == 0 && data.Sponsor != nil {
		view.BillToLines = []string{data.Sponsor.Name}
	}
	if len(view.BillToLines) == 0 {
		view.BillToLines = []string{"—"}
	}

	for _, item := range data.Invoice.Items {
		view.Items = append(view.Items, invoiceRow{
			Description: item.Description,
			Quantity:    strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			UnitPrice:   shared.FormatMoney(item.UnitPrice),
			Amount:      shared.FormatMoney(item.Total()),
		})
	}

	var b strings.Builder
	if err := invoiceTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("report: render invoice template: %w", err)
	}
	return b.String(), nil
}

// Renderer turns a resolved invoice into a PDF through Gotenberg.
//
// Renderer implements the handler's PDF rendering dependency.
type Renderer struct {
	client *Client
}

// NewRenderer builds a renderer backed by the given Gotenberg client.
func NewRenderer(client *Client) *Renderer {
	return &Renderer{client: client}
}

// RenderInvoice lays out the invoice and converts it to PDF bytes.
func (r *Renderer) RenderInvoice(ctx context.Context, data *invoices.PDFData) ([]byte, error) {
	html, err := BuildInvoiceHTML(data)
	if err != nil {
		return nil, err
	}
	return r.client.RenderHTML(ctx, html)
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func joinNonEmpty(sep string, values ...string) string {
	return strings.Join(nonEmpty(values...), sep)
}
