package utils

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"gstinvoice/models"
	"gstinvoice/templates"
)

// Renderer fills the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

type partyBlock struct {
	Title string
	Party models.Party
}

var templateFuncs = template.FuncMap{
	"money":     func(d decimal.Decimal) string { return d.StringFixed(2) },
	"nullmoney": nullMoney,
	"qty":       nullQty,
	"rate":      func(d decimal.Decimal) string { return d.String() },
	"inc":       func(i int) int { return i + 1 },
	"nl2br": func(s string) template.HTML {
		return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
	},
	"party": func(title string, p models.Party) partyBlock {
		return partyBlock{Title: title, Party: p}
	},
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("invoice").Funcs(templateFuncs).ParseFS(templates.FS, "*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// InvoiceHTML renders the printable invoice document.
func (r *Renderer) InvoiceHTML(rec *models.InvoiceRecord) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "invoice_pdf", rec); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Page renders one of the named application pages.
func (r *Renderer) Page(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func nullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}

func nullQty(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
