package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jung-kurt/gofpdf"
	"github.com/ledongthuc/pdf"

	"gstinvoice/config"
	"gstinvoice/logger"
	"gstinvoice/models"
)

// Document is what an exporter prints: the rendered HTML and the record it came from.
type Document struct {
	HTML   string
	Record *models.InvoiceRecord
}

type PDFExporter interface {
	Export(ctx context.Context, doc Document) ([]byte, error)
}

var ErrEmptyPDF = errors.New("pdf has no pages")

// NewPDFExporter picks the engine named by PDF_ENGINE and wraps it with timeout and retries.
func NewPDFExporter(cfg *config.Config) (PDFExporter, error) {
	var next PDFExporter
	switch cfg.PDFEngine {
	case "chromedp":
		next = &ChromePDFExporter{ExecPath: cfg.ChromePath, NoSandbox: cfg.ChromeNoSandbox}
	case "wkhtmltopdf":
		// the binary path is package global in go-wkhtmltopdf
		if cfg.WkhtmltopdfPath != "" {
			wkhtmltopdf.SetPath(cfg.WkhtmltopdfPath)
		}
		next = &WkhtmltopdfExporter{}
	case "gofpdf":
		next = &FPDFExporter{}
	default:
		return nil, fmt.Errorf("unknown pdf engine %q", cfg.PDFEngine)
	}
	return &RetryingExporter{
		Name:    cfg.PDFEngine,
		Next:    next,
		Timeout: cfg.PDFTimeout,
		Retries: cfg.PDFRetries,
		SaveDir: cfg.PDFSaveDir,
	}, nil
}

// ChromePDFExporter prints the HTML through headless Chrome.
type ChromePDFExporter struct {
	ExecPath  string
	NoSandbox bool
}

func (e *ChromePDFExporter) Export(ctx context.Context, doc Document) ([]byte, error) {
	tmpHTML := filepath.Join(os.TempDir(), "invoice_"+time.Now().Format("20060102150405.000000000")+".html")
	if err := os.WriteFile(tmpHTML, []byte(doc.HTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.Flag("no-sandbox", e.NoSandbox),
	)
	if e.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(e.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+tmpHTML),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

// WkhtmltopdfExporter shells out to the wkhtmltopdf binary.
type WkhtmltopdfExporter struct{}

func (e *WkhtmltopdfExporter) Export(ctx context.Context, doc Document) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, err
	}
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.Dpi.Set(300)

	p := wkhtmltopdf.NewPageReader(strings.NewReader(doc.HTML))
	p.EnableLocalFileAccess.Set(true)
	p.Encoding.Set("UTF-8")
	pdfg.AddPage(p)

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, err
	}
	return pdfg.Bytes(), nil
}

// FPDFExporter draws the invoice directly from the record, no browser needed.
type FPDFExporter struct{}

var fpdfItemCols = []struct {
	title string
	width float64
	align string
}{
	{"S.No.", 10, "C"},
	{"Description", 70, "L"},
	{"HSN/SAC", 20, "C"},
	{"Qty", 18, "R"},
	{"UOM", 14, "C"},
	{"Rate", 24, "R"},
	{"Amount", 30, "R"},
}

func (e *FPDFExporter) Export(ctx context.Context, doc Document) ([]byte, error) {
	rec := doc.Record
	if rec == nil {
		return nil, errors.New("gofpdf needs the invoice record")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := gofpdf.New("P", "mm", "A4", "")
	tr := f.UnicodeTranslatorFromDescriptor("")
	f.SetMargins(12, 12, 12)
	f.SetAutoPageBreak(true, 12)
	f.AddPage()

	f.SetFont("Arial", "B", 16)
	f.CellFormat(0, 8, tr(rec.Company.Name), "", 1, "C", false, 0, "")
	f.SetFont("Arial", "", 9)
	f.MultiCell(0, 4, tr(rec.Company.Address), "", "C", false)
	f.CellFormat(0, 5, tr("Phone: "+rec.Company.Phone+"   GSTIN: "+rec.Company.GSTIN), "", 1, "C", false, 0, "")
	f.SetFont("Arial", "B", 13)
	f.CellFormat(0, 8, "TAX INVOICE", "TB", 1, "C", false, 0, "")

	f.SetFont("Arial", "", 9)
	half := 93.0
	headerRows := [][2]string{
		{"Invoice No: " + rec.InvoiceNo, "Date of Supply: " + rec.SupplyDate},
		{"Invoice Date: " + rec.InvoiceDate, "Transporter: " + rec.TransporterName},
		{"Buyer's Order No: " + rec.BuyerOrderNo, "Vehicle No: " + rec.VehicleNo},
		{"Reference No: " + rec.ReferenceNo, "G.R. No: " + rec.GRNo},
	}
	for _, row := range headerRows {
		f.CellFormat(half, 5, tr(row[0]), "", 0, "L", false, 0, "")
		f.CellFormat(half, 5, tr(row[1]), "", 1, "L", false, 0, "")
	}
	f.Ln(2)

	y := f.GetY()
	fpdfParty(f, tr, 12, y, half, "Billed To", rec.BilledTo)
	fpdfParty(f, tr, 12+half, y, half, "Shipped To", rec.ShippedTo)
	f.SetXY(12, y+28)

	f.SetFont("Arial", "B", 9)
	f.SetFillColor(238, 238, 238)
	for _, c := range fpdfItemCols {
		f.CellFormat(c.width, 6, c.title, "1", 0, "C", true, 0, "")
	}
	f.Ln(-1)

	f.SetFont("Arial", "", 9)
	for i, it := range rec.Items {
		cells := []string{"", it.Description, it.HSN, nullQty(it.Qty), it.UOM, nullMoney(it.Rate), nullMoney(it.Amount)}
		if !it.IsPlaceholder() {
			cells[0] = fmt.Sprint(i + 1)
		}
		for j, c := range fpdfItemCols {
			f.CellFormat(c.width, 6, tr(cells[j]), "1", 0, c.align, false, 0, "")
		}
		f.Ln(-1)
	}

	labelW := 0.0
	for _, c := range fpdfItemCols[:len(fpdfItemCols)-1] {
		labelW += c.width
	}
	amountW := fpdfItemCols[len(fpdfItemCols)-1].width
	totals := [][2]string{
		{"Less: Discount", rec.Discount.StringFixed(2)},
		{"Sub Total", rec.Subtotal.StringFixed(2)},
		{"CGST @ " + rec.CGSTRate.String() + "%", rec.CGSTAmount.StringFixed(2)},
		{"SGST @ " + rec.SGSTRate.String() + "%", rec.SGSTAmount.StringFixed(2)},
		{"IGST @ " + rec.IGSTRate.String() + "%", rec.IGSTAmount.StringFixed(2)},
		{"Total Tax", rec.TotalTax.StringFixed(2)},
		{"Round Off", rec.RoundOff.StringFixed(2)},
		{"Grand Total (Rs.)", fmt.Sprintf("%d.00", rec.GrandTotal)},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			f.SetFont("Arial", "B", 10)
		}
		f.CellFormat(labelW, 6, tr(t[0]), "1", 0, "R", false, 0, "")
		f.CellFormat(amountW, 6, t[1], "1", 1, "R", false, 0, "")
	}
	f.SetFont("Arial", "B", 9)
	f.MultiCell(0, 6, tr("Amount in words: "+rec.AmountInWords), "1", "L", false)
	f.Ln(2)

	f.SetFont("Arial", "", 9)
	y = f.GetY()
	f.MultiCell(half, 4, tr(rec.Company.BankDetails), "", "L", false)
	f.SetXY(12+half, y)
	f.MultiCell(half, 4, tr("For "+rec.Company.Name+"\n\n\n\nAuthorised Signatory"), "", "R", false)

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fpdfParty(f *gofpdf.Fpdf, tr func(string) string, x, y, w float64, title string, p models.Party) {
	f.SetXY(x, y)
	f.SetFont("Arial", "B", 9)
	f.CellFormat(w, 5, title, "", 2, "L", false, 0, "")
	f.SetFont("Arial", "", 9)
	for _, line := range []string{
		"Name: " + p.Name,
		"Address: " + p.Address,
		"State: " + p.State + "   State Code: " + p.StateCode,
		"GSTIN: " + p.GSTIN,
	} {
		f.CellFormat(w, 5, tr(line), "", 2, "L", false, 0, "")
	}
}

// RetryingExporter bounds each attempt with Timeout and retries failed renders.
type RetryingExporter struct {
	Name    string
	Next    PDFExporter
	Timeout time.Duration
	Retries int
	SaveDir string
}

func (e *RetryingExporter) Export(ctx context.Context, doc Document) ([]byte, error) {
	log := logger.FromContext(ctx).With().Str("engine", e.Name).Logger()
	if doc.Record != nil {
		log = log.With().Str("invoice_no", doc.Record.InvoiceNo).Logger()
	}

	var lastErr error
	for attempt := 0; attempt <= e.Retries; attempt++ {
		start := time.Now()
		log.Debug().Int("attempt", attempt+1).Msg("pdf render started")
		out, err := e.attempt(ctx, doc)
		if err == nil {
			log.Info().Int("attempt", attempt+1).Int("bytes", len(out)).Dur("duration", time.Since(start)).Msg("pdf rendered")
			e.save(ctx, doc, out)
			return out, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt+1).Dur("duration", time.Since(start)).Msg("pdf render failed")
		if ctx.Err() != nil {
			break
		}
	}
	return nil, external(e.Name, "render", lastErr)
}

func (e *RetryingExporter) attempt(ctx context.Context, doc Document) ([]byte, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	out, err := e.Next.Export(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := ValidatePDF(out); err != nil {
		return nil, err
	}
	return out, nil
}

// save keeps a local copy when PDF_SAVE_DIR is set. Failing to save never fails the render.
func (e *RetryingExporter) save(ctx context.Context, doc Document, out []byte) {
	if e.SaveDir == "" || doc.Record == nil {
		return
	}
	log := logger.FromContext(ctx)
	if err := os.MkdirAll(e.SaveDir, 0755); err != nil {
		log.Warn().Err(err).Str("dir", e.SaveDir).Msg("create pdf save dir")
		return
	}
	path := filepath.Join(e.SaveDir, InvoiceFilename(doc.Record, "pdf"))
	if err := os.WriteFile(path, out, 0644); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("save pdf copy")
		return
	}
	log.Debug().Str("path", path).Msg("pdf copy saved")
}

// ValidatePDF checks that b parses as a PDF with at least one page.
func ValidatePDF(b []byte) (err error) {
	if len(b) == 0 {
		return ErrEmptyPDF
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return fmt.Errorf("malformed pdf: %w", err)
	}
	if r.NumPage() == 0 {
		return ErrEmptyPDF
	}
	return nil
}
