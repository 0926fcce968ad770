package handlers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"gstinvoice/logger"
	"gstinvoice/models"
	"gstinvoice/repository"
	"gstinvoice/utils"
)

const msgInvoiceExpired = "Invoice data expired, please generate again."

type InvoiceHandler struct {
	Store    repository.InvoiceStore
	Sellers  repository.SellerRepository
	Renderer *utils.Renderer
	Exporter utils.PDFExporter
	Sessions *SessionManager
	Logo     string
	// UploadTarget labels the upload action on the preview page; empty hides it.
	UploadTarget string
}

type newInvoicePage struct {
	Form    models.InvoiceForm
	Error   string
	Flashes []models.Flash
}

type previewPage struct {
	InvoiceNo     string
	InvoiceHTML   template.HTML
	Flashes       []models.Flash
	UploadEnabled bool
	UploadTarget  string
}

// Home serves the welcome page
func (h *InvoiceHandler) Home(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Load(w, r)
	renderPage(w, r, func(w http.ResponseWriter) error {
		return h.Renderer.Page(w, "home", sess.Authenticated)
	}, http.StatusOK)
}

// NewInvoiceForm serves the empty invoice form
func (h *InvoiceHandler) NewInvoiceForm(w http.ResponseWriter, r *http.Request) {
	h.showForm(w, r, models.InvoiceForm{}, "", http.StatusOK)
}

// CreateInvoice computes the submitted invoice, caches it and redirects to its preview
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}
	form := models.FormFromValues(r.PostForm)

	rec, err := h.build(r.Context(), form)
	if err != nil {
		var inputErr *utils.InputError
		if errors.As(err, &inputErr) {
			log.Info().Err(err).Str("invoice_no", form.InvoiceNo).Msg("invoice rejected")
			h.showForm(w, r, form, inputErr.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Msg("build invoice")
		http.Error(w, "failed to build invoice: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.Store.Set(r.Context(), rec); err != nil {
		log.Error().Err(err).Msg("cache invoice")
		http.Error(w, "failed to store invoice", http.StatusInternalServerError)
		return
	}
	log.Info().
		Str("invoice_no", rec.InvoiceNo).
		Int64("grand_total", rec.GrandTotal).
		Msg("invoice computed")

	http.Redirect(w, r, previewURL(rec.InvoiceNo), http.StatusSeeOther)
}

// build computes the record from the form with the current seller and logo.
func (h *InvoiceHandler) build(ctx context.Context, form models.InvoiceForm) (*models.InvoiceRecord, error) {
	form.InvoiceNo = strings.TrimSpace(form.InvoiceNo)
	if form.InvoiceNo == "" {
		return nil, &utils.InputError{Field: "invoice_no", Err: utils.ErrRequired}
	}

	seller, err := repository.CurrentSeller(ctx, h.Sellers)
	if err != nil {
		return nil, err
	}
	rec, err := utils.BuildInvoice(form, seller)
	if err != nil {
		return nil, err
	}
	rec.EncodedLogo = h.Logo
	return rec, nil
}

func (h *InvoiceHandler) showForm(w http.ResponseWriter, r *http.Request, form models.InvoiceForm, msg string, status int) {
	page := newInvoicePage{Form: form, Error: msg, Flashes: h.Sessions.PopFlashes(w, r)}
	renderPage(w, r, func(w http.ResponseWriter) error {
		return h.Renderer.Page(w, "new_invoice", page)
	}, status)
}

// Preview shows the cached invoice inside the preview page
func (h *InvoiceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.cached(w, r)
	if !ok {
		return
	}

	html, err := h.Renderer.InvoiceHTML(rec)
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("render invoice")
		http.Error(w, "failed to render invoice", http.StatusInternalServerError)
		return
	}

	page := previewPage{
		InvoiceNo:     rec.InvoiceNo,
		InvoiceHTML:   template.HTML(html),
		Flashes:       h.Sessions.PopFlashes(w, r),
		UploadEnabled: h.UploadTarget != "",
		UploadTarget:  h.UploadTarget,
	}
	renderPage(w, r, func(w http.ResponseWriter) error {
		return h.Renderer.Page(w, "preview", page)
	}, http.StatusOK)
}

// GeneratePDF streams the invoice as a PDF attachment
func (h *InvoiceHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	invoiceNo := mux.Vars(r)["invoice_no"]

	rec, err := h.Store.Get(r.Context(), invoiceNo)
	if err != nil {
		http.Error(w, "Invoice data not found.", http.StatusNotFound)
		return
	}

	pdfBytes, err := h.RenderPDF(r.Context(), rec)
	if err != nil {
		log.Error().Err(err).Str("invoice_no", invoiceNo).Msg("generate pdf")
		http.Error(w, "Error generating PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := utils.InvoiceFilename(rec, "pdf")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
	log.Info().Str("invoice_no", invoiceNo).Int("bytes", len(pdfBytes)).Msg("pdf generated")
}

// ExportXLSX streams the invoice as a spreadsheet attachment
func (h *InvoiceHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	invoiceNo := mux.Vars(r)["invoice_no"]

	rec, err := h.Store.Get(r.Context(), invoiceNo)
	if err != nil {
		http.Error(w, "Invoice data not found.", http.StatusNotFound)
		return
	}

	out, err := utils.ExportXLSX(rec)
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Str("invoice_no", invoiceNo).Msg("export xlsx")
		http.Error(w, "failed to export spreadsheet", http.StatusInternalServerError)
		return
	}

	filename := utils.InvoiceFilename(rec, "xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(out)
}

// RenderPDF renders the printable HTML and exports it with the configured engine.
func (h *InvoiceHandler) RenderPDF(ctx context.Context, rec *models.InvoiceRecord) ([]byte, error) {
	html, err := h.Renderer.InvoiceHTML(rec)
	if err != nil {
		return nil, err
	}
	return h.Exporter.Export(ctx, utils.Document{HTML: html, Record: rec})
}

// cached loads the invoice named in the path, redirecting to the form when it has expired.
func (h *InvoiceHandler) cached(w http.ResponseWriter, r *http.Request) (*models.InvoiceRecord, bool) {
	invoiceNo := mux.Vars(r)["invoice_no"]
	rec, err := h.Store.Get(r.Context(), invoiceNo)
	if err != nil {
		if !errors.Is(err, repository.ErrInvoiceNotFound) {
			log := logger.FromContext(r.Context())
			log.Error().Err(err).Str("invoice_no", invoiceNo).Msg("load invoice")
		}
		h.Sessions.Flash(w, r, "error", msgInvoiceExpired)
		http.Redirect(w, r, "/new-invoice", http.StatusSeeOther)
		return nil, false
	}
	return rec, true
}

func previewURL(invoiceNo string) string {
	return invoicePath("/preview/", invoiceNo)
}

func invoicePath(prefix, invoiceNo string) string {
	return prefix + url.PathEscape(invoiceNo)
}
