package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/oauth2"

	"gstinvoice/logger"
	"gstinvoice/utils"
)

// CloudHandler uploads generated invoices, either to the user's Google Drive
// through OAuth consent or to a bucket configured on the server.
type CloudHandler struct {
	Invoices *InvoiceHandler
	Sessions *SessionManager
	Backend  string

	OAuth    *oauth2.Config
	NewDrive utils.DriveUploaderFunc

	Static utils.Uploader
}

// Authorize starts the Google consent flow for uploading one invoice
func (h *CloudHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	invoiceNo := mux.Vars(r)["invoice_no"]
	if h.OAuth == nil {
		h.Sessions.Flash(w, r, "error", "Google Drive is not configured.")
		http.Redirect(w, r, previewURL(invoiceNo), http.StatusSeeOther)
		return
	}

	sess := h.Sessions.Load(w, r)
	sess.OAuthState = uuid.NewString()
	sess.UploadInvoiceNo = invoiceNo
	h.Sessions.Save(sess)

	http.Redirect(w, r, utils.AuthCodeURL(h.OAuth, sess.OAuthState), http.StatusFound)
}

// OAuth2Callback exchanges the authorization code and resumes the pending upload
func (h *CloudHandler) OAuth2Callback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	sess := h.Sessions.Load(w, r)

	state := r.URL.Query().Get("state")
	if sess.OAuthState == "" || state != sess.OAuthState {
		http.Error(w, "invalid oauth state", http.StatusBadRequest)
		return
	}
	if h.OAuth == nil {
		http.Error(w, "google drive is not configured", http.StatusNotFound)
		return
	}

	invoiceNo := sess.UploadInvoiceNo
	tok, err := h.OAuth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		log.Error().Err(err).Msg("oauth exchange")
		h.Sessions.Flash(w, r, "error", "Google authorization failed: "+err.Error())
		http.Redirect(w, r, previewURL(invoiceNo), http.StatusSeeOther)
		return
	}

	sess = h.Sessions.Load(w, r)
	sess.Token = tok
	sess.OAuthState = ""
	h.Sessions.Save(sess)
	log.Info().Str("invoice_no", invoiceNo).Msg("drive authorized")

	http.Redirect(w, r, invoicePath("/upload-to-drive/", invoiceNo), http.StatusSeeOther)
}

// UploadToDrive uploads the invoice into the authorized user's Drive
func (h *CloudHandler) UploadToDrive(w http.ResponseWriter, r *http.Request) {
	invoiceNo := mux.Vars(r)["invoice_no"]
	sess := h.Sessions.Load(w, r)
	if sess.Token == nil || h.NewDrive == nil {
		http.Redirect(w, r, invoicePath("/authorize/", invoiceNo), http.StatusSeeOther)
		return
	}

	uploader, err := h.NewDrive(r.Context(), sess.Token)
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("drive client")
		h.Sessions.Flash(w, r, "error", "An error occurred during upload: "+err.Error())
		http.Redirect(w, r, previewURL(invoiceNo), http.StatusSeeOther)
		return
	}
	h.upload(w, r, uploader)
}

// Upload sends the invoice to whichever backend the server is configured for
func (h *CloudHandler) Upload(w http.ResponseWriter, r *http.Request) {
	invoiceNo := mux.Vars(r)["invoice_no"]
	switch {
	case h.Backend == "drive":
		http.Redirect(w, r, invoicePath("/upload-to-drive/", invoiceNo), http.StatusSeeOther)
	case h.Static != nil:
		h.upload(w, r, h.Static)
	default:
		h.Sessions.Flash(w, r, "info", "Cloud upload is not configured.")
		http.Redirect(w, r, previewURL(invoiceNo), http.StatusSeeOther)
	}
}

func (h *CloudHandler) upload(w http.ResponseWriter, r *http.Request, uploader utils.Uploader) {
	log := logger.FromContext(r.Context())

	rec, ok := h.Invoices.cached(w, r)
	if !ok {
		return
	}
	back := previewURL(rec.InvoiceNo)

	pdfBytes, err := h.Invoices.RenderPDF(r.Context(), rec)
	if err != nil {
		log.Error().Err(err).Str("invoice_no", rec.InvoiceNo).Msg("generate pdf for upload")
		h.Sessions.Flash(w, r, "error", "Error generating PDF for upload: "+err.Error())
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	filename := utils.InvoiceFilename(rec, "pdf")
	start := time.Now()
	link, err := uploader.Upload(r.Context(), filename, pdfBytes)
	if err != nil {
		log.Error().Err(err).Str("invoice_no", rec.InvoiceNo).Dur("duration", time.Since(start)).Msg("upload")
		h.Sessions.Flash(w, r, "error", "An error occurred during upload: "+err.Error())
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	log.Info().
		Str("invoice_no", rec.InvoiceNo).
		Str("link", link).
		Dur("duration", time.Since(start)).
		Msg("invoice uploaded")
	h.Sessions.FlashLink(w, r, "success", "Successfully uploaded '"+filename+"'!", link)
	http.Redirect(w, r, back, http.StatusSeeOther)
}
