package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstinvoice/models"
	"gstinvoice/repository"
)

func decodeSeller(t *testing.T, rec *httptest.ResponseRecorder) models.Seller {
	t.Helper()
	var resp struct {
		Success bool          `json:"success"`
		Data    models.Seller `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.Data
}

func TestSellerHandler(t *testing.T) {
	h := &SellerHandler{Repo: repository.NewStaticSellerRepo()}

	rec := httptest.NewRecorder()
	h.GetSeller(rec, httptest.NewRequest(http.MethodGet, "/seller", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DefaultSeller().GSTIN, decodeSeller(t, rec).GSTIN)

	body := `{"name":"Acme Media","gstin":"07AAAAA0000A1Z5","address":"Delhi","phone":"011-1234"}`
	rec = httptest.NewRecorder()
	h.SaveSeller(rec, httptest.NewRequest(http.MethodPost, "/seller", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.GetSeller(rec, httptest.NewRequest(http.MethodGet, "/seller", nil))
	got := decodeSeller(t, rec)
	assert.Equal(t, "Acme Media", got.Name)
	assert.Equal(t, "07AAAAA0000A1Z5", got.GSTIN)
}

func TestSellerHandler_Rejects(t *testing.T) {
	h := &SellerHandler{Repo: repository.NewStaticSellerRepo()}

	for _, body := range []string{`{"name":`, `{"name":"No GSTIN"}`} {
		rec := httptest.NewRecorder()
		h.SaveSeller(rec, httptest.NewRequest(http.MethodPost, "/seller", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestSavedSellerIsPrinted(t *testing.T) {
	a := newTestApp(t)

	body := `{"name":"Acme Media","gstin":"07AAAAA0000A1Z5"}`
	rec := httptest.NewRecorder()
	a.sellers.SaveSeller(rec, httptest.NewRequest(http.MethodPost, "/seller", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	a.createSample(t)
	rec = a.call(a.invoices.Preview, http.MethodGet, "/preview/INV-1", invoiceVars("INV-1"), nil)
	assert.Contains(t, rec.Body.String(), "Acme Media")
	assert.Contains(t, rec.Body.String(), "07AAAAA0000A1Z5")
}
