package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstinvoice/models"
)

func TestRenderer_InvoiceHTML(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	form := sampleForm()
	form.ClientName = "<script>alert(1)</script>"
	rec, err := BuildInvoice(form, models.DefaultSeller())
	require.NoError(t, err)

	html, err := r.InvoiceHTML(rec)
	require.NoError(t, err)

	assert.Contains(t, html, "SMH-001")
	assert.Contains(t, html, "One Hundred Eighteen Rupees Only")
	assert.Contains(t, html, "100.00")
	assert.Contains(t, html, "118.00")
	assert.Contains(t, html, "09AFMPG9060R1ZK")
	assert.Contains(t, html, "<br>")
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderer_PlaceholderRowsAreBlank(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rec, err := BuildInvoice(sampleForm(), models.DefaultSeller())
	require.NoError(t, err)

	html, err := r.InvoiceHTML(rec)
	require.NoError(t, err)

	// one real item, seven placeholders, none of them numbered
	assert.Contains(t, html, `<td class="center">1</td>`)
	assert.NotContains(t, html, `<td class="center">2</td>`)
}

func TestRenderer_Pages(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Page(&buf, "new_invoice", map[string]any{
		"Form":    models.InvoiceForm{InvoiceNo: "INV-9"},
		"Flashes": []models.Flash{{Category: "error", Message: "Invoice data expired, please generate again."}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `value="INV-9"`)
	assert.Contains(t, buf.String(), "Invoice data expired")
	assert.Equal(t, models.FixedItemRows, bytes.Count(buf.Bytes(), []byte(`name="item_desc[]"`)))

	buf.Reset()
	require.NoError(t, r.Page(&buf, "home", false))
	assert.Contains(t, buf.String(), "/new-invoice")

	assert.Error(t, r.Page(&buf, "missing", nil))
}
