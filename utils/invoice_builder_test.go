package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstinvoice/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(expected).Equal(got), "expected %s, got %s", expected, got)
}

func sampleForm() models.InvoiceForm {
	return models.InvoiceForm{
		InvoiceNo:   "SMH-001",
		InvoiceDate: "2024-04-01",
		ClientName:  "Acme Traders",
		Discount:    "0",
		CGSTRate:    "9",
		SGSTRate:    "9",
		IGSTRate:    "0",
		Items: []models.ItemInput{
			{Description: "A", HSN: "9983", Qty: "2", UOM: "Nos", Rate: "50"},
			{Description: "", Qty: "1", Rate: "10"},
		},
	}
}

func TestBuildInvoice_Totals(t *testing.T) {
	rec, err := BuildInvoice(sampleForm(), models.DefaultSeller())
	require.NoError(t, err)

	assertDecimal(t, "100", rec.Subtotal)
	assertDecimal(t, "9", rec.CGSTAmount)
	assertDecimal(t, "9", rec.SGSTAmount)
	assertDecimal(t, "0", rec.IGSTAmount)
	assertDecimal(t, "18", rec.TotalTax)
	assertDecimal(t, "118", rec.GrandTotalRaw)
	assertDecimal(t, "0", rec.RoundOff)
	assert.Equal(t, int64(118), rec.GrandTotal)
	assert.Equal(t, "One Hundred Eighteen Rupees Only", rec.AmountInWords)

	require.Len(t, rec.Items, models.FixedItemRows)
	assert.Equal(t, "A", rec.Items[0].Description)
	assertDecimal(t, "100", rec.Items[0].Amount.Decimal)
	assert.True(t, rec.Items[1].IsPlaceholder())
}

func TestBuildInvoice_FloorsGrandTotal(t *testing.T) {
	form := models.InvoiceForm{
		InvoiceNo: "SMH-002",
		Items:     []models.ItemInput{{Description: "Print ad", Qty: "1", Rate: "100.9"}},
	}

	rec, err := BuildInvoice(form, models.DefaultSeller())
	require.NoError(t, err)

	assertDecimal(t, "100.9", rec.GrandTotalRaw)
	assert.Equal(t, int64(100), rec.GrandTotal)
	assertDecimal(t, "-0.9", rec.RoundOff)
	assert.Equal(t, "One Hundred Rupees Only", rec.AmountInWords)
}

func TestBuildInvoice_FractionalTax(t *testing.T) {
	form := models.InvoiceForm{
		InvoiceNo: "SMH-003",
		Discount:  "5.5",
		IGSTRate:  "18",
		Items: []models.ItemInput{
			{Description: "Banner", Qty: "3", Rate: "333.33"},
			{Description: "Flyer", Qty: "0.5", Rate: "41"},
		},
	}

	rec, err := BuildInvoice(form, models.DefaultSeller())
	require.NoError(t, err)

	// 999.99 + 20.5 - 5.5 = 1014.99; 18% = 182.6982
	assertDecimal(t, "1014.99", rec.Subtotal)
	assertDecimal(t, "182.6982", rec.IGSTAmount)
	assertDecimal(t, "1197.6882", rec.GrandTotalRaw)
	assert.Equal(t, int64(1197), rec.GrandTotal)
	assertDecimal(t, "-0.6882", rec.RoundOff)
	assert.True(t, rec.RoundOff.LessThanOrEqual(decimal.Zero))
}

func TestBuildInvoice_ItemRows(t *testing.T) {
	t.Run("truncates to fixed rows", func(t *testing.T) {
		form := models.InvoiceForm{InvoiceNo: "X"}
		for i := 1; i <= 10; i++ {
			form.Items = append(form.Items, models.ItemInput{
				Description: fmt.Sprintf("item %d", i), Qty: "1", Rate: "10",
			})
		}

		rec, err := BuildInvoice(form, models.DefaultSeller())
		require.NoError(t, err)

		require.Len(t, rec.Items, models.FixedItemRows)
		assert.Equal(t, "item 1", rec.Items[0].Description)
		assert.Equal(t, "item 8", rec.Items[7].Description)
		assertDecimal(t, "80", rec.Subtotal)
	})

	t.Run("pads with placeholders", func(t *testing.T) {
		form := models.InvoiceForm{InvoiceNo: "X"}
		for i := 1; i <= 3; i++ {
			form.Items = append(form.Items, models.ItemInput{
				Description: fmt.Sprintf("item %d", i), Qty: "1", Rate: "10",
			})
		}

		rec, err := BuildInvoice(form, models.DefaultSeller())
		require.NoError(t, err)

		require.Len(t, rec.Items, models.FixedItemRows)
		assert.Len(t, rec.FilledItems(), 3)
		for _, it := range rec.Items[3:] {
			assert.False(t, it.Qty.Valid)
			assert.False(t, it.Rate.Valid)
			assert.False(t, it.Amount.Valid)
			assert.Empty(t, it.Description)
			assert.Empty(t, it.HSN)
			assert.Empty(t, it.UOM)
		}
	})

	t.Run("whitespace description is skipped", func(t *testing.T) {
		form := models.InvoiceForm{
			InvoiceNo: "X",
			Items: []models.ItemInput{
				{Description: "   ", Qty: "abc", Rate: "1"},
				{Description: "real", Qty: "", Rate: ""},
			},
		}

		rec, err := BuildInvoice(form, models.DefaultSeller())
		require.NoError(t, err)
		assert.Equal(t, "real", rec.Items[0].Description)
		assertDecimal(t, "0", rec.Items[0].Amount.Decimal)
		assert.True(t, rec.Items[0].Amount.Valid)
	})
}

func TestBuildInvoice_Defaults(t *testing.T) {
	rec, err := BuildInvoice(models.InvoiceForm{}, models.DefaultSeller())
	require.NoError(t, err)

	assert.Equal(t, "N/A", rec.ReferenceNo)
	assert.Equal(t, "Select Media House", rec.Company.Name)
	assert.Equal(t, int64(0), rec.GrandTotal)
	assert.Equal(t, "Zero Rupees Only", rec.AmountInWords)
}

func TestBuildInvoice_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name  string
		form  models.InvoiceForm
		field string
	}{
		{"discount", models.InvoiceForm{Discount: "ten"}, "discount"},
		{"cgst", models.InvoiceForm{CGSTRate: "9%"}, "cgst_rate"},
		{"sgst", models.InvoiceForm{SGSTRate: "1,5"}, "sgst_rate"},
		{"igst", models.InvoiceForm{IGSTRate: "x"}, "igst_rate"},
		{"qty", models.InvoiceForm{Items: []models.ItemInput{{Description: "a", Qty: "two"}}}, "item_qty"},
		{"rate", models.InvoiceForm{Items: []models.ItemInput{{Description: "a", Qty: "1", Rate: "1.2.3"}}}, "item_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildInvoice(tt.form, models.DefaultSeller())
			require.Error(t, err)

			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
			assert.ErrorIs(t, err, ErrInvalidNumber)
		})
	}
}

func TestBuildInvoice_TotalTooLarge(t *testing.T) {
	form := models.InvoiceForm{
		Items: []models.ItemInput{{Description: "a", Qty: "18446744073709551621", Rate: "1"}},
	}

	_, err := BuildInvoice(form, models.DefaultSeller())
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "grand_total", inputErr.Field)
	assert.ErrorIs(t, err, ErrAmountTooLarge)

	// the largest representable total still builds
	form.Items[0].Qty = "9223372036854775807"
	rec, err := BuildInvoice(form, models.DefaultSeller())
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), rec.GrandTotal)
}

func TestBuildInvoice_MalformedRowBeyondLimit(t *testing.T) {
	form := models.InvoiceForm{}
	for i := 0; i < 9; i++ {
		form.Items = append(form.Items, models.ItemInput{Description: "x", Qty: "1", Rate: "1"})
	}
	form.Items[8].Qty = "bad"

	_, err := BuildInvoice(form, models.DefaultSeller())
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestBuildInvoice_NegativeTotal(t *testing.T) {
	form := models.InvoiceForm{
		Discount: "500",
		Items:    []models.ItemInput{{Description: "a", Qty: "1", Rate: "100"}},
	}

	_, err := BuildInvoice(form, models.DefaultSeller())

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "grand_total", inputErr.Field)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestBuildInvoice_Deterministic(t *testing.T) {
	first, err := BuildInvoice(sampleForm(), models.DefaultSeller())
	require.NoError(t, err)
	second, err := BuildInvoice(sampleForm(), models.DefaultSeller())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestInvoiceFilename(t *testing.T) {
	rec := &models.InvoiceRecord{InvoiceNo: "SMH/24/001", InvoiceDate: "2024-04-01"}
	assert.Equal(t, "SMH-24-001_2024-04-01.pdf", InvoiceFilename(rec, "pdf"))
}
