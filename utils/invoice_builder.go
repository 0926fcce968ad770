package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"gstinvoice/models"
)

var (
	hundred       = decimal.NewFromInt(100)
	maxGrandTotal = decimal.NewFromInt(math.MaxInt64)
)

// BuildInvoice turns the raw form values into a computed invoice. It has no side
// effects: the same form and seller always produce the same record.
func BuildInvoice(form models.InvoiceForm, seller models.Seller) (*models.InvoiceRecord, error) {
	rec := &models.InvoiceRecord{
		InvoiceNo:       form.InvoiceNo,
		InvoiceDate:     form.InvoiceDate,
		BuyerOrderNo:    form.BuyerOrderNo,
		SupplyDate:      form.SupplyDate,
		TransporterName: form.TransporterName,
		VehicleNo:       form.VehicleNo,
		GRNo:            form.GRNo,
		ReferenceNo:     form.ReferenceNo,
		Company:         seller,
		BilledTo: models.Party{
			Name:      form.ClientName,
			Address:   form.ClientAddress,
			State:     form.ClientState,
			StateCode: form.ClientStateCode,
			GSTIN:     form.ClientGSTIN,
		},
		ShippedTo: models.Party{
			Name:      form.ShipName,
			Address:   form.ShipAddress,
			State:     form.ShipState,
			StateCode: form.ShipStateCode,
			GSTIN:     form.ShipGSTIN,
		},
	}
	if rec.ReferenceNo == "" {
		rec.ReferenceNo = "N/A"
	}

	var err error
	if rec.Discount, err = parseAmount("discount", form.Discount); err != nil {
		return nil, err
	}
	if rec.CGSTRate, err = parseAmount("cgst_rate", form.CGSTRate); err != nil {
		return nil, err
	}
	if rec.SGSTRate, err = parseAmount("sgst_rate", form.SGSTRate); err != nil {
		return nil, err
	}
	if rec.IGSTRate, err = parseAmount("igst_rate", form.IGSTRate); err != nil {
		return nil, err
	}

	if rec.Items, err = buildItems(form.Items); err != nil {
		return nil, err
	}

	sum := decimal.Zero
	for _, it := range rec.Items {
		if it.Amount.Valid {
			sum = sum.Add(it.Amount.Decimal)
		}
	}
	rec.Subtotal = sum.Sub(rec.Discount)
	rec.CGSTAmount = rec.Subtotal.Mul(rec.CGSTRate).Div(hundred)
	rec.SGSTAmount = rec.Subtotal.Mul(rec.SGSTRate).Div(hundred)
	rec.IGSTAmount = rec.Subtotal.Mul(rec.IGSTRate).Div(hundred)
	rec.TotalTax = rec.CGSTAmount.Add(rec.SGSTAmount).Add(rec.IGSTAmount)
	rec.GrandTotalRaw = rec.Subtotal.Add(rec.TotalTax)

	// Always rounds down; round off is therefore zero or negative.
	floored := rec.GrandTotalRaw.Floor()
	rec.RoundOff = floored.Sub(rec.GrandTotalRaw)
	if floored.GreaterThan(maxGrandTotal) {
		return nil, &InputError{Field: "grand_total", Value: floored.String(), Err: ErrAmountTooLarge}
	}
	rec.GrandTotal = floored.IntPart()

	words, err := RupeesInWords(rec.GrandTotal)
	if err != nil {
		return nil, &InputError{Field: "grand_total", Value: floored.String(), Err: err}
	}
	rec.AmountInWords = words

	return rec, nil
}

// buildItems drops rows without a description, parses the rest, keeps the first
// FixedItemRows and pads with placeholders.
func buildItems(inputs []models.ItemInput) ([]models.LineItem, error) {
	items := make([]models.LineItem, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Description) == "" {
			continue
		}
		qty, err := parseAmount("item_qty", in.Qty)
		if err != nil {
			return nil, err
		}
		rate, err := parseAmount("item_rate", in.Rate)
		if err != nil {
			return nil, err
		}
		items = append(items, models.LineItem{
			Description: in.Description,
			HSN:         in.HSN,
			Qty:         decimal.NewNullDecimal(qty),
			UOM:         in.UOM,
			Rate:        decimal.NewNullDecimal(rate),
			Amount:      decimal.NewNullDecimal(qty.Mul(rate)),
		})
	}
	if len(items) > models.FixedItemRows {
		items = items[:models.FixedItemRows]
	}
	for len(items) < models.FixedItemRows {
		items = append(items, models.PlaceholderItem())
	}
	return items, nil
}

// parseAmount reads a numeric form value. Blank means zero.
func parseAmount(field, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &InputError{Field: field, Value: raw, Err: ErrInvalidNumber}
	}
	return d, nil
}

// InvoiceFilename follows the {invoice_no}_{invoice_date}.{ext} convention with
// path separators replaced.
func InvoiceFilename(rec *models.InvoiceRecord, ext string) string {
	name := rec.InvoiceNo + "_" + rec.InvoiceDate + "." + ext
	return strings.NewReplacer("/", "-", "\\", "-", "\"", "", "\n", "", "\r", "").Replace(name)
}
