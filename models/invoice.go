package models

import "github.com/shopspring/decimal"

// FixedItemRows is the number of item rows printed on every invoice.
const FixedItemRows = 8

type Party struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
	GSTIN     string `json:"gstin"`
}

// LineItem is one printed row. Placeholder rows have every numeric field invalid.
type LineItem struct {
	Description string              `json:"description"`
	HSN         string              `json:"hsn"`
	Qty         decimal.NullDecimal `json:"qty"`
	UOM         string              `json:"uom"`
	Rate        decimal.NullDecimal `json:"rate"`
	Amount      decimal.NullDecimal `json:"amount"`
}

func PlaceholderItem() LineItem {
	return LineItem{}
}

func (li LineItem) IsPlaceholder() bool {
	return !li.Amount.Valid
}

type InvoiceRecord struct {
	InvoiceNo       string `json:"invoice_no"`
	InvoiceDate     string `json:"invoice_date"`
	BuyerOrderNo    string `json:"buyer_order_no"`
	SupplyDate      string `json:"supply_date"`
	TransporterName string `json:"transporter_name"`
	VehicleNo       string `json:"vehicle_no"`
	GRNo            string `json:"gr_no"`
	ReferenceNo     string `json:"reference_no"`

	Company   Seller `json:"company"`
	BilledTo  Party  `json:"billed_to"`
	ShippedTo Party  `json:"shipped_to"`

	Items []LineItem `json:"items"`

	Discount      decimal.Decimal `json:"discount"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	CGSTRate      decimal.Decimal `json:"cgst_rate"`
	SGSTRate      decimal.Decimal `json:"sgst_rate"`
	IGSTRate      decimal.Decimal `json:"igst_rate"`
	CGSTAmount    decimal.Decimal `json:"cgst_amount"`
	SGSTAmount    decimal.Decimal `json:"sgst_amount"`
	IGSTAmount    decimal.Decimal `json:"igst_amount"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	GrandTotalRaw decimal.Decimal `json:"grand_total_raw"`
	RoundOff      decimal.Decimal `json:"round_off"`
	GrandTotal    int64           `json:"grand_total"`
	AmountInWords string          `json:"amount_in_words"`

	EncodedLogo string `json:"encoded_logo,omitempty"`
}

// FilledItems returns the rows that carry a real item.
func (r *InvoiceRecord) FilledItems() []LineItem {
	var out []LineItem
	for _, it := range r.Items {
		if !it.IsPlaceholder() {
			out = append(out, it)
		}
	}
	return out
}
