package models

import "net/url"

// ItemInput is one raw item row as submitted.
type ItemInput struct {
	Description string `json:"item_desc"`
	HSN         string `json:"item_hsn"`
	Qty         string `json:"item_qty"`
	UOM         string `json:"item_uom"`
	Rate        string `json:"item_rate"`
}

// InvoiceForm holds the raw string values of the new-invoice form.
type InvoiceForm struct {
	InvoiceNo       string `json:"invoice_no"`
	InvoiceDate     string `json:"invoice_date"`
	BuyerOrderNo    string `json:"buyer_order_no"`
	SupplyDate      string `json:"supply_date"`
	TransporterName string `json:"transporter_name"`
	VehicleNo       string `json:"vehicle_no"`
	GRNo            string `json:"gr_no"`
	ReferenceNo     string `json:"reference_no"`

	ClientName      string `json:"client_name"`
	ClientAddress   string `json:"client_address"`
	ClientState     string `json:"client_state"`
	ClientStateCode string `json:"client_state_code"`
	ClientGSTIN     string `json:"client_gstin"`

	ShipName      string `json:"ship_name"`
	ShipAddress   string `json:"ship_address"`
	ShipState     string `json:"ship_state"`
	ShipStateCode string `json:"ship_state_code"`
	ShipGSTIN     string `json:"ship_gstin"`

	Discount string `json:"discount"`
	CGSTRate string `json:"cgst_rate"`
	SGSTRate string `json:"sgst_rate"`
	IGSTRate string `json:"igst_rate"`

	Items []ItemInput `json:"items"`
}

// FormFromValues reads the recognized keys out of a submitted form. Item columns
// are parallel arrays, accepted both as "item_desc[]" and "item_desc"; a column
// shorter than item_desc yields blank cells.
func FormFromValues(v url.Values) InvoiceForm {
	f := InvoiceForm{
		InvoiceNo:       v.Get("invoice_no"),
		InvoiceDate:     v.Get("invoice_date"),
		BuyerOrderNo:    v.Get("buyer_order_no"),
		SupplyDate:      v.Get("supply_date"),
		TransporterName: v.Get("transporter_name"),
		VehicleNo:       v.Get("vehicle_no"),
		GRNo:            v.Get("gr_no"),
		ReferenceNo:     v.Get("reference_no"),
		ClientName:      v.Get("client_name"),
		ClientAddress:   v.Get("client_address"),
		ClientState:     v.Get("client_state"),
		ClientStateCode: v.Get("client_state_code"),
		ClientGSTIN:     v.Get("client_gstin"),
		ShipName:        v.Get("ship_name"),
		ShipAddress:     v.Get("ship_address"),
		ShipState:       v.Get("ship_state"),
		ShipStateCode:   v.Get("ship_state_code"),
		ShipGSTIN:       v.Get("ship_gstin"),
		Discount:        v.Get("discount"),
		CGSTRate:        v.Get("cgst_rate"),
		SGSTRate:        v.Get("sgst_rate"),
		IGSTRate:        v.Get("igst_rate"),
	}

	desc := column(v, "item_desc")
	hsn := column(v, "item_hsn")
	qty := column(v, "item_qty")
	uom := column(v, "item_uom")
	rate := column(v, "item_rate")
	for i := range desc {
		f.Items = append(f.Items, ItemInput{
			Description: desc[i],
			HSN:         cell(hsn, i),
			Qty:         cell(qty, i),
			UOM:         cell(uom, i),
			Rate:        cell(rate, i),
		})
	}
	return f
}

// ItemRows pads the raw rows so the form always shows FixedItemRows inputs.
func (f InvoiceForm) ItemRows() []ItemInput {
	rows := append([]ItemInput(nil), f.Items...)
	for len(rows) < FixedItemRows {
		rows = append(rows, ItemInput{})
	}
	return rows
}

func column(v url.Values, key string) []string {
	if vals, ok := v[key+"[]"]; ok {
		return vals
	}
	return v[key]
}

func cell(col []string, i int) string {
	if i < len(col) {
		return col[i]
	}
	return ""
}
