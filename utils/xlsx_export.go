package utils

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"gstinvoice/models"
)

const xlsxSheet = "Invoice"

// XLSXItemHeaderRow is the row holding the item column titles; item rows follow it.
const XLSXItemHeaderRow = 9

// ExportXLSX lays the computed invoice out on a single worksheet.
func ExportXLSX(rec *models.InvoiceRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f}
	w.set("A1", rec.Company.Name)
	w.merge("A1", "G1")
	w.set("A2", "GSTIN: "+rec.Company.GSTIN)
	w.merge("A2", "G2")
	w.set("A3", "TAX INVOICE")
	w.merge("A3", "G3")

	w.row(4, "Invoice No", rec.InvoiceNo, "", "Invoice Date", rec.InvoiceDate)
	w.row(5, "Buyer's Order No", rec.BuyerOrderNo, "", "Date of Supply", rec.SupplyDate)
	w.row(6, "Transporter", rec.TransporterName, "", "Vehicle No", rec.VehicleNo)
	w.row(7, "G.R. No", rec.GRNo, "", "Reference No", rec.ReferenceNo)
	w.row(8, "Billed To", partyLine(rec.BilledTo), "", "Shipped To", partyLine(rec.ShippedTo))

	w.row(XLSXItemHeaderRow, "S.No.", "Description", "HSN/SAC", "Qty", "UOM", "Rate", "Amount")
	r := XLSXItemHeaderRow + 1
	for i, it := range rec.Items {
		if !it.IsPlaceholder() {
			w.row(r, fmt.Sprint(i+1), it.Description, it.HSN, nullQty(it.Qty), it.UOM, nullMoney(it.Rate), nullMoney(it.Amount))
		}
		r++
	}

	for _, t := range [][2]string{
		{"Less: Discount", rec.Discount.StringFixed(2)},
		{"Sub Total", rec.Subtotal.StringFixed(2)},
		{"CGST @ " + rec.CGSTRate.String() + "%", rec.CGSTAmount.StringFixed(2)},
		{"SGST @ " + rec.SGSTRate.String() + "%", rec.SGSTAmount.StringFixed(2)},
		{"IGST @ " + rec.IGSTRate.String() + "%", rec.IGSTAmount.StringFixed(2)},
		{"Total Tax", rec.TotalTax.StringFixed(2)},
		{"Round Off", rec.RoundOff.StringFixed(2)},
		{"Grand Total", fmt.Sprintf("%d.00", rec.GrandTotal)},
	} {
		w.row(r, "", "", "", "", "", t[0], t[1])
		r++
	}
	w.row(r, "Amount in words", rec.AmountInWords)

	if w.err != nil {
		return nil, w.err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

func partyLine(p models.Party) string {
	s := p.Name
	if p.GSTIN != "" {
		s += " (GSTIN " + p.GSTIN + ")"
	}
	return s
}

// sheetWriter keeps the first excelize error so the layout code stays linear.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) set(cell, value string) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(xlsxSheet, cell, value)
}

func (w *sheetWriter) merge(from, to string) {
	if w.err != nil {
		return
	}
	w.err = w.f.MergeCell(xlsxSheet, from, to)
}

func (w *sheetWriter) row(r int, values ...string) {
	for i, v := range values {
		if v == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, r)
		if err != nil {
			w.err = err
			return
		}
		w.set(cell, v)
	}
}
