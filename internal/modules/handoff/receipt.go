// README: Single-page PDF receipt for a quoted booking.
package handoff

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"wardharides/internal/modules/pricing"
	"wardharides/internal/types"
)

// Core PDF fonts are Latin-1 only.
var pdfReplacer = strings.NewReplacer("₹", "Rs. ", "➔", "->")

func pdfText(s string) string {
	return pdfReplacer.Replace(s)
}

func RenderReceipt(p Payload, q pricing.Quote, issuedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Wardha Rides Quote", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "WARDHA RIDES - FARE QUOTE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	for _, s := range []string{
		"Issued      : " + issuedAt.Format("2006-01-02 15:04"),
		fmt.Sprintf("Trip        : %s / %s", p.Mode, p.TripType),
		"Pickup      : " + p.Pickup,
		fmt.Sprintf("Passengers  : %d", p.Passengers),
		"Rate table  : " + q.RatesVersion,
	} {
		pdf.Cell(0, 7, pdfText(s))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Breakdown")
	pdf.Ln(8)
	for _, l := range q.Breakdown {
		if l.Highlight {
			pdf.SetFont("Helvetica", "B", 11)
		} else {
			pdf.SetFont("Helvetica", "", 11)
		}
		pdf.CellFormat(120, 7, pdfText(l.Label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, pdfText(l.Value), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(120, 9, "Estimated total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 9, pdfText(types.Rupees(q.FinalPrice)), "T", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if q.PerPersonShare > 0 {
		pdf.Cell(0, 6, pdfText(fmt.Sprintf("Per person (%d pax): %s", q.Passengers, types.Rupees(q.PerPersonShare))))
		pdf.Ln(6)
	}
	if q.SecurityDeposit > 0 {
		pdf.Cell(0, 6, pdfText(fmt.Sprintf("Refundable security deposit: %s (not included above)", types.Rupees(q.SecurityDeposit))))
		pdf.Ln(6)
	}
	if q.LuggageWarning {
		pdf.Cell(0, 6, "Note: luggage space will be tight for this group.")
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "This is an estimate. The booking is confirmed by the operator over WhatsApp or the booking form.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
