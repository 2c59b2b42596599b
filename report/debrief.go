// Package report renders the end-of-run debrief as a printable PDF.
package report

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/milk9111/protocol/gamestate"
)

const (
	pageW     = 595
	margin    = 40
	titleSize = 18
	headSize  = 11
	bodySize  = 9
)

// Debrief is everything the PDF shows.
type Debrief struct {
	Archetype string
	Summary   string
	Report    string
	Entries   []gamestate.Entry
	// Order and Efficiency are the narrator's final judgement in [-1, 1].
	Order      float64
	Efficiency float64
	Generated  time.Time
}

// Generate returns the debrief as PDF bytes.
func Generate(d Debrief) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle("PROTOCOL Debrief", false)
	pdf.AddPage()

	// Terminal-green header band
	pdf.SetFillColor(5, 7, 12)
	pdf.Rect(0, 0, pageW, 90, "F")
	pdf.SetTextColor(0, 255, 156)
	pdf.SetFont("Courier", "B", titleSize)
	pdf.SetXY(margin, 30)
	pdf.CellFormat(pageW-2*margin, 20, "PROTOCOL // OPERATOR DEBRIEF", "", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", bodySize)
	generated := d.Generated
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.SetX(margin)
	pdf.CellFormat(pageW-2*margin, 12, "GENERATED "+generated.UTC().Format(time.RFC3339), "", 1, "L", false, 0, "")

	pdf.SetTextColor(20, 20, 20)
	pdf.SetY(110)

	section(pdf, "CLASSIFICATION")
	pdf.SetFont("Courier", "B", 14)
	archetype := d.Archetype
	if archetype == "" {
		archetype = "UNCLASSIFIED"
	}
	pdf.CellFormat(0, 18, archetype, "", 1, "L", false, 0, "")
	if d.Summary != "" {
		pdf.SetFont("Courier", "", bodySize)
		pdf.MultiCell(0, 12, d.Summary, "", "L", false)
	}

	section(pdf, "PROFILE")
	axis(pdf, "ORDER / FREEDOM", d.Order)
	axis(pdf, "EFFICIENCY / EMPATHY", d.Efficiency)

	section(pdf, "TELEMETRY")
	pdf.SetFont("Courier", "", bodySize)
	for _, e := range d.Entries {
		pdf.CellFormat(220, 12, e.Key, "B", 0, "L", false, 0, "")
		pdf.CellFormat(0, 12, e.Value, "B", 1, "L", false, 0, "")
	}

	section(pdf, "FINAL REPORT")
	pdf.SetFont("Courier", "", bodySize)
	text := d.Report
	if text == "" {
		text = "No report received."
	}
	pdf.MultiCell(0, 12, text, "", "L", false)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("report: render: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report: output: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders d to path.
func WriteFile(path string, d Debrief) error {
	b, err := Generate(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(10)
	pdf.SetFont("Courier", "B", headSize)
	pdf.SetTextColor(0, 120, 80)
	pdf.CellFormat(0, 16, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(20, 20, 20)
}

// axis draws a labelled bar with a marker at v in [-1, 1].
func axis(pdf *gofpdf.Fpdf, label string, v float64) {
	v = max(-1, min(1, v))
	pdf.SetFont("Courier", "", bodySize)
	pdf.CellFormat(160, 14, label, "", 0, "L", false, 0, "")

	x, y := pdf.GetXY()
	const barW = 240.0
	pdf.SetDrawColor(60, 60, 60)
	pdf.Rect(x, y+5, barW, 4, "D")
	mx := x + (v+1)/2*barW
	pdf.SetFillColor(0, 160, 100)
	pdf.Rect(mx-3, y+2, 6, 10, "F")

	pdf.SetX(x + barW + 10)
	pdf.CellFormat(0, 14, fmt.Sprintf("%+.2f", v), "", 1, "L", false, 0, "")
}
