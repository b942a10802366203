// Package chronicle renders a printable PDF summary of a session:
// hero sheet, inventory table, and the journey log in order.
package chronicle

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"questwalk/internal/game"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 40
	fontSize  = 10
	titleSize = 18
	lineH     = 14
)

// Generate returns PDF bytes for the given hero and journey. victory
// colors the closing line when the journey reached an ending.
func Generate(snap game.Snapshot, journey []string, victory bool) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	// Parchment background
	pdf.SetFillColor(245, 235, 210)
	pdf.Rect(0, 0, pageW, pageH, "F")

	// Brown ink
	pdf.SetDrawColor(80, 50, 30)
	pdf.SetTextColor(80, 50, 30)

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pageW-2*margin, 20, "Adventure Chronicle", "", 1, "C", false, 0, "")

	name := snap.Name
	if name == "" {
		name = "Nameless hero"
	}
	pdf.SetFont("Helvetica", "", fontSize)
	pdf.Ln(8)
	sheet := []string{
		fmt.Sprintf("Hero: %s", name),
		fmt.Sprintf("Life: %d    Experience: %d", snap.Life, snap.XP),
		fmt.Sprintf("Strength: %d    Stamina: %d    Gold: %d", snap.Strength, snap.Stamina, snap.Gold),
		heldWeaponLine(snap.Weapon),
	}
	for _, line := range sheet {
		pdf.CellFormat(pageW-2*margin, lineH, line, "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", fontSize+2)
	pdf.CellFormat(pageW-2*margin, lineH, "Inventory", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", fontSize)
	if len(snap.Inventory) == 0 {
		pdf.CellFormat(pageW-2*margin, lineH, "An empty bag.", "", 1, "L", false, 0, "")
	}
	for _, item := range snap.Inventory {
		mark := ""
		if item.Equipped {
			mark = "  (equipped)"
		}
		row := fmt.Sprintf("%s  str +%d  sta +%d  worth %d gold%s",
			item.Weapon.Name, item.Weapon.Strength, item.Weapon.Stamina, item.Weapon.Price, mark)
		pdf.CellFormat(pageW-2*margin, lineH, row, "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", fontSize+2)
	pdf.CellFormat(pageW-2*margin, lineH, "The Journey", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", fontSize)
	for _, line := range journey {
		pdf.MultiCell(pageW-2*margin, lineH, line, "", "L", false)
	}

	if len(journey) > 0 {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "I", fontSize)
		if victory {
			pdf.SetTextColor(30, 90, 30)
			pdf.CellFormat(pageW-2*margin, lineH, "A legend, complete.", "", 1, "C", false, 0, "")
		} else {
			pdf.CellFormat(pageW-2*margin, lineH, "The road goes on.", "", 1, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func heldWeaponLine(w game.Weapon) string {
	if w.IsZero() {
		return "Held weapon: bare hands"
	}
	return fmt.Sprintf("Held weapon: %s (str +%d, sta +%d)", w.Name, w.Strength, w.Stamina)
}
