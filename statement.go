package atmgo

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

var statementCols = []struct {
	title string
	width float64
}{
	{"Time", 55},
	{"Operation", 30},
	{"Amount", 45},
	{"Balance", 45},
}

func renderStatement(w io.Writer, acct *Account, charges []Charge) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Account statement")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Account: "+acct.ID.String())
	pdf.Ln(6)
	pdf.Cell(0, 6, "Owner: "+acct.OwnerID.String())
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	for _, c := range statementCols {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, chg := range charges {
		row := []string{
			chg.Time.Format(time.RFC3339),
			string(chg.Kind),
			chg.Amount.String(),
			chg.Balance.String(),
		}
		for i, cell := range row {
			pdf.CellFormat(statementCols[i].width, 7, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}
