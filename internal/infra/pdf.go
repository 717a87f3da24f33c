package infra

// pdf.go: owner report rendered with go-pdf/fpdf on A4:
//   - salon header and filter range
//   - summary figures
//   - per-staff table with commission reconciliation
//   - weekday and popularity tables
//
// The output file is saved to storagePath/reporte_{desde}_{hasta}_{stamp}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"salonpos/internal/analytics"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateReportePDF writes the dashboard for one filter to a PDF file and
// returns its path. storagePath is created if needed.
func GenerateReportePDF(d analytics.Dashboard, storagePath string, generado time.Time) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	desde, hasta := rangeLabel(d.Filter.DateFrom, "inicio"), rangeLabel(d.Filter.DateTo, "hoy")
	fileName := fmt.Sprintf("reporte_%s_%s_%d.pdf", desde, hasta, generado.UnixNano())
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr("Reporte del salón"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Período: %s a %s", desde, hasta)), "", 1, "C", false, 0, "")
	if d.Filter.PaymentMethod != "" && d.Filter.PaymentMethod != analytics.PaymentAll {
		pdf.CellFormat(contentW, 5, tr("Método de pago: "+d.Filter.PaymentMethod), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, "Generado: "+generado.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Summary ──────────────────────────────────────────────────────────────
	section(pdf, tr, contentW, "Resumen")
	s := d.Summary
	rows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Ingresos brutos", s.GrossRevenue},
		{"Efectivo", s.CashTotal},
		{"Transferencia", s.TransferTotal},
		{"Comisiones", s.TotalCommissions},
		{"Gastos", s.TotalExpenses},
		{"Reposición", s.TotalReplenishment},
	}
	pdf.SetFont("Helvetica", "", 9)
	for _, r := range rows {
		pdf.CellFormat(contentW*0.6, 6, tr(r.label), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 6, money(r.value), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.6, 7, "Ganancia neta", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 7, money(s.NetProfit), "T", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%d servicios, %d gastos", s.ServiceCount, s.ExpenseCount), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Staff ────────────────────────────────────────────────────────────────
	section(pdf, tr, contentW, "Personal")
	staffCols := []float64{0.24, 0.1, 0.16, 0.16, 0.17, 0.17}
	header(pdf, tr, contentW, staffCols, []string{"Nombre", "Serv.", "Bruto", "Comisión", "Pagado", "Pendiente"})
	pdf.SetFont("Helvetica", "", 8)
	for _, st := range d.Staff {
		cells := []string{st.Name, fmt.Sprint(st.ServiceCount), money(st.GrossRevenue), money(st.CommissionEarned), money(st.CommissionPaid), money(st.Outstanding)}
		row(pdf, tr, contentW, staffCols, cells)
	}
	pdf.Ln(3)

	// ── Weekdays ─────────────────────────────────────────────────────────────
	section(pdf, tr, contentW, "Por día de la semana")
	dayCols := []float64{0.4, 0.3, 0.3}
	header(pdf, tr, contentW, dayCols, []string{"Día", "Servicios", "Ingresos"})
	pdf.SetFont("Helvetica", "", 8)
	for _, b := range d.Weekdays {
		row(pdf, tr, contentW, dayCols, []string{b.Label, fmt.Sprint(b.Count), money(b.Revenue)})
	}
	pdf.Ln(3)

	// ── Popularity ───────────────────────────────────────────────────────────
	section(pdf, tr, contentW, "Servicios más vendidos")
	popCols := []float64{0.46, 0.16, 0.22, 0.16}
	header(pdf, tr, contentW, popCols, []string{"Servicio", "Cant.", "Ingresos", "%"})
	pdf.SetFont("Helvetica", "", 8)
	for i, p := range d.Popularity {
		if i == 15 {
			break
		}
		row(pdf, tr, contentW, popCols, []string{p.Name, fmt.Sprint(p.Count), money(p.Revenue), p.Share.StringFixed(2)})
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func rangeLabel(date, fallback string) string {
	if date == "" {
		return fallback
	}
	return date
}

func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func section(pdf *fpdf.Fpdf, tr func(string) string, w float64, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(w, 7, tr(title), "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func header(pdf *fpdf.Fpdf, tr func(string) string, w float64, cols []float64, labels []string) {
	pdf.SetFont("Helvetica", "B", 8)
	for i, l := range labels {
		align := "R"
		if i == 0 {
			align = "L"
		}
		ln := 0
		if i == len(labels)-1 {
			ln = 1
		}
		pdf.CellFormat(w*cols[i], 5, tr(l), "B", ln, align, false, 0, "")
	}
}

func row(pdf *fpdf.Fpdf, tr func(string) string, w float64, cols []float64, cells []string) {
	for i, c := range cells {
		align := "R"
		if i == 0 {
			align = "L"
			if len([]rune(c)) > 34 {
				c = string([]rune(c)[:33]) + "..."
			}
		}
		ln := 0
		if i == len(cells)-1 {
			ln = 1
		}
		pdf.CellFormat(w*cols[i], 5, tr(c), "", ln, align, false, 0, "")
	}
}
