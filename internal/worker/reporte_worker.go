package worker

// reporte_worker.go
// Renders the dashboard PDF for a filter and mails it to the owner.

import (
	"context"
	"encoding/json"
	"fmt"

	"salonpos/internal/analytics"

	"github.com/rs/zerolog/log"
)

// ReporteEmailPayload is the job payload on QueueEmail.
type ReporteEmailPayload struct {
	Filter       analytics.Filter `json:"filter"`
	Destinatario string           `json:"destinatario"`
	Asunto       string           `json:"asunto"`
}

type ReportePDFGenerator interface {
	GenerarPDF(ctx context.Context, f analytics.Filter) (string, error)
}

type ReporteMailer interface {
	SendReporte(to, subject, body, pdfPath string) error
}

type ReporteEmailWorker struct {
	gen    ReportePDFGenerator
	mailer ReporteMailer
}

func NewReporteEmailWorker(gen ReportePDFGenerator, mailer ReporteMailer) *ReporteEmailWorker {
	return &ReporteEmailWorker{gen: gen, mailer: mailer}
}

func (w *ReporteEmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var p ReporteEmailPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("reporte_worker: invalid payload: %w", err)
	}
	return w.Enviar(ctx, p)
}

// Enviar renders and mails one report. It is also the inline path used when
// no job queue is configured.
func (w *ReporteEmailWorker) Enviar(ctx context.Context, p ReporteEmailPayload) error {
	if p.Destinatario == "" {
		log.Warn().Msg("reporte_worker: empty destinatario, skipping")
		return nil
	}

	path, err := w.gen.GenerarPDF(ctx, p.Filter)
	if err != nil {
		return fmt.Errorf("reporte_worker: pdf: %w", err)
	}

	asunto := p.Asunto
	if asunto == "" {
		asunto = "Reporte del salón"
	}
	body := fmt.Sprintf("Adjuntamos el reporte del período %s a %s.", rango(p.Filter.DateFrom, "inicio"), rango(p.Filter.DateTo, "hoy"))
	if err := w.mailer.SendReporte(p.Destinatario, asunto, body, path); err != nil {
		return fmt.Errorf("reporte_worker: send: %w", err)
	}
	log.Info().Str("to", p.Destinatario).Str("pdf", path).Msg("reporte_worker: report sent")
	return nil
}

func rango(fecha, fallback string) string {
	if fecha == "" {
		return fallback
	}
	return fecha
}
