package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"salonpos/internal/analytics"
	"salonpos/internal/apierror"
	"salonpos/internal/dto"
	"salonpos/internal/export"
	"salonpos/internal/infra"
	"salonpos/internal/model"
	"salonpos/internal/repository"
	"salonpos/internal/worker"

	"github.com/rs/zerolog/log"
)

// CSV export kinds accepted by ExportarCSV.
const (
	CSVServicios   = "servicios"
	CSVGastos      = "gastos"
	CSVPersonal    = "personal"
	CSVDiario      = "diario"
	CSVPopularidad = "popularidad"
)

// ReporteService reads a fresh snapshot for every call; nothing is cached
// between requests.
type ReporteService interface {
	Engine(ctx context.Context) (*analytics.Engine, error)
	Dashboard(ctx context.Context, f analytics.Filter) (*analytics.Dashboard, error)
	// ExportarCSV returns a file name and the CSV body for one export kind.
	ExportarCSV(ctx context.Context, tipo string, f analytics.Filter) (string, string, error)
	GenerarPDF(ctx context.Context, f analytics.Filter) (string, error)
	EnviarPorEmail(ctx context.Context, req dto.EnviarReporteRequest) (*dto.EnviarReporteResponse, error)
}

type ReporteDeps struct {
	Store            repository.RecordStore
	Costos           analytics.CostTable
	PDFStoragePath   string
	Jobs             JobQueue
	Mailer           worker.ReporteMailer
	DefaultRecipient string
}

type reporteService struct {
	ReporteDeps
	now func() time.Time
}

func NewReporteService(deps ReporteDeps) ReporteService {
	if deps.Costos == nil {
		deps.Costos = analytics.DefaultCostTable()
	}
	if deps.PDFStoragePath == "" {
		deps.PDFStoragePath = "./reportes"
	}
	return &reporteService{ReporteDeps: deps, now: time.Now}
}

func (s *reporteService) Engine(ctx context.Context) (*analytics.Engine, error) {
	snap, err := s.Store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: snapshot: %w", err)
	}
	return analytics.NewEngine(snap, s.Costos), nil
}

func (s *reporteService) Dashboard(ctx context.Context, f analytics.Filter) (*analytics.Dashboard, error) {
	if err := validarFiltro(f); err != nil {
		return nil, err
	}
	engine, err := s.Engine(ctx)
	if err != nil {
		return nil, err
	}
	d := engine.Dashboard(f)
	return &d, nil
}

func (s *reporteService) ExportarCSV(ctx context.Context, tipo string, f analytics.Filter) (string, string, error) {
	if err := validarFiltro(f); err != nil {
		return "", "", err
	}
	engine, err := s.Engine(ctx)
	if err != nil {
		return "", "", err
	}
	filtered := engine.ApplyFilter(f)

	var body string
	switch tipo {
	case CSVServicios:
		body, err = export.CSV(serviciosCSV(engine, filtered.Services))
	case CSVGastos:
		body, err = export.CSV(gastosCSV(engine, filtered))
	case CSVPersonal:
		body, err = export.CSV(engine.ComputePerStaff(filtered))
	case CSVDiario:
		body, err = export.CSV(engine.ComputeDailyTrend(filtered.Services))
	case CSVPopularidad:
		body, err = export.CSV(engine.ComputeServicePopularity(filtered.Services))
	default:
		return "", "", apierror.Invalidf("Tipo de exportacion desconocido: %s", tipo)
	}
	if err != nil {
		if errors.Is(err, export.ErrSinDatos) {
			return "", "", apierror.Invalidf("%s", err.Error())
		}
		return "", "", err
	}
	return fmt.Sprintf("%s_%s.csv", tipo, hoy(s.now())), body, nil
}

func serviciosCSV(engine *analytics.Engine, sales []analytics.Sale) []dto.ServicioCSV {
	rows := make([]dto.ServicioCSV, len(sales))
	for i, sale := range sales {
		rows[i] = dto.ServicioCSV{
			Fecha:      sale.Date,
			Cliente:    sale.Client,
			Servicio:   strings.Join(sale.Names(), " + "),
			Personal:   staffName(engine, sale),
			MetodoPago: sale.PaymentMethod,
			Costo:      sale.Cost,
			Comision:   analytics.CommissionAmount(sale, engine.Lookup),
			Reposicion: engine.Costs().ReplenishmentCost(sale),
			Eliminado:  sale.Deleted,
		}
	}
	return rows
}

func gastosCSV(engine *analytics.Engine, f analytics.Filtered) []dto.GastoCSV {
	rows := make([]dto.GastoCSV, len(f.Expenses))
	for i, g := range f.Expenses {
		row := dto.GastoCSV{
			Fecha:       g.Fecha,
			Descripcion: g.Descripcion,
			Categoria:   g.Categoria,
			Monto:       g.Monto,
			Eliminado:   g.Eliminado,
		}
		if g.UsuarioID != nil {
			if u, ok := engine.Lookup(*g.UsuarioID); ok {
				row.Personal = u.Nombre
			}
		}
		rows[i] = row
	}
	return rows
}

func staffName(engine *analytics.Engine, sale analytics.Sale) string {
	if u, ok := engine.Lookup(sale.StaffID); ok {
		return u.Nombre
	}
	return sale.StaffName
}

func (s *reporteService) GenerarPDF(ctx context.Context, f analytics.Filter) (string, error) {
	d, err := s.Dashboard(ctx, f)
	if err != nil {
		return "", err
	}
	return infra.GenerateReportePDF(*d, s.PDFStoragePath, s.now())
}

// EnviarPorEmail queues the report job. Without a queue the report is built
// and sent before returning.
func (s *reporteService) EnviarPorEmail(ctx context.Context, req dto.EnviarReporteRequest) (*dto.EnviarReporteResponse, error) {
	if err := validarFiltro(req.Filter); err != nil {
		return nil, err
	}
	to := strings.TrimSpace(req.Destinatario)
	if to == "" {
		to = s.DefaultRecipient
	}
	if to == "" {
		return nil, apierror.Invalidf("No hay destinatario configurado")
	}
	payload := worker.ReporteEmailPayload{Filter: req.Filter, Destinatario: to}

	if s.Jobs != nil {
		if err := s.Jobs.EnqueueReporteEmail(ctx, payload); err != nil {
			return nil, fmt.Errorf("reporte: enqueue: %w", err)
		}
		return &dto.EnviarReporteResponse{Encolado: true, Destinatario: to}, nil
	}

	if s.Mailer == nil {
		return nil, apierror.Invalidf("El envio de correo no esta configurado")
	}
	log.Debug().Str("to", to).Msg("reporte: no job queue, sending inline")
	if err := worker.NewReporteEmailWorker(s, s.Mailer).Enviar(ctx, payload); err != nil {
		return nil, err
	}
	return &dto.EnviarReporteResponse{Encolado: false, Destinatario: to}, nil
}

func validarFiltro(f analytics.Filter) error {
	for _, d := range []string{f.DateFrom, f.DateTo} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			return apierror.Invalidf("Fecha invalida: %s", d)
		}
	}
	if f.DateFrom != "" && f.DateTo != "" && f.DateFrom > f.DateTo {
		return apierror.Invalidf("La fecha desde es posterior a la fecha hasta")
	}
	switch f.PaymentMethod {
	case "", analytics.PaymentAll, model.MetodoCash, model.MetodoTransfer:
	default:
		return apierror.Invalidf("Metodo de pago invalido")
	}
	return nil
}

var _ worker.ReportePDFGenerator = (*reporteService)(nil)
