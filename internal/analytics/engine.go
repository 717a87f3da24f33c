package analytics

import (
	"salonpos/internal/model"

	"github.com/google/uuid"
)

// Snapshot is the full record set read from the store at one point in time.
type Snapshot struct {
	Usuarios  []model.Usuario
	Servicios []model.Servicio
	Gastos    []model.Gasto
	Catalogo  []model.ServicioCatalogo
	Insumos   []model.Insumo
	Recetas   []model.Receta
	Extras    []model.ExtraCatalogo
}

type Filtered struct {
	Services []Sale
	Expenses []model.Gasto
}

// Dashboard bundles every figure the owner view renders for one filter.
type Dashboard struct {
	Filter     Filter            `json:"filter"`
	Summary    Summary           `json:"summary"`
	Staff      []StaffStat       `json:"staff"`
	Weekdays   [7]WeekdayBucket  `json:"weekdays"`
	Daily      []DailyPoint      `json:"daily"`
	Popularity []PopularityEntry `json:"popularity"`
	TopService *PopularityEntry  `json:"topService"`
	TopStaff   *StaffStat        `json:"topStaff"`
}

// Engine binds one snapshot to the aggregation functions. It is built per
// snapshot and never updated in place.
type Engine struct {
	users  []model.Usuario
	lookup UserLookup
	sales  []Sale
	gastos []model.Gasto
	costs  *CostIndex
}

func NewEngine(snap Snapshot, table CostTable) *Engine {
	if table == nil {
		table = DefaultCostTable()
	}
	return &Engine{
		users:  snap.Usuarios,
		lookup: LookupFrom(snap.Usuarios),
		sales:  NormalizeAll(snap.Servicios),
		gastos: snap.Gastos,
		costs:  NewCostIndex(snap.Recetas, snap.Insumos, snap.Catalogo, table),
	}
}

func (e *Engine) Lookup(id uuid.UUID) (model.Usuario, bool) { return e.lookup(id) }

func (e *Engine) Costs() *CostIndex { return e.costs }

func (e *Engine) Sales() []Sale { return e.sales }

func (e *Engine) ApplyFilter(f Filter) Filtered {
	return Filtered{
		Services: FilterServices(e.sales, f),
		Expenses: FilterExpenses(e.gastos, f),
	}
}

func (e *Engine) ComputeSummary(f Filtered) Summary {
	return Summarize(f.Services, f.Expenses, e.lookup, e.costs)
}

func (e *Engine) ComputePerStaff(f Filtered) []StaffStat {
	return PerStaff(f.Services, f.Expenses, e.users)
}

func (e *Engine) ComputeWeekdayTrend(sales []Sale) [7]WeekdayBucket { return WeekdayTrend(sales) }

func (e *Engine) ComputeDailyTrend(sales []Sale) []DailyPoint { return DailyTrend(sales) }

func (e *Engine) ComputeServicePopularity(sales []Sale) []PopularityEntry {
	return ServicePopularity(sales)
}

// Dashboard runs the filter once and every aggregator over its result.
func (e *Engine) Dashboard(f Filter) Dashboard {
	filtered := e.ApplyFilter(f)
	d := Dashboard{
		Filter:     f,
		Summary:    e.ComputeSummary(filtered),
		Staff:      e.ComputePerStaff(filtered),
		Weekdays:   e.ComputeWeekdayTrend(filtered.Services),
		Daily:      e.ComputeDailyTrend(filtered.Services),
		Popularity: e.ComputeServicePopularity(filtered.Services),
	}
	if top, ok := TopService(d.Popularity); ok {
		d.TopService = &top
	}
	if top, ok := TopStaffByRevenue(d.Staff); ok && top.ServiceCount > 0 {
		d.TopStaff = &top
	}
	return d
}
