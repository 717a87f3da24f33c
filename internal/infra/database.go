package infra

import (
	"fmt"

	"salonpos/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// NewDatabase opens a GORM connection for the given driver and brings the
// schema up to date. sqlite accepts a file path or ":memory:"; postgres takes a
// regular DSN.
func NewDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite, "":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("database: unknown driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == DriverPostgres {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	} else {
		// one writer; an in-memory database also lives only as long as its
		// single connection
		sqlDB.SetMaxOpenConns(1)
	}

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates every table, then applies the indexes
// AutoMigrate cannot express.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if db.Dialector.Name() != DriverPostgres {
		return nil
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent postgres DDL. Each statement uses
// IF NOT EXISTS so re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// dashboard and staff views only read live records
		`CREATE INDEX IF NOT EXISTS idx_servicios_vivos_fecha
		    ON servicios (fecha) WHERE eliminado = false`,
		`CREATE INDEX IF NOT EXISTS idx_servicios_vivos_usuario
		    ON servicios (usuario_id, fecha) WHERE eliminado = false`,
		// commission reconciliation
		`CREATE INDEX IF NOT EXISTS idx_gastos_comisiones
		    ON gastos (usuario_id) WHERE categoria = 'Comisiones' AND eliminado = false`,
		`CREATE INDEX IF NOT EXISTS idx_insumos_bajo_minimo
		    ON insumos (nombre) WHERE activo = true AND stock <= stock_minimo`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
