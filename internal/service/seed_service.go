package service

import (
	"context"
	"fmt"

	"salonpos/internal/model"
	"salonpos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedService installs the first-run data set exactly once per database.
type SeedService interface {
	// Seed reports whether this call performed the seeding. A database that
	// was already seeded is left untouched.
	Seed(ctx context.Context) (bool, error)
}

type seedService struct {
	db *gorm.DB
}

func NewSeedService(db *gorm.DB) SeedService {
	return &seedService{db: db}
}

func (s *seedService) Seed(ctx context.Context) (bool, error) {
	seeded := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		won, err := repository.NewMetaRepository(tx).ClaimSeed(ctx)
		if err != nil {
			return fmt.Errorf("claim seed: %w", err)
		}
		if !won {
			return nil
		}

		usuarios := repository.NewUsuarioRepository(tx)
		for _, u := range defaultUsuarios() {
			if err := usuarios.Create(ctx, &u); err != nil {
				return fmt.Errorf("seed usuario %s: %w", u.Nombre, err)
			}
		}

		catalogoRepo := repository.NewCatalogoRepository(tx)
		catalogo := defaultCatalogo()
		for i := range catalogo {
			if err := catalogoRepo.CreateServicio(ctx, &catalogo[i]); err != nil {
				return fmt.Errorf("seed catalogo %s: %w", catalogo[i].Nombre, err)
			}
		}
		for _, e := range defaultExtras() {
			if err := catalogoRepo.CreateExtra(ctx, &e); err != nil {
				return fmt.Errorf("seed extra %s: %w", e.Nombre, err)
			}
		}

		insumoRepo := repository.NewInsumoRepository(tx)
		insumos := defaultInsumos()
		for i := range insumos {
			if err := insumoRepo.Create(ctx, &insumos[i]); err != nil {
				return fmt.Errorf("seed insumo %s: %w", insumos[i].Nombre, err)
			}
		}

		recetas, omitidos := recetasEstandar(catalogo, insumos)
		if len(omitidos) > 0 {
			return fmt.Errorf("seed recetas: missing consumables %v", omitidos)
		}
		if err := repository.NewRecetaRepository(tx).ReplaceAll(ctx, recetas); err != nil {
			return fmt.Errorf("seed recetas: %w", err)
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		log.Info().Msg("seed: default data installed")
	} else {
		log.Debug().Msg("seed: database already seeded")
	}
	return seeded, nil
}

func defaultUsuarios() []model.Usuario {
	return []model.Usuario{
		{Nombre: "Principal", PIN: "2773", Rol: model.RolOwner, Color: "from-purple-500 to-indigo-600", Icono: "crown", ComisionPct: decimal.Zero, Activo: true},
		{Nombre: "Emily", PIN: "6578", Rol: model.RolStaff, Color: "from-pink-500 to-rose-600", Icono: "user", ComisionPct: decimal.NewFromInt(35), Activo: true},
		{Nombre: "Damaris", PIN: "2831", Rol: model.RolStaff, Color: "from-blue-500 to-cyan-600", Icono: "user", ComisionPct: decimal.NewFromInt(35), Activo: true},
	}
}

func defaultCatalogo() []model.ServicioCatalogo {
	svc := func(nombre, cat, precio string) model.ServicioCatalogo {
		return model.ServicioCatalogo{Nombre: nombre, Categoria: cat, Precio: decimal.RequireFromString(precio), Activo: true}
	}
	return []model.ServicioCatalogo{
		svc("Manicura tradicional", model.CategoriaManicura, "10"),
		svc("Manicura semipermanente", model.CategoriaManicura, "15"),
		svc("Uñas acrílicas", model.CategoriaManicura, "30"),
		svc("Uñas en gel", model.CategoriaManicura, "25"),
		svc("Pedicura tradicional", model.CategoriaPedicura, "15"),
		svc("Pedicura spa", model.CategoriaPedicura, "25"),
	}
}

func defaultExtras() []model.ExtraCatalogo {
	return []model.ExtraCatalogo{
		{Nombre: "Decoración a mano", PrecioUna: decimal.RequireFromString("1"), Activo: true},
		{Nombre: "Pedrería", PrecioUna: decimal.RequireFromString("0.5"), Activo: true},
		{Nombre: "Efecto cromado", PrecioUna: decimal.RequireFromString("0.75"), Activo: true,
			Categorias: datatypes.JSONSlice[string]{model.CategoriaManicura}},
	}
}

// defaultInsumos covers every name the standard deductions reference.
func defaultInsumos() []model.Insumo {
	ins := func(nombre, unidad, costo, stock, minimo string) model.Insumo {
		return model.Insumo{
			Nombre:        nombre,
			Unidad:        unidad,
			CostoUnitario: decimal.RequireFromString(costo),
			Stock:         decimal.RequireFromString(stock),
			StockMinimo:   decimal.RequireFromString(minimo),
			Activo:        true,
		}
	}
	return []model.Insumo{
		ins("Guantes (par)", "par", "0.08", "100", "20"),
		ins("Mascarillas", "unidad", "0.05", "100", "20"),
		ins("Palillo naranja", "unidad", "0.02", "200", "30"),
		ins("Bastoncillos", "unidad", "0.01", "300", "50"),
		ins("Wipes", "unidad", "0.01", "500", "100"),
		ins("Toalla desechable", "unidad", "0.06", "100", "20"),
		ins("Gorro", "unidad", "0.04", "100", "20"),
		ins("Campo quirúrgico", "unidad", "0.05", "100", "20"),
		ins("Moldes esculpir", "unidad", "0.01", "500", "100"),
		ins("Algodón", "unidad", "0.01", "1000", "100"),
		ins("Papel film", "metro", "0.02", "300", "30"),
	}
}
