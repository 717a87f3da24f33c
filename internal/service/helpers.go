package service

import (
	"errors"
	"time"

	"salonpos/internal/apierror"
	"salonpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID     uuid.UUID
	Nombre string
	Rol    string
}

func (a Actor) EsOwner() bool { return a.Rol == model.RolOwner }

// notFound maps gorm's missing-row error to the domain sentinel and passes
// every other error through.
func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound(entity)
	}
	return err
}

// hoy is the salon's calendar day in local time.
func hoy(now time.Time) string { return now.Format(time.DateOnly) }

func fechaOHoy(fecha string, now time.Time) string {
	if fecha == "" {
		return hoy(now)
	}
	return fecha
}

func parseID(raw, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierror.Invalidf("%s: ID invalido", entity)
	}
	return id, nil
}

func ptrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func formatTime(t time.Time) string { return t.Format(time.RFC3339) }
