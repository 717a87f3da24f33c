package apierror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"salonpos/internal/apierror"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apierror.NotFound("servicio"), http.StatusNotFound},
		{fmt.Errorf("servicio: %w", apierror.Forbidden("no es tuyo")), http.StatusForbidden},
		{apierror.Conflict("PIN en uso"), http.StatusConflict},
		{apierror.Invalidf("monto debe ser mayor a 0"), http.StatusUnprocessableEntity},
		{apierror.ErrUnauthorized, http.StatusUnauthorized},
		{errors.New("pq: connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, apierror.Status(tc.err), tc.err.Error())
	}
}

func TestFrom_HidesInternalErrors(t *testing.T) {
	status, body := apierror.From(errors.New("pq: relation does not exist"), "Error al listar")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Error al listar", body.Detail)

	status, body = apierror.From(apierror.NotFound("insumo"), "x")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "insumo no encontrado", body.Detail)
}
