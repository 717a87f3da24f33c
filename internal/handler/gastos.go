package handler

import (
	"net/http"

	"salonpos/internal/dto"
	"salonpos/internal/service"

	"github.com/gin-gonic/gin"
)

type GastosHandler struct{ svc service.GastoService }

func NewGastosHandler(svc service.GastoService) *GastosHandler {
	return &GastosHandler{svc: svc}
}

func (h *GastosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Error al registrar el gasto")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *GastosHandler) Listar(c *gin.Context) {
	var filter dto.GastoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Error al listar gastos")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GastosHandler) EliminarSoft(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarSoft(c.Request.Context(), a, id); err != nil {
		respondError(c, err, "Error al eliminar el gasto")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GastosHandler) EliminarDefinitivo(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarDefinitivo(c.Request.Context(), id); err != nil {
		respondError(c, err, "Error al eliminar el gasto")
		return
	}
	c.Status(http.StatusNoContent)
}
