package handler

import (
	"net/http"

	"salonpos/internal/dto"
	"salonpos/internal/service"

	"github.com/gin-gonic/gin"
)

type ServiciosHandler struct{ svc service.ServicioService }

func NewServiciosHandler(svc service.ServicioService) *ServiciosHandler {
	return &ServiciosHandler{svc: svc}
}

// Registrar godoc
// @Summary Registrar un servicio realizado
// @Tags servicios
// @Accept json
// @Produce json
// @Param body body dto.RegistrarServicioRequest true "Servicio"
// @Success 201 {object} dto.ServicioResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/servicios [post]
func (h *ServiciosHandler) Registrar(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req dto.RegistrarServicioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), a, req)
	if err != nil {
		respondError(c, err, "Error al registrar el servicio")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ServiciosHandler) ListarPropios(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var filter dto.MisServiciosFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarPropios(c.Request.Context(), a, filter)
	if err != nil {
		respondError(c, err, "Error al listar servicios")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ServiciosHandler) Actualizar(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarServicioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), a, id, req)
	if err != nil {
		respondError(c, err, "Error al actualizar el servicio")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ServiciosHandler) EliminarSoft(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarSoft(c.Request.Context(), a, id); err != nil {
		respondError(c, err, "Error al eliminar el servicio")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ServiciosHandler) EliminarDefinitivo(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarDefinitivo(c.Request.Context(), a, id); err != nil {
		respondError(c, err, "Error al eliminar el servicio")
		return
	}
	c.Status(http.StatusNoContent)
}
