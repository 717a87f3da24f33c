package handler

import (
	"net/http"

	"salonpos/internal/dto"
	"salonpos/internal/service"

	"github.com/gin-gonic/gin"
)

type RecetasHandler struct{ svc service.RecetaService }

func NewRecetasHandler(svc service.RecetaService) *RecetasHandler {
	return &RecetasHandler{svc: svc}
}

func (h *RecetasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error al listar recetas")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecetasHandler) Guardar(c *gin.Context) {
	var req dto.GuardarRecetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Guardar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Error al guardar la receta")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecetasHandler) Costo(c *gin.Context) {
	id, ok := paramID(c, "catalogo_id")
	if !ok {
		return
	}
	resp, err := h.svc.Costo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Error al calcular el costo")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reconstruir drops every recipe and regenerates the standard kits.
func (h *RecetasHandler) Reconstruir(c *gin.Context) {
	resp, err := h.svc.ReconstruirEstandar(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error al reconstruir recetas")
		return
	}
	c.JSON(http.StatusOK, resp)
}
