package handler

import (
	"net/http"

	"salonpos/internal/dto"
	"salonpos/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

func (h *InventarioHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarInsumos(c.Request.Context(), soloActivos(c))
	if err != nil {
		respondError(c, err, "Error al listar insumos")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) Crear(c *gin.Context) {
	var req dto.CrearInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearInsumo(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Error al crear el insumo")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventarioHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarInsumo(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Error al actualizar el insumo")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) AjustarStock(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Error al ajustar el stock")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) ObtenerAlertas(c *gin.Context) {
	resp, err := h.svc.ListarBajoStock(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error al obtener alertas")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	var filter dto.MovimientoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Error al listar movimientos")
		return
	}
	c.JSON(http.StatusOK, resp)
}
