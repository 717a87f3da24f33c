package handler

import (
	"net/http"

	"salonpos/internal/dto"
	"salonpos/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogoHandler serves catalog services and per-nail extras. Listings show
// active entries unless ?todos=true.
type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

func soloActivos(c *gin.Context) bool { return c.Query("todos") != "true" }

func (h *CatalogoHandler) ListarServicios(c *gin.Context) {
	resp, err := h.svc.ListarServicios(c.Request.Context(), soloActivos(c))
	if err != nil {
		respondError(c, err, "Error al listar el catalogo")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) CrearServicio(c *gin.Context) {
	var req dto.CrearServicioCatalogoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearServicio(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Error al crear el servicio")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ActualizarServicio(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarServicioCatalogoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarServicio(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Error al actualizar el servicio")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ListarExtras(c *gin.Context) {
	resp, err := h.svc.ListarExtras(c.Request.Context(), soloActivos(c))
	if err != nil {
		respondError(c, err, "Error al listar extras")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) CrearExtra(c *gin.Context) {
	var req dto.CrearExtraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearExtra(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Error al crear el extra")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ActualizarExtra(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarExtraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarExtra(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Error al actualizar el extra")
		return
	}
	c.JSON(http.StatusOK, resp)
}
