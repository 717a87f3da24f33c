package handler

import (
	"context"
	"net/http"

	"salonpos/internal/dto"
	"salonpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UsuariosHandler struct{ svc service.UsuarioService }

func NewUsuariosHandler(svc service.UsuarioService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

func (h *UsuariosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("incluir_inactivos") == "true")
	if err != nil {
		respondError(c, err, "Error al listar usuarios")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsuariosHandler) Crear(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Error al crear usuario")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UsuariosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Error al actualizar usuario")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsuariosHandler) ActualizarComision(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarComisionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarComision(c.Request.Context(), id, req.ComisionPct)
	if err != nil {
		respondError(c, err, "Error al actualizar la comision")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsuariosHandler) Desactivar(c *gin.Context) {
	h.estado(c, h.svc.Desactivar)
}

func (h *UsuariosHandler) Reactivar(c *gin.Context) {
	h.estado(c, h.svc.Reactivar)
}

func (h *UsuariosHandler) Eliminar(c *gin.Context) {
	h.estado(c, h.svc.Eliminar)
}

func (h *UsuariosHandler) estado(c *gin.Context, op func(ctx context.Context, id uuid.UUID) error) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := op(c.Request.Context(), id); err != nil {
		respondError(c, err, "Error al actualizar usuario")
		return
	}
	c.Status(http.StatusNoContent)
}
