package handler

import (
	"net/http"

	"salonpos/internal/dto"
	"salonpos/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Perfiles godoc
// @Summary Perfiles para la pantalla de PIN
// @Tags auth
// @Produce json
// @Success 200 {array} dto.PerfilResponse
// @Router /v1/auth/perfiles [get]
func (h *AuthHandler) Perfiles(c *gin.Context) {
	resp, err := h.svc.Perfiles(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error al listar perfiles")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Login godoc
// @Summary Login con PIN
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Usuario y PIN"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Error al iniciar sesion")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err, "Error al renovar la sesion")
		return
	}
	c.JSON(http.StatusOK, resp)
}
