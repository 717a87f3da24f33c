package handler

import (
	"net/http"
	"strconv"

	"salonpos/internal/apierror"
	"salonpos/internal/infra"

	"github.com/gin-gonic/gin"
)

const (
	qrDefaultSize = 256
	qrMaxSize     = 1024
)

// LANHandler lets a tablet on the salon network pair by scanning a QR of the
// server URL.
type LANHandler struct{ publicURL string }

func NewLANHandler(publicURL string) *LANHandler { return &LANHandler{publicURL: publicURL} }

func (h *LANHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"url": h.publicURL, "mdns": infra.MDNSService})
}

func (h *LANHandler) QR(c *gin.Context) {
	size := qrDefaultSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > qrMaxSize {
			c.JSON(http.StatusBadRequest, apierror.New("Tamano invalido"))
			return
		}
		size = n
	}
	png, err := infra.QRCodePNG(h.publicURL, size)
	if err != nil {
		respondError(c, err, "Error al generar el QR")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
