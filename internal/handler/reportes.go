package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"salonpos/internal/analytics"
	"salonpos/internal/dto"
	"salonpos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Dashboard godoc
// @Summary Metricas del salon para un filtro
// @Tags reportes
// @Produce json
// @Param date_from query string false "Desde (YYYY-MM-DD)"
// @Param date_to query string false "Hasta (YYYY-MM-DD)"
// @Param payment_method query string false "all | efectivo | transferencia"
// @Success 200 {object} analytics.Dashboard
// @Router /v1/reportes/dashboard [get]
func (h *ReportesHandler) Dashboard(c *gin.Context) {
	var f analytics.Filter
	if !bindQuery(c, &f) {
		return
	}
	resp, err := h.svc.Dashboard(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "Error al calcular el reporte")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) CSV(c *gin.Context) {
	var f analytics.Filter
	if !bindQuery(c, &f) {
		return
	}
	name, body, err := h.svc.ExportarCSV(c.Request.Context(), c.Param("tipo"), f)
	if err != nil {
		respondError(c, err, "Error al exportar CSV")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}

func (h *ReportesHandler) PDF(c *gin.Context) {
	var f analytics.Filter
	if !bindQuery(c, &f) {
		return
	}
	path, err := h.svc.GenerarPDF(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "Error al generar el PDF")
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// Email answers 202 when the job was queued and 200 when it was sent inline.
func (h *ReportesHandler) Email(c *gin.Context) {
	var req dto.EnviarReporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EnviarPorEmail(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Error al enviar el reporte")
		return
	}
	status := http.StatusOK
	if resp.Encolado {
		status = http.StatusAccepted
	}
	c.JSON(status, resp)
}
