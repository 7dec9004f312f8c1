package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fleet-report-service/internal/http/middleware"
	"fleet-report-service/internal/model"
	"fleet-report-service/internal/report"
	"fleet-report-service/internal/service"
	"fleet-report-service/internal/source"
)

const dayLayout = "2006-01-02"

type Handler struct {
	reports *service.ReportService
	log     zerolog.Logger
}

func NewHandler(reports *service.ReportService, log zerolog.Logger) *Handler {
	return &Handler{reports: reports, log: log}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	reports := r.Group("/reports")
	reports.Use(authMiddleware)
	reports.GET("/parking", h.getParkingReport)
	reports.GET("/usage", h.getUsageReport)
	reports.GET("/idle", h.getIdleReport)

	telemetry := r.Group("/telemetry")
	telemetry.Use(authMiddleware)
	telemetry.POST("/fleet", h.ingestFleet)
}

func (h *Handler) getParkingReport(c *gin.Context) {
	h.runReport(c, model.ReportParking)
}

func (h *Handler) getUsageReport(c *gin.Context) {
	h.runReport(c, model.ReportUsage)
}

func (h *Handler) getIdleReport(c *gin.Context) {
	h.runReport(c, model.ReportIdle)
}

func (h *Handler) runReport(c *gin.Context, kind model.ReportKind) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	query := h.parseReportQuery(c, kind)

	result, err := h.reports.GenerateReport(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) ingestFleet(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("unreadable request body"))
		return
	}

	count, err := h.reports.IngestFleet(c.Request.Context(), payload)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"vehicles": count}))
}

// parseReportQuery reads the filter parameters. Unparseable values
// stay zero and are rejected by the service's required-field checks,
// so the caller always gets a specific reason instead of a silent
// empty report.
func (h *Handler) parseReportQuery(c *gin.Context, kind model.ReportKind) model.ReportQuery {
	query := model.ReportQuery{
		Kind:            kind,
		VehicleCategory: strings.TrimSpace(c.Query("vehicle_type")),
	}

	if s := strings.TrimSpace(c.Query("start_date")); s != "" {
		if parsed, err := time.ParseInLocation(dayLayout, s, time.UTC); err == nil {
			query.StartDate = parsed
		}
	}
	if s := strings.TrimSpace(c.Query("end_date")); s != "" {
		if parsed, err := time.ParseInLocation(dayLayout, s, time.UTC); err == nil {
			query.EndDate = parsed
		}
	}

	switch strings.ToLower(strings.TrimSpace(c.Query("day_class"))) {
	case "laboral":
		query.DayClass = model.DayClassLaboral
	case "no_laboral", "no-laboral":
		query.DayClass = model.DayClassNoLaboral
	}

	if s := strings.TrimSpace(c.Query("page")); s != "" {
		if page, err := strconv.Atoi(s); err == nil && page >= 0 {
			query.Page = page
		}
	}

	return query
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case report.IsValidationError(err):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, source.ErrMalformedDataset):
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
