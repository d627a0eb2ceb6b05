package controller

import (
	"strconv"
	"time"

	"crm-analytics-service/internal/model"
	"crm-analytics-service/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// ReportController exposes HTTP handlers for ingestion and reporting.
type ReportController interface {
	CreateActivity(c *fiber.Ctx) error
	GetKPIs(c *fiber.Ctx) error
	GetFunnel(c *fiber.Ctx) error
	GetTrends(c *fiber.Ctx) error
	GetInsights(c *fiber.Ctx) error
	GetTargets(c *fiber.Ctx) error
}

type reportController struct {
	activityService service.ActivityService
	reportService   service.ReportService
}

// NewReportController builds a ReportController.
func NewReportController(activitySvc service.ActivityService, reportSvc service.ReportService) ReportController {
	return &reportController{
		activityService: activitySvc,
		reportService:   reportSvc,
	}
}

// CreateActivity accepts single activity event payloads.
func (h *reportController) CreateActivity(c *fiber.Ctx) error {
	var req model.ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	entry, err := h.activityService.BuildActivity(req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	h.activityService.ProcessActivity(c.Context(), entry)

	return c.SendStatus(fiber.StatusAccepted)
}

// GetKPIs returns the KPI block for the requested window.
func (h *reportController) GetKPIs(c *fiber.Ctx) error {
	from, to, err := parseWindow(c)
	if err != nil {
		return err
	}

	report, svcErr := h.reportService.GetKPIs(c.Context(), from, to)
	if svcErr != nil {
		return mapServiceError(svcErr, "failed to compute kpis")
	}
	return c.JSON(report)
}

// GetFunnel returns the funnel aggregation over the current snapshot.
func (h *reportController) GetFunnel(c *fiber.Ctx) error {
	report, err := h.reportService.GetFunnel(c.Context())
	if err != nil {
		return mapServiceError(err, "failed to compute funnel")
	}
	return c.JSON(report)
}

// GetTrends returns the rolling series and predictions.
func (h *reportController) GetTrends(c *fiber.Ctx) error {
	report, err := h.reportService.GetTrends(c.Context())
	if err != nil {
		return mapServiceError(err, "failed to compute trends")
	}
	return c.JSON(report)
}

// GetInsights returns the prioritized action list.
func (h *reportController) GetInsights(c *fiber.Ctx) error {
	insights, err := h.reportService.GetInsights(c.Context())
	if err != nil {
		return mapServiceError(err, "failed to compute insights")
	}
	return c.JSON(insights)
}

// GetTargets returns team targets and the active roster.
func (h *reportController) GetTargets(c *fiber.Ctx) error {
	targets, err := h.reportService.GetTeamTargets(c.Context())
	if err != nil {
		return mapServiceError(err, "failed to compute targets")
	}
	return c.JSON(targets)
}

func mapServiceError(err error, fallback string) error {
	if _, ok := err.(*service.ValidationError); ok {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}

func parseWindow(c *fiber.Ctx) (time.Time, time.Time, error) {
	var from, to time.Time

	if raw := utils.Trim(c.Query("from"), ' '); raw != "" {
		sec, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid from timestamp")
		}
		from = time.Unix(sec, 0).UTC()
	}

	if raw := utils.Trim(c.Query("to"), ' '); raw != "" {
		sec, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid to timestamp")
		}
		to = time.Unix(sec, 0).UTC()
	}

	return from, to, nil
}
