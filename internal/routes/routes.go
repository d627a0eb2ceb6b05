package routes

import (
	"crm-analytics-service/internal/controller"

	"github.com/gofiber/fiber/v2"
)

// Register attaches all HTTP routes to the Fiber app.
func Register(app *fiber.App, reportController controller.ReportController) {
	app.Post("/activities", reportController.CreateActivity)

	reports := app.Group("/reports")
	reports.Get("/kpis", reportController.GetKPIs)
	reports.Get("/funnel", reportController.GetFunnel)
	reports.Get("/trends", reportController.GetTrends)
	reports.Get("/insights", reportController.GetInsights)
	reports.Get("/targets", reportController.GetTargets)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
