package admin

import (
	"errors"

	"loyalty-sync/core/apperr"
	"loyalty-sync/core/logger"
	"loyalty-sync/core/reconcile"
	"loyalty-sync/core/report"
	"loyalty-sync/feature/turnovers"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the admin surface.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the admin routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)

	group := app.Group("/failed-turnovers")
	group.Get("/", h.HandleListFailed)
	group.Delete("/", h.HandleClearFailed)
	group.Post("/retry", h.HandleRetry)
}

// HandleHealth reports the state of the database and the failed queue.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	health := h.service.Health(c.Context())
	status := fiber.StatusOK
	if health.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(health)
}

// HandleListFailed returns the queued turnovers as JSON, or as a workbook with ?format=xlsx.
func (h *Handler) HandleListFailed(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	items, err := h.service.ListFailed(c.Context())
	if err != nil {
		l.Error("Failed to read failed-turnover queue", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if c.Query("format") == "xlsx" {
		c.Set(fiber.HeaderContentType, report.ContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="failed_turnovers.xlsx"`)
		return report.Write(c.Response().BodyWriter(), turnovers.Sheet("Failed", items))
	}

	return c.JSON(fiber.Map{
		"count":     len(items),
		"turnovers": items,
	})
}

// HandleClearFailed drops every queued turnover.
func (h *Handler) HandleClearFailed(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	dropped, err := h.service.ClearFailed(c.Context())
	if err != nil {
		l.Error("Failed to clear failed-turnover queue", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"cleared": dropped})
}

// HandleRetry resubmits the queued turnovers and returns the run summary.
func (h *Handler) HandleRetry(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.Retry(c.Context())
	if err != nil {
		upstream := apperr.StatusOf(err)
		l.Error("Retry of failed turnovers failed", zap.Int("upstream_status", upstream), zap.Error(err))

		status := fiber.StatusInternalServerError
		if errors.Is(err, reconcile.ErrNothingSubmitted) || errors.Is(err, apperr.ErrUpstream) {
			status = fiber.StatusBadGateway
		}
		body := fiber.Map{
			"error":   err.Error(),
			"summary": summary,
		}
		if upstream != 0 {
			body["upstreamStatus"] = upstream
		}
		return c.Status(status).JSON(body)
	}

	return c.JSON(summary)
}
