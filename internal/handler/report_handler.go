package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/middleware"
	"feedback-backend/internal/service/report"
)

type ReportHandler struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	var input domain.CreateReportInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	rep, err := h.reportService.Generate(c.Context(), actor, input)
	if err != nil {
		return reportError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Report generated successfully!",
		"data":    rep,
	})
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	reports, err := h.reportService.List(c.Context(), actor)
	if err != nil {
		return reportError(err)
	}

	return c.Status(fiber.StatusOK).JSON(reports)
}

func (h *ReportHandler) Export(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid report ID")
	}

	data, fileName, err := h.reportService.Export(c.Context(), actor, id)
	if err != nil {
		return reportError(err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	return c.Send(data)
}

func reportError(err error) error {
	switch {
	case errors.Is(err, report.ErrOnlyAdmins):
		return middleware.Forbidden("Only admins can manage reports")
	case errors.Is(err, report.ErrInvalidReportType):
		return middleware.BadRequest("Invalid report type")
	case errors.Is(err, report.ErrNotFound):
		return middleware.NotFound("Report not found")
	default:
		return err
	}
}
