package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/middleware"
	"feedback-backend/internal/service/feedback"
)

type FeedbackHandler struct {
	feedbackService feedback.Service
}

func NewFeedbackHandler(feedbackService feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	var input domain.CreateFeedbackInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Category == "" || input.Content == "" {
		return middleware.BadRequest("Category and feedback text are required")
	}

	fb, err := h.feedbackService.Create(c.Context(), actor, input)
	if err != nil {
		return feedbackError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Feedback submitted successfully!",
		"data":    fb,
	})
}

func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err == nil {
		params.Validate()
	}

	result, err := h.feedbackService.List(c.Context(), actor, params)
	if err != nil {
		return feedbackError(err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *FeedbackHandler) Get(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid feedback ID")
	}

	fb, err := h.feedbackService.Get(c.Context(), actor, id)
	if err != nil {
		return feedbackError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fb)
}

func (h *FeedbackHandler) AddAttachment(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid feedback ID")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read uploaded file")
	}
	defer file.Close()

	att, err := h.feedbackService.AddAttachment(c.Context(), actor, id,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		return feedbackError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Attachment uploaded successfully!",
		"data":    att,
	})
}

func (h *FeedbackHandler) UpdateStatus(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid feedback ID")
	}

	var input domain.UpdateFeedbackStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	fb, err := h.feedbackService.UpdateStatus(c.Context(), actor, id, input)
	if err != nil {
		return feedbackError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Feedback status updated successfully!",
		"data":    fb,
	})
}

func (h *FeedbackHandler) Respond(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid feedback ID")
	}

	var input domain.CreateResponseInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Content == "" {
		return middleware.BadRequest("Response text is required")
	}

	resp, err := h.feedbackService.Respond(c.Context(), actor, id, input)
	if err != nil {
		return feedbackError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Response created successfully!",
		"data":    resp,
	})
}

func (h *FeedbackHandler) ListResponses(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid feedback ID")
	}

	responses, err := h.feedbackService.ListResponses(c.Context(), actor, id)
	if err != nil {
		return feedbackError(err)
	}

	return c.Status(fiber.StatusOK).JSON(responses)
}

func feedbackError(err error) error {
	switch {
	case errors.Is(err, feedback.ErrOnlyPatients):
		return middleware.Forbidden("Only patients can submit feedback!")
	case errors.Is(err, feedback.ErrNotAllowed):
		return middleware.Forbidden("Insufficient permissions for this operation")
	case errors.Is(err, feedback.ErrInvalidRating):
		return middleware.BadRequest("Rating must be between 0 and 5")
	case errors.Is(err, feedback.ErrInvalidStatus):
		return middleware.BadRequest("Invalid feedback status")
	case errors.Is(err, feedback.ErrInvalidTransition):
		return middleware.BadRequest("Feedback status can only move forward")
	case errors.Is(err, feedback.ErrNotFound):
		return middleware.NotFound("Feedback not found")
	default:
		return err
	}
}
