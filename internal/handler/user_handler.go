package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/middleware"
	"feedback-backend/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	u, profile, err := h.userService.GetProfile(c.Context(), actor)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			return middleware.NotFound("Profile not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":    u,
		"profile": profile,
	})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	u, profile, err := h.userService.UpdateProfile(c.Context(), actor, input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrProfileNotFound):
			return middleware.NotFound("Profile not found")
		case errors.Is(err, user.ErrEmailChangeNotAllowed):
			return middleware.Forbidden("Email change is not allowed for unverified users")
		case errors.Is(err, user.ErrInvalidPreference):
			return middleware.BadRequest("Invalid notification preference")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Profile updated successfully!",
		"user":    u,
		"profile": profile,
	})
}

func (h *UserHandler) UploadPicture(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
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

	profile, err := h.userService.UpdatePicture(c.Context(), actor,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			return middleware.NotFound("Profile not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Profile picture updated successfully!",
		"profile": profile,
	})
}
