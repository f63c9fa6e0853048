package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/middleware"
	"feedback-backend/internal/service/notification"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err == nil {
		params.Validate()
	}
	unreadOnly := c.QueryBool("unread_only", false)

	result, err := h.notificationService.List(c.Context(), actor, unreadOnly, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	count, err := h.notificationService.UnreadCount(c.Context(), actor)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"unread_count": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	notif, err := h.notificationService.MarkAsRead(c.Context(), actor, id)
	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notification marked as read",
		"data":    notif,
	})
}
