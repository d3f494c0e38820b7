package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx/types"

	"github.com/HarshChauhan111/stream-sync-lite/internal/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	validate            *validator.Validate
	production          bool
}

func NewNotificationHandler(notificationService service.NotificationService, production bool) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		validate:            validator.New(),
		production:          production,
	}
}

type TestPushRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

type CreateNotificationRequest struct {
	UserID          int64          `json:"userId" validate:"required"`
	Title           string         `json:"title" validate:"required,max=255"`
	Body            string         `json:"body" validate:"required"`
	Type            string         `json:"type" validate:"omitempty,max=50"`
	LinkedContentID *string        `json:"linkedContentId"`
	ThumbnailURL    *string        `json:"thumbnailUrl"`
	Data            types.JSONText `json:"data"`
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	list, err := h.notificationService.List(c.Context(), identity.UserID, limit, offset)
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"data":        list.Items,
		"unreadCount": list.UnreadCount,
		"total":       list.Total,
	})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid notification id")
	}

	notification, err := h.notificationService.MarkRead(c.Context(), int64(id), identity.UserID)
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusOK, "Notification marked as read", notification)
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	if err := h.notificationService.MarkAllRead(c.Context(), identity.UserID); err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusOK, "All notifications marked as read", nil)
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid notification id")
	}

	if err := h.notificationService.Delete(c.Context(), int64(id), identity.UserID); err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusOK, "Notification deleted", nil)
}

// SendTest stores a system notification for the caller and pushes it to
// their own devices.
func (h *NotificationHandler) SendTest(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	var req TestPushRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	notification, err := h.notificationService.SendTest(c.Context(), identity.UserID, req.Title, req.Body)
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusOK, "Test push notification sent", notification)
}

// Create targets any user. Admin only; the route chains RequireAdmin.
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	notification, err := h.notificationService.Create(c.Context(), service.CreateNotificationInput{
		UserID:          req.UserID,
		Title:           req.Title,
		Body:            req.Body,
		Type:            req.Type,
		LinkedContentID: req.LinkedContentID,
		ThumbnailURL:    req.ThumbnailURL,
		Data:            req.Data,
	})
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusCreated, "Notification created", notification)
}
