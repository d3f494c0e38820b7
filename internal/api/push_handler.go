package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/HarshChauhan111/stream-sync-lite/internal/service"
)

type PushHandler struct {
	pushService service.PushService
	validate    *validator.Validate
	production  bool
}

func NewPushHandler(pushService service.PushService, production bool) *PushHandler {
	return &PushHandler{
		pushService: pushService,
		validate:    validator.New(),
		production:  production,
	}
}

type RegisterTokenRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=android ios web"`
}

type UnregisterTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type SendPushRequest struct {
	UserID int64             `json:"userId" validate:"required"`
	Title  string            `json:"title" validate:"required"`
	Body   string            `json:"body" validate:"required"`
	Data   map[string]string `json:"data"`
}

func (h *PushHandler) Register(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	var req RegisterTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	if err := h.pushService.RegisterToken(c.Context(), identity.UserID, req.Token, req.Platform); err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusOK, "FCM token registered successfully", nil)
}

func (h *PushHandler) Unregister(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	var req UnregisterTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	if err := h.pushService.UnregisterToken(c.Context(), identity.UserID, req.Token); err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusOK, "FCM token unregistered successfully", nil)
}

// Send targets any user's devices. Admin only; the route chains RequireAdmin.
func (h *PushHandler) Send(c *fiber.Ctx) error {
	var req SendPushRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	if err := h.pushService.Send(c.Context(), req.UserID, req.Title, req.Body, req.Data); err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusOK, "Notification sent successfully", nil)
}
