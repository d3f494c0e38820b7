package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/HarshChauhan111/stream-sync-lite/internal/model"
	"github.com/HarshChauhan111/stream-sync-lite/internal/service"
	"github.com/HarshChauhan111/stream-sync-lite/internal/token"
)

type AuthHandler struct {
	authService service.AuthService
	validate    *validator.Validate
	production  bool
}

func NewAuthHandler(authService service.AuthService, production bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
		production:  production,
	}
}

// RegisterRequest intentionally has no role field; see service.RegisterInput.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FCMToken string `json:"fcmToken" validate:"omitempty"`
	Platform string `json:"platform" validate:"omitempty,oneof=android ios web"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type authData struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	user, pair, err := h.authService.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusCreated, "User registered successfully", authData{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	user, pair, err := h.authService.Login(c.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		FCMToken: req.FCMToken,
		Platform: req.Platform,
	})
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusOK, "Login successful", authData{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	pair, err := h.authService.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusOK, "Tokens refreshed successfully", token.Pair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	user, err := h.authService.Profile(c.Context(), identity.UserID)
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusOK, "", fiber.Map{"user": user})
}
