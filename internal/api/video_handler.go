package api

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/HarshChauhan111/stream-sync-lite/internal/s3"
	"github.com/HarshChauhan111/stream-sync-lite/internal/service"
)

type VideoHandler struct {
	videoService service.VideoService
	presigner    *s3.FilePresigner
	validate     *validator.Validate
	production   bool
}

func NewVideoHandler(videoService service.VideoService, presigner *s3.FilePresigner, production bool) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		presigner:    presigner,
		validate:     validator.New(),
		production:   production,
	}
}

type ProgressRequest struct {
	LastPlayedPosition int `json:"lastPlayedPosition" validate:"gte=0"`
}

type CreateVideoRequest struct {
	Title         string     `json:"title" validate:"required,max=500"`
	ChannelName   string     `json:"channelName" validate:"required,max=255"`
	ThumbnailURL  string     `json:"thumbnailUrl" validate:"required,url"`
	VideoURL      string     `json:"videoUrl" validate:"required,url"`
	Duration      string     `json:"duration" validate:"omitempty,max=20"`
	PublishedDate *time.Time `json:"publishedDate"`
	Description   *string    `json:"description"`
}

func (h *VideoHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	offset := c.QueryInt("offset", 0)

	videos, total, err := h.videoService.List(c.Context(), identityOrNil(c), limit, offset)
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    videos,
		"total":   total,
	})
}

func (h *VideoHandler) Get(c *fiber.Ctx) error {
	videoID, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid video id")
	}

	video, err := h.videoService.Get(c.Context(), identityOrNil(c), int64(videoID))
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusOK, "", video)
}

func (h *VideoHandler) SaveProgress(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	videoID, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid video id")
	}

	var req ProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid lastPlayedPosition")
	}

	if err := h.validate.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid lastPlayedPosition")
	}

	progress, err := h.videoService.SaveProgress(c.Context(), identity.UserID, int64(videoID), req.LastPlayedPosition)
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusOK, "Progress updated", progress)
}

func (h *VideoHandler) ToggleFavorite(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	videoID, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid video id")
	}

	favorite, err := h.videoService.ToggleFavorite(c.Context(), identity.UserID, int64(videoID))
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	message := "Removed from favorites"
	if favorite {
		message = "Added to favorites"
	}

	return respondOK(c, fiber.StatusOK, message, fiber.Map{"isFavorite": favorite})
}

func (h *VideoHandler) Favorites(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	favorites, err := h.videoService.Favorites(c.Context(), identity.UserID)
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusOK, "", favorites)
}

func (h *VideoHandler) Create(c *fiber.Ctx) error {
	var req CreateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	input := service.CreateVideoInput{
		Title:        req.Title,
		ChannelName:  req.ChannelName,
		ThumbnailURL: req.ThumbnailURL,
		VideoURL:     req.VideoURL,
		Duration:     req.Duration,
		Description:  req.Description,
	}
	if req.PublishedDate != nil {
		input.PublishedDate = *req.PublishedDate
	}

	video, err := h.videoService.CreateVideo(c.Context(), input)
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusCreated, "Video created", video)
}

// UploadURL hands out a presigned PUT for a thumbnail object. Admin only.
func (h *VideoHandler) UploadURL(c *fiber.Ctx) error {
	if h.presigner == nil {
		return respondError(c, fiber.StatusServiceUnavailable, "Uploads are not configured")
	}

	objectKey := "video-thumbnails/" + uuid.New().String() + ".jpg"

	uploadURL, err := h.presigner.PresignedUploadURL(c.Context(), objectKey)
	if err != nil {
		return respondServiceError(c, err, h.production)
	}

	return respondOK(c, fiber.StatusOK, "", fiber.Map{
		"uploadUrl":     uploadURL,
		"finalImageUrl": h.presigner.PublicURL(objectKey),
	})
}
