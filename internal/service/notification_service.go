package service

import (
	"context"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/jmoiron/sqlx/types"

	"github.com/HarshChauhan111/stream-sync-lite/internal/events"
	"github.com/HarshChauhan111/stream-sync-lite/internal/model"
	"github.com/HarshChauhan111/stream-sync-lite/internal/repository"
)

const previewLength = 100

type CreateNotificationInput struct {
	UserID          int64
	Title           string
	Body            string
	Type            string
	LinkedContentID *string
	ThumbnailURL    *string
	Data            types.JSONText
}

type NotificationList struct {
	Items       []model.Notification
	UnreadCount int
	Total       int
}

type NotificationService interface {
	List(ctx context.Context, userID int64, limit, offset int) (*NotificationList, error)
	MarkRead(ctx context.Context, id, userID int64) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
	Create(ctx context.Context, input CreateNotificationInput) (*model.Notification, error)
	SendTest(ctx context.Context, userID int64, title, body string) (*model.Notification, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	publisher        events.PushPublisher
}

func NewNotificationService(notificationRepo repository.NotificationRepository, publisher events.PushPublisher) NotificationService {
	return &notificationService{notificationRepo: notificationRepo, publisher: publisher}
}

func (s *notificationService) List(ctx context.Context, userID int64, limit, offset int) (*NotificationList, error) {
	items, err := s.notificationRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := s.notificationRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &NotificationList{Items: items, UnreadCount: unread, Total: total}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID int64) (*model.Notification, error) {
	notification, err := s.notificationRepo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, notFoundError("Notification not found")
	}

	if err := s.notificationRepo.MarkRead(ctx, notification.ID); err != nil {
		return nil, err
	}

	notification.IsRead = true
	return notification, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

func (s *notificationService) Delete(ctx context.Context, id, userID int64) error {
	notification, err := s.notificationRepo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if notification == nil {
		return notFoundError("Notification not found")
	}

	return s.notificationRepo.Delete(ctx, notification.ID)
}

// Create persists the notification, then publishes a push event. The stored
// row survives a failed publish; delivery is fire-and-forget.
func (s *notificationService) Create(ctx context.Context, input CreateNotificationInput) (*model.Notification, error) {
	notificationType := input.Type
	if notificationType == "" {
		notificationType = "other"
	}

	notification := &model.Notification{
		UserID:          input.UserID,
		Title:           input.Title,
		Body:            input.Body,
		Preview:         preview(input.Body),
		Type:            notificationType,
		LinkedContentID: input.LinkedContentID,
		ThumbnailURL:    input.ThumbnailURL,
		Data:            input.Data,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	data := map[string]string{
		"notificationId": strconv.FormatInt(notification.ID, 10),
		"type":           notification.Type,
	}
	if input.LinkedContentID != nil {
		data["linkedContentId"] = *input.LinkedContentID
	}

	if err := s.publisher.PublishNotificationPush(notification.UserID, notification.Title, notification.Body, data); err != nil {
		slog.Warn("push publish failed after notification create", "notification_id", notification.ID, "error", err)
	}

	return notification, nil
}

func (s *notificationService) SendTest(ctx context.Context, userID int64, title, body string) (*model.Notification, error) {
	return s.Create(ctx, CreateNotificationInput{
		UserID: userID,
		Title:  title,
		Body:   body,
		Type:   "system",
	})
}

// preview truncates without splitting a multi-byte rune; the stored value
// must stay valid UTF-8.
func preview(body string) string {
	if len(body) <= previewLength {
		return body
	}

	cut := previewLength
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}
