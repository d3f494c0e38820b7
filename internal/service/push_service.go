package service

import (
	"context"

	"github.com/HarshChauhan111/stream-sync-lite/internal/events"
	"github.com/HarshChauhan111/stream-sync-lite/internal/repository"
)

// PushService owns device-token bookkeeping and the admin fan-out entry
// point. Actual delivery happens in the worker, on the other side of NATS.
type PushService interface {
	RegisterToken(ctx context.Context, userID int64, deviceToken, platform string) error
	UnregisterToken(ctx context.Context, userID int64, deviceToken string) error
	Send(ctx context.Context, userID int64, title, body string, data map[string]string) error
}

type pushService struct {
	deviceTokenRepo repository.DeviceTokenRepository
	publisher       events.PushPublisher
}

func NewPushService(deviceTokenRepo repository.DeviceTokenRepository, publisher events.PushPublisher) PushService {
	return &pushService{deviceTokenRepo: deviceTokenRepo, publisher: publisher}
}

func (s *pushService) RegisterToken(ctx context.Context, userID int64, deviceToken, platform string) error {
	return s.deviceTokenRepo.Upsert(ctx, userID, deviceToken, platform)
}

func (s *pushService) UnregisterToken(ctx context.Context, userID int64, deviceToken string) error {
	return s.deviceTokenRepo.Delete(ctx, userID, deviceToken)
}

func (s *pushService) Send(ctx context.Context, userID int64, title, body string, data map[string]string) error {
	tokens, err := s.deviceTokenRepo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return notFoundError("No device tokens found for this user")
	}

	return s.publisher.PublishNotificationPush(userID, title, body, data)
}
