package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/sideshow/apns2"
	apnstoken "github.com/sideshow/apns2/token"

	"github.com/HarshChauhan111/stream-sync-lite/internal/config"
	"github.com/HarshChauhan111/stream-sync-lite/internal/events"
	"github.com/HarshChauhan111/stream-sync-lite/internal/model"
	"github.com/HarshChauhan111/stream-sync-lite/internal/repository"
)

// Worker consumes push events off NATS and delivers them to the user's
// registered devices. Without APNs credentials it runs in mock mode and only
// logs what it would send.
type Worker struct {
	natsConn   *nats.Conn
	apnsClient *apns2.Client
	apnsTopic  string
	tokenRepo  repository.DeviceTokenRepository
}

func Start(cfg config.Config, tokenRepo repository.DeviceTokenRepository) (*Worker, error) {
	var apnsClient *apns2.Client
	if cfg.APNSAuthKeyPath != "" && cfg.APNSKeyID != "" && cfg.APNSTeamID != "" {
		authKey, err := apnstoken.AuthKeyFromFile(cfg.APNSAuthKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read APNs auth key: %w", err)
		}

		authToken := &apnstoken.Token{
			AuthKey: authKey,
			KeyID:   cfg.APNSKeyID,
			TeamID:  cfg.APNSTeamID,
		}

		if cfg.APNSMode == "production" {
			apnsClient = apns2.NewTokenClient(authToken).Production()
		} else {
			apnsClient = apns2.NewTokenClient(authToken).Development()
		}
		slog.Info("APNs client initialized", "mode", cfg.APNSMode)
	} else {
		slog.Info("APNs credentials not configured, worker running in mock mode")
	}

	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, err
	}

	w := &Worker{
		natsConn:   nc,
		apnsClient: apnsClient,
		apnsTopic:  cfg.APNSTopic,
		tokenRepo:  tokenRepo,
	}

	if _, err := nc.Subscribe(events.SubjectNotificationPush, w.handlePushEvent); err != nil {
		return nil, err
	}

	slog.Info("worker subscribed", "subject", events.SubjectNotificationPush)
	return w, nil
}

func (w *Worker) Close() {
	w.natsConn.Close()
}

func (w *Worker) handlePushEvent(msg *nats.Msg) {
	var event events.NotificationPushEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.Error("failed to unmarshal push event", "error", err)
		return
	}

	ctx := context.Background()

	tokens, err := w.tokenRepo.ListByUser(ctx, event.UserID)
	if err != nil {
		slog.Error("failed to load device tokens", "user_id", event.UserID, "error", err)
		return
	}

	if len(tokens) == 0 {
		slog.Info("no device tokens registered, nothing to push", "user_id", event.UserID)
		return
	}

	var stale []string
	for _, t := range tokens {
		if t.Platform != model.PlatformIOS || w.apnsClient == nil {
			slog.Info("push delivered (mock)", "user_id", event.UserID, "platform", t.Platform)
			continue
		}

		if rejected := w.pushAPNs(t.Token, event); rejected {
			stale = append(stale, t.Token)
		}
	}

	// Tokens the provider no longer recognizes are dropped so future
	// fan-outs skip them.
	if len(stale) > 0 {
		if err := w.tokenRepo.DeleteByTokens(ctx, stale); err != nil {
			slog.Error("failed to delete stale device tokens", "count", len(stale), "error", err)
		} else {
			slog.Info("deleted stale device tokens", "count", len(stale))
		}
	}
}

// pushAPNs sends one notification and reports whether the device token was
// rejected as no longer valid.
func (w *Worker) pushAPNs(deviceToken string, event events.NotificationPushEvent) bool {
	payload := map[string]interface{}{
		"aps": map[string]interface{}{
			"alert": map[string]string{
				"title": event.Title,
				"body":  event.Body,
			},
			"sound": "default",
		},
	}
	for k, v := range event.Data {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal APNs payload", "error", err)
		return false
	}

	notification := &apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       w.apnsTopic,
		Payload:     body,
	}

	res, err := w.apnsClient.Push(notification)
	if err != nil {
		slog.Error("APNs push failed", "error", err)
		return false
	}

	if res.Sent() {
		slog.Info("APNs push sent", "apns_id", res.ApnsID)
		return false
	}

	slog.Warn("APNs push rejected", "reason", res.Reason)
	return res.Reason == apns2.ReasonBadDeviceToken || res.Reason == apns2.ReasonUnregistered
}
