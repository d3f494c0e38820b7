package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/HarshChauhan111/stream-sync-lite/internal/model"
	"github.com/HarshChauhan111/stream-sync-lite/internal/password"
	"github.com/HarshChauhan111/stream-sync-lite/internal/repository"
	"github.com/HarshChauhan111/stream-sync-lite/internal/token"
)

const pgUniqueViolation = "23505"

// RegisterInput deliberately has no role field: the server always assigns
// RoleUser, so a crafted request body cannot escalate privileges.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
	// Device token registration is a best-effort side channel of login.
	FCMToken string
	Platform string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, token.Pair, error)
	Login(ctx context.Context, input LoginInput) (*model.User, token.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (token.Pair, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
}

type authService struct {
	userRepo        repository.UserRepository
	deviceTokenRepo repository.DeviceTokenRepository
	issuer          *token.Issuer
}

func NewAuthService(userRepo repository.UserRepository, deviceTokenRepo repository.DeviceTokenRepository, issuer *token.Issuer) AuthService {
	return &authService{
		userRepo:        userRepo,
		deviceTokenRepo: deviceTokenRepo,
		issuer:          issuer,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, token.Pair, error) {
	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, token.Pair{}, err
	}
	if existing != nil {
		return nil, token.Pair{}, ErrEmailTaken
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, token.Pair{}, err
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashed,
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two registrations can race past the pre-check; the unique
		// constraint rejects the second insert and it is the same
		// conflict outcome as a pre-check hit.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, token.Pair{}, ErrEmailTaken
		}
		return nil, token.Pair{}, err
	}

	pair, err := s.issuer.IssuePair(payloadFor(user))
	if err != nil {
		return nil, token.Pair{}, err
	}

	return user, pair, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*model.User, token.Pair, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, token.Pair{}, err
	}
	if user == nil {
		return nil, token.Pair{}, ErrInvalidCredentials
	}

	if !password.Verify(input.Password, user.PasswordHash) {
		return nil, token.Pair{}, ErrInvalidCredentials
	}

	pair, err := s.issuer.IssuePair(payloadFor(user))
	if err != nil {
		return nil, token.Pair{}, err
	}

	if input.FCMToken != "" && input.Platform != "" {
		if err := s.deviceTokenRepo.Upsert(ctx, user.ID, input.FCMToken, input.Platform); err != nil {
			// A broken push channel must never fail the login.
			slog.Warn("failed to save device token on login", "user_id", user.ID, "error", err)
		}
	}

	return user, pair, nil
}

// Refresh reissues a full pair. The old refresh token stays valid for its
// remaining lifetime; there is no rotation tracking or revocation.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (token.Pair, error) {
	payload, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return token.Pair{}, ErrRefreshInvalid
	}

	user, err := s.userRepo.FindByID(ctx, payload.UserID)
	if err != nil {
		return token.Pair{}, err
	}
	if user == nil {
		// Refresh tokens do not outlive their subject.
		return token.Pair{}, ErrRefreshUserGone
	}

	return s.issuer.IssuePair(payloadFor(user))
}

func (s *authService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func payloadFor(user *model.User) token.Payload {
	return token.Payload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}
}
