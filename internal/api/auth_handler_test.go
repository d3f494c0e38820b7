package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/HarshChauhan111/stream-sync-lite/internal/api"
	"github.com/HarshChauhan111/stream-sync-lite/internal/model"
	"github.com/HarshChauhan111/stream-sync-lite/internal/service"
	"github.com/HarshChauhan111/stream-sync-lite/internal/token"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input service.RegisterInput) (*model.User, token.Pair, error)
	loginFn    func(ctx context.Context, input service.LoginInput) (*model.User, token.Pair, error)
	refreshFn  func(ctx context.Context, refreshToken string) (token.Pair, error)
	profileFn  func(ctx context.Context, userID int64) (*model.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input service.RegisterInput) (*model.User, token.Pair, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, input service.LoginInput) (*model.User, token.Pair, error) {
	return s.loginFn(ctx, input)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (token.Pair, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return s.profileFn(ctx, userID)
}

func authApp(svc service.AuthService, issuer *token.Issuer) *fiber.App {
	handler := api.NewAuthHandler(svc, false)
	app := fiber.New()
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/login", handler.Login)
	app.Post("/api/auth/refresh", handler.Refresh)
	app.Get("/api/auth/me", api.AuthMiddleware(issuer), handler.Me)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func sampleUser() *model.User {
	return &model.User{
		ID:           1,
		Name:         "Alice",
		Email:        "alice@test.com",
		PasswordHash: "bcrypt-hash",
		Role:         model.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestAuthHandler_Register_Created(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, input service.RegisterInput) (*model.User, token.Pair, error) {
			require.Equal(t, "alice@test.com", input.Email)
			return sampleUser(), token.Pair{AccessToken: "acc", RefreshToken: "ref"}, nil
		},
	}
	app := authApp(svc, testIssuer())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@test.com","password":"secret123"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, true, body["success"])
	require.Equal(t, "User registered successfully", body["message"])

	data := body["data"].(map[string]any)
	require.Equal(t, "acc", data["accessToken"])
	require.Equal(t, "ref", data["refreshToken"])

	// The password hash must never leave the server.
	user := data["user"].(map[string]any)
	require.Equal(t, "alice@test.com", user["email"])
	require.NotContains(t, user, "passwordHash")
	require.NotContains(t, user, "password_hash")
}

func TestAuthHandler_Register_ValidationMessages(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, _ service.RegisterInput) (*model.User, token.Pair, error) {
			t.Fatal("service must not be called on validation failure")
			return nil, token.Pair{}, nil
		},
	}
	app := authApp(svc, testIssuer())

	cases := []struct {
		name    string
		body    string
		message string
	}{
		{"missing name", `{"email":"a@b.com","password":"secret123"}`, "Name is required"},
		{"bad email", `{"name":"Alice","email":"not-an-email","password":"secret123"}`, "Email must be a valid email address"},
		{"short password", `{"name":"Alice","email":"a@b.com","password":"12345"}`, "Password must be at least 6 characters long"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", tc.body))
			require.NoError(t, err)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body := decodeBody(t, resp)
			require.Equal(t, false, body["success"])
			require.Equal(t, tc.message, body["message"])
		})
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, _ service.RegisterInput) (*model.User, token.Pair, error) {
			return nil, token.Pair{}, service.ErrEmailTaken
		},
	}
	app := authApp(svc, testIssuer())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@test.com","password":"secret123"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "Email already registered", body["message"])
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, _ service.LoginInput) (*model.User, token.Pair, error) {
			return nil, token.Pair{}, service.ErrInvalidCredentials
		},
	}
	app := authApp(svc, testIssuer())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"alice@test.com","password":"wrong"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Invalid email or password", body["message"])
}

func TestAuthHandler_Login_RejectsUnknownPlatform(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, _ service.LoginInput) (*model.User, token.Pair, error) {
			t.Fatal("service must not be called on validation failure")
			return nil, token.Pair{}, nil
		},
	}
	app := authApp(svc, testIssuer())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"a@b.com","password":"secret123","fcmToken":"tok","platform":"windows"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "Platform must be one of: android, ios, web", body["message"])
}

func TestAuthHandler_Refresh(t *testing.T) {
	svc := &stubAuthService{
		refreshFn: func(_ context.Context, refreshToken string) (token.Pair, error) {
			require.Equal(t, "old-refresh", refreshToken)
			return token.Pair{AccessToken: "new-acc", RefreshToken: "new-ref"}, nil
		},
	}
	app := authApp(svc, testIssuer())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/refresh",
		`{"refreshToken":"old-refresh"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "Tokens refreshed successfully", body["message"])
	data := body["data"].(map[string]any)
	require.Equal(t, "new-acc", data["accessToken"])
	require.Equal(t, "new-ref", data["refreshToken"])
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	svc := &stubAuthService{
		refreshFn: func(_ context.Context, _ string) (token.Pair, error) {
			return token.Pair{}, service.ErrRefreshInvalid
		},
	}
	app := authApp(svc, testIssuer())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/refresh",
		`{"refreshToken":"expired"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "Invalid or expired refresh token", body["message"])
}

func TestAuthHandler_Me(t *testing.T) {
	issuer := testIssuer()
	svc := &stubAuthService{
		profileFn: func(_ context.Context, userID int64) (*model.User, error) {
			require.Equal(t, int64(1), userID)
			return sampleUser(), nil
		},
	}
	app := authApp(svc, issuer)

	signed, err := issuer.IssueAccess(token.Payload{UserID: 1, Email: "alice@test.com", Role: model.RoleUser})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	require.Equal(t, "alice@test.com", user["email"])
	require.NotContains(t, user, "password_hash")
}
