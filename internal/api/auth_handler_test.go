package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/service/auth"
	"github.com/monkesay/monke-api/internal/store"
)

// fakeUserStore keeps users in memory, keyed by email.
type fakeUserStore struct {
	store.UserStore
	byEmail map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*domain.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	s.byEmail[user.Email] = user
	return nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// stubJWTService returns fixed tokens and claims.
type stubJWTService struct {
	token        string
	refreshToken string
	claims       *auth.Claims
	validateErr  error
}

func (s *stubJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.token, nil
}

func (s *stubJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return s.claims, nil
}

func (s *stubJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.refreshToken, nil
}

func (s *stubJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return s.claims, nil
}

// stubPasswordVerifier succeeds or fails unconditionally.
type stubPasswordVerifier struct {
	shouldSucceed bool
}

func (v *stubPasswordVerifier) Compare(hashedPassword, password string) error {
	if v.shouldSucceed {
		return nil
	}
	return auth.ErrInvalidCredentials
}

func newTestAuthHandler(userStore store.UserStore, jwt auth.JWTService, verify auth.PasswordVerifier) *AuthHandler {
	return NewAuthHandler(userStore, jwt, verify)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func TestRegister(t *testing.T) {
	t.Parallel()

	jwt := &stubJWTService{token: "test-token", refreshToken: "test-refresh"}

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
		wantToken  bool
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"email":        "priya@example.com",
				"display_name": "Priya",
				"password":     "password123",
			},
			wantStatus: http.StatusCreated,
			wantToken:  true,
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"email":        "not-an-email",
				"display_name": "Priya",
				"password":     "password123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			payload: map[string]interface{}{
				"email":        "priya@example.com",
				"display_name": "Priya",
				"password":     "short",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing display name",
			payload: map[string]interface{}{
				"email":    "priya@example.com",
				"password": "password123",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestAuthHandler(newFakeUserStore(), jwt, &stubPasswordVerifier{shouldSucceed: true})

			recorder := postJSON(t, handler.Register, "/api/auth/register", tt.payload)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantToken {
				var authResp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&authResp))
				assert.NotEqual(t, uuid.Nil, authResp.UserID)
				assert.Equal(t, "test-token", authResp.AccessToken)
				assert.Equal(t, "test-refresh", authResp.RefreshToken)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	userStore := newFakeUserStore()
	jwt := &stubJWTService{token: "t", refreshToken: "r"}
	handler := newTestAuthHandler(userStore, jwt, &stubPasswordVerifier{shouldSucceed: true})

	payload := map[string]interface{}{
		"email":        "priya@example.com",
		"display_name": "Priya",
		"password":     "password123",
	}

	first := postJSON(t, handler.Register, "/api/auth/register", payload)
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(t, handler.Register, "/api/auth/register", payload)
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	userStore := newFakeUserStore()
	user, err := domain.NewUser("priya@example.com", "Priya", "password123")
	require.NoError(t, err)
	user.HashedPassword = "stored-hash"
	require.NoError(t, userStore.Create(context.Background(), user))

	jwt := &stubJWTService{token: "test-token", refreshToken: "test-refresh"}

	t.Run("valid credentials", func(t *testing.T) {
		handler := newTestAuthHandler(userStore, jwt, &stubPasswordVerifier{shouldSucceed: true})

		recorder := postJSON(t, handler.Login, "/api/auth/login", map[string]interface{}{
			"email":    "priya@example.com",
			"password": "password123",
		})

		require.Equal(t, http.StatusOK, recorder.Code)

		var authResp AuthResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&authResp))
		assert.Equal(t, user.ID, authResp.UserID)
		assert.Equal(t, "test-token", authResp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		handler := newTestAuthHandler(userStore, jwt, &stubPasswordVerifier{shouldSucceed: false})

		recorder := postJSON(t, handler.Login, "/api/auth/login", map[string]interface{}{
			"email":    "priya@example.com",
			"password": "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		handler := newTestAuthHandler(userStore, jwt, &stubPasswordVerifier{shouldSucceed: true})

		recorder := postJSON(t, handler.Login, "/api/auth/login", map[string]interface{}{
			"email":    "nobody@example.com",
			"password": "password123",
		})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("valid refresh token", func(t *testing.T) {
		jwt := &stubJWTService{
			token:        "new-access",
			refreshToken: "new-refresh",
			claims: &auth.Claims{
				UserID:    userID,
				TokenType: "refresh",
				ExpiresAt: time.Now().Add(time.Hour),
			},
		}
		handler := newTestAuthHandler(newFakeUserStore(), jwt, &stubPasswordVerifier{shouldSucceed: true})

		recorder := postJSON(t, handler.RefreshToken, "/api/auth/refresh", map[string]interface{}{
			"refresh_token": "some-refresh-token",
		})

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp RefreshTokenResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "new-access", resp.AccessToken)
		assert.Equal(t, "new-refresh", resp.RefreshToken)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		jwt := &stubJWTService{validateErr: auth.ErrExpiredToken}
		handler := newTestAuthHandler(newFakeUserStore(), jwt, &stubPasswordVerifier{shouldSucceed: true})

		recorder := postJSON(t, handler.RefreshToken, "/api/auth/refresh", map[string]interface{}{
			"refresh_token": "expired-token",
		})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("missing refresh token", func(t *testing.T) {
		jwt := &stubJWTService{}
		handler := newTestAuthHandler(newFakeUserStore(), jwt, &stubPasswordVerifier{shouldSucceed: true})

		recorder := postJSON(t, handler.RefreshToken, "/api/auth/refresh", map[string]interface{}{})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
