package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coursehub/internal/auth"
	"coursehub/internal/config"
	"coursehub/internal/featureflags"
	"coursehub/internal/middleware"
	"coursehub/internal/models"
	"coursehub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

// newMockedServer builds a Server over mocked user and engagement stores.
// Any store call without an expectation panics and fails the request.
func newMockedServer(t *testing.T, users *MockUserRepository, engagement *MockEngagementRepository) (*Server, *fiber.App) {
	t.Helper()
	tokens, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)

	s := &Server{
		config:            &config.Config{JWTSecret: testSecret, Env: "development"},
		tokens:            tokens,
		gate:              middleware.NewAuthenticator(tokens),
		featureFlags:      featureflags.Parse(""),
		userService:       service.NewUserService(users),
		engagementService: service.NewEngagementService(engagement),
	}
	return s, s.NewApp()
}

func jsonRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestAuthGate_RejectsBeforeStoreAccess(t *testing.T) {
	users := new(MockUserRepository)
	engagement := new(MockEngagementRepository)
	_, app := newMockedServer(t, users, engagement)

	past := time.Now().Add(-time.Hour)
	stale, err := auth.NewTokenService(testSecret, auth.WithClock(func() time.Time { return past }))
	require.NoError(t, err)
	expired, err := stale.Issue(7)
	require.NoError(t, err)

	forged, err := auth.NewTokenService("another-secret-entirely-000000000000")
	require.NoError(t, err)
	tampered, err := forged.Issue(7)
	require.NoError(t, err)

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		wantCode string
	}{
		{"like without cookie", http.MethodPost, "/api/v1/like/create", "", models.CodeUnauthenticated},
		{"like with expired token", http.MethodPost, "/api/v1/like/create", expired, models.CodeInvalidToken},
		{"like with tampered token", http.MethodPost, "/api/v1/like/create", tampered, models.CodeInvalidToken},
		{"rating with expired token", http.MethodPost, "/api/v1/rating/create", expired, models.CodeInvalidToken},
		{"rating delete without cookie", http.MethodDelete, "/api/v1/rating/delete", "", models.CodeUnauthenticated},
		{"likes list with tampered token", http.MethodGet, "/api/v1/like/likes", tampered, models.CodeInvalidToken},
		{"me with expired token", http.MethodGet, "/api/v1/user/me", expired, models.CodeInvalidToken},
		{"me without cookie", http.MethodGet, "/api/v1/user/me", "", models.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := jsonRequest(tt.method, tt.path, map[string]any{"courseId": 1, "liked": true, "rating": 5})
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: tt.token})
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tt.wantCode, decodeError(t, resp).Code)
		})
	}

	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	assert.Empty(t, engagement.Calls)
	assert.Empty(t, users.Calls)
}

func TestMe_IgnoresBearerHeader(t *testing.T) {
	users := new(MockUserRepository)
	s, app := newMockedServer(t, users, new(MockEngagementRepository))

	token, err := s.tokens.Issue(3)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, users.Calls)
}

func TestMe_ReturnsProfile(t *testing.T) {
	users := new(MockUserRepository)
	s, app := newMockedServer(t, users, new(MockEngagementRepository))
	users.On("GetByID", mock.Anything, uint(3)).
		Return(&models.User{ID: 3, Email: "ada@example.com", Role: models.RoleStudent}, nil)

	token, err := s.tokens.Issue(3)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Anonymous", body["name"])
	assert.Equal(t, "ada@example.com", body["email"])
	users.AssertExpectations(t)
}

func TestSignup_SetsSessionCookie(t *testing.T) {
	users := new(MockUserRepository)
	_, app := newMockedServer(t, users, new(MockEngagementRepository))

	users.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, nil).Once()
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.User).ID = 11 }).
		Return(nil).Once()
	users.On("GetByEmail", mock.Anything, "exists@example.com").Return(&models.User{ID: 1}, nil)

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
		wantCookie bool
	}{
		{"success", map[string]string{"email": "test@example.com", "password": "Password123"}, http.StatusCreated, true},
		{"duplicate", map[string]string{"email": "exists@example.com", "password": "Password123"}, http.StatusConflict, false},
		{"short password", map[string]string{"email": "short@example.com", "password": "abc"}, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/user/signup", tt.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var session *http.Cookie
			for _, ck := range resp.Cookies() {
				if ck.Name == middleware.TokenCookie {
					session = ck
				}
			}
			if !tt.wantCookie {
				assert.Nil(t, session)
				return
			}
			require.NotNil(t, session)
			assert.True(t, session.HttpOnly)
			assert.Equal(t, int((15 * time.Minute).Seconds()), session.MaxAge)
			assert.Equal(t, http.SameSiteLaxMode, session.SameSite)
		})
	}
}

func TestToggleLike_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		liked      bool
		existing   *models.Like
		setup      func(m *MockEngagementRepository)
		wantStatus int
		wantCode   string
	}{
		{
			name:  "first like",
			liked: true,
			setup: func(m *MockEngagementRepository) {
				m.On("CreateLike", mock.Anything, mock.Anything).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unlike without like",
			liked:      false,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   models.CodeInvalidTransition,
		},
		{
			name:       "like twice",
			liked:      true,
			existing:   &models.Like{ID: 5, UserID: 1, CourseID: 2, Liked: true},
			wantStatus: http.StatusConflict,
			wantCode:   models.CodeNoOpTransition,
		},
		{
			name:     "unlike",
			liked:    false,
			existing: &models.Like{ID: 5, UserID: 1, CourseID: 2, Liked: true},
			setup: func(m *MockEngagementRepository) {
				m.On("DeleteLike", mock.Anything, uint(5)).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engagement := new(MockEngagementRepository)
			s, app := newMockedServer(t, new(MockUserRepository), engagement)
			engagement.On("WithinTx", mock.Anything).Return()
			engagement.On("CourseExists", mock.Anything, uint(2)).Return(true, nil)
			engagement.On("FindLike", mock.Anything, uint(1), uint(2)).Return(tt.existing, nil)
			if tt.setup != nil {
				tt.setup(engagement)
			}

			token, err := s.tokens.Issue(1)
			require.NoError(t, err)
			req := jsonRequest(http.MethodPost, "/api/v1/like/create", map[string]any{"courseId": 2, "liked": tt.liked})
			req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp).Code)
			}
			engagement.AssertExpectations(t)
		})
	}
}

func TestToggleLike_RequiresLikedField(t *testing.T) {
	engagement := new(MockEngagementRepository)
	s, app := newMockedServer(t, new(MockUserRepository), engagement)

	token, err := s.tokens.Issue(1)
	require.NoError(t, err)
	req := jsonRequest(http.MethodPost, "/api/v1/like/create", map[string]any{"courseId": 2})
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeValidation, decodeError(t, resp).Code)
	assert.Empty(t, engagement.Calls)
}
