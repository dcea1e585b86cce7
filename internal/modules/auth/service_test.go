package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentalhub/internal/backend"
	"rentalhub/internal/domain"
	"rentalhub/internal/middleware"
	"rentalhub/internal/pkg/jwt"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Login(ctx context.Context, username, password string) (*domain.Login, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Login), args.Error(1)
}

func TestLogin_MintsSessionWithPrimaryRole(t *testing.T) {
	b := new(MockBackend)
	jwtSvc := jwt.New("secret", time.Hour)
	svc := NewService(b, jwtSvc, time.Hour)
	ctx := context.Background()

	b.On("Login", ctx, "lan", "pw").Return(&domain.Login{
		ID:          "landlord-1",
		Username:    "lan",
		AccessToken: "backend-token",
		Roles:       []string{domain.RoleUser, domain.RoleLandlord},
	}, nil)

	res, err := svc.Login(ctx, LoginRequest{Username: "  lan ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleLandlord, res.User.Role)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	claims, err := jwtSvc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "landlord-1", claims.UserID)
	assert.Equal(t, domain.RoleLandlord, claims.Role)
	assert.Equal(t, "backend-token", claims.AccessToken)
}

func TestLogin_BackendRejectsCredentials(t *testing.T) {
	b := new(MockBackend)
	svc := NewService(b, jwt.New("secret", time.Hour), time.Hour)
	b.On("Login", mock.Anything, "lan", "bad").Return(nil, &backend.Error{Status: http.StatusUnauthorized, Message: "Bad credentials"})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "lan", Password: "bad"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_MissingAccessToken(t *testing.T) {
	b := new(MockBackend)
	svc := NewService(b, jwt.New("secret", time.Hour), time.Hour)
	b.On("Login", mock.Anything, "lan", "pw").Return(&domain.Login{ID: "u-1"}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "lan", Password: "pw"})
	assert.ErrorIs(t, err, ErrNoAccessToken)
}

func TestHandler_LoginThenSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	b := new(MockBackend)
	jwtSvc := jwt.New("secret", time.Hour)
	h := NewHandler(NewService(b, jwtSvc, time.Hour))

	r := gin.New()
	v1 := r.Group("/api/v1")
	h.RegisterPublicRoutes(v1)
	h.RegisterProtectedRoutes(v1.Group("", middleware.JWTAuth(jwtSvc)))

	b.On("Login", mock.Anything, "tenant", "pw").Return(&domain.Login{
		ID: "tenant-1", AccessToken: "backend-token", Roles: []string{domain.RoleUser},
	}, nil)
	b.On("Login", mock.Anything, "tenant", "bad").Return(nil, &backend.Error{Status: http.StatusBadRequest, Message: "Bad credentials"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"tenant","password":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"tenant"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token, err := NewService(b, jwtSvc, time.Hour).Login(context.Background(), LoginRequest{Username: "tenant", Password: "pw"})
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"tenant-1"`)
	assert.Contains(t, w.Body.String(), `"isLandlord":false`)
}
