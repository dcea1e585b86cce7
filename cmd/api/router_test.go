package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalhub/internal/backend"
	"rentalhub/internal/config"
	"rentalhub/internal/database"
	"rentalhub/internal/domain"
	jwtsvc "rentalhub/internal/pkg/jwt"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// fakeBackend answers the handful of REST calls a booking round trip makes.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.Header().Set("Content-Type", "application/json")
		switch in["username"] {
		case "tenant":
			_ = json.NewEncoder(w).Encode(domain.Login{ID: "tenant-1", Username: "tenant", AccessToken: "tenant-token", Roles: []string{domain.RoleUser}})
		case "landlord":
			_ = json.NewEncoder(w).Encode(domain.Login{ID: "landlord-1", Username: "landlord", AccessToken: "landlord-token", Roles: []string{domain.RoleUser, domain.RoleLandlord}})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
		}
	})
	mux.HandleFunc("/api/bookings/user/tenant-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tenant-token", r.Header.Get("Authorization"))
		var in domain.CreateBookingInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.Booking{
			BookingID:     "booking-1",
			Room:          domain.BookingRoom{Title: "Room A101"},
			RentalDate:    in.RentalDate,
			RentalExpires: in.RentalExpires,
			TenantCount:   in.TenantCount,
			Status:        domain.BookingPending,
		})
	})
	mux.HandleFunc("/api/rooms/landlord-room/room-1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.LandlordRef{ID: "landlord-1", FullName: "Lan"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := fakeBackend(t)
	db, err := database.Connect("file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{AppEnv: "test"}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Auth.TTL = time.Hour

	api := backend.New(srv.URL+"/api", 5*time.Second, time.Minute)
	a := newApp(cfg, db, api, jwtsvc.New("test-secret", time.Hour), nil)
	t.Cleanup(a.hub.Close)
	return a
}

func do(t *testing.T, a *app, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func login(t *testing.T, a *app, username string) string {
	t.Helper()
	code, env := do(t, a, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": "pw"})
	require.Equal(t, http.StatusOK, code)
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestHealth(t *testing.T) {
	a := setupApp(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := setupApp(t)
	for _, path := range []string{"/api/v1/bookings", "/api/v1/notifications", "/api/v1/chat/conversations", "/api/v1/profile"} {
		code, _ := do(t, a, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	a := setupApp(t)
	code, env := do(t, a, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "stranger", "password": "pw"})
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
}

func TestBookingNotifiesLandlord(t *testing.T) {
	a := setupApp(t)
	tenant := login(t, a, "tenant")
	landlord := login(t, a, "landlord")

	code, _ := do(t, a, http.MethodPost, "/api/v1/bookings", landlord, domain.CreateBookingInput{
		RoomID: "room-1", RentalDate: "2025-08-01", RentalExpires: "2026-08-01", TenantCount: 2,
	})
	assert.Equal(t, http.StatusForbidden, code, "landlords cannot book")

	code, env := do(t, a, http.MethodPost, "/api/v1/bookings", tenant, domain.CreateBookingInput{
		RoomID: "room-1", RentalDate: "2025-08-01", RentalExpires: "2026-08-01", TenantCount: 2,
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Contains(t, string(env.Data), "booking-1")

	code, env = do(t, a, http.MethodGet, "/api/v1/notifications", landlord, nil)
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Notifications []domain.Notification `json:"notifications"`
		UnreadCount   int64                 `json:"unreadCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, int64(1), list.UnreadCount)
	assert.Equal(t, "tenant-1", list.Notifications[0].SenderID)
	assert.Equal(t, "You have a new booking from a tenant for room: Room A101", list.Notifications[0].Message)

	code, env = do(t, a, http.MethodGet, "/api/v1/notifications", tenant, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"unreadCount":0`)
}

func TestChatBetweenTenantAndLandlord(t *testing.T) {
	a := setupApp(t)
	tenant := login(t, a, "tenant")
	landlord := login(t, a, "landlord")

	code, _ := do(t, a, http.MethodPost, "/api/v1/chat/messages", tenant, map[string]string{
		"receiverId": "landlord-1", "text": "Is the room still free?",
	})
	require.Equal(t, http.StatusCreated, code)

	code, env := do(t, a, http.MethodGet, "/api/v1/chat/unread", landlord, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"total":1`)

	convID := domain.ConversationID("tenant-1", "landlord-1")
	code, _ = do(t, a, http.MethodPost, "/api/v1/chat/conversations/"+convID+"/read", landlord, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, a, http.MethodGet, "/api/v1/chat/unread", landlord, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"total":0`)
}
