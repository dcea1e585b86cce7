package booking

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentalhub/internal/domain"
	"rentalhub/internal/middleware"
	"rentalhub/internal/pkg/jwt"
)

func setupRouter(svc *Service) (*gin.Engine, *jwt.Service) {
	gin.SetMode(gin.TestMode)
	jwtSvc := jwt.New("test-secret", time.Hour)
	r := gin.New()
	api := r.Group("/api/v1", middleware.JWTAuth(jwtSvc))
	NewHandler(svc).RegisterRoutes(api)
	return r, jwtSvc
}

func performRequest(r http.Handler, req *http.Request, token string) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func TestHandler_LandlordAccept(t *testing.T) {
	svc, b, n := newTestService()
	r, jwtSvc := setupRouter(svc)
	token, _ := jwtSvc.GenerateToken("landlord-1", domain.RoleLandlord, "tok-l")

	b.On("UpdateBookingStatus", mock.Anything, landlordSession, "b-1", domain.BookingAccepted).Return(nil)
	n.On("Create", mock.Anything, mock.Anything).Return(&domain.Notification{}, nil)

	row := booking(domain.BookingPending, "2025-08-01", "2026-08-01")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/landlord/bookings/b-1/accept", jsonBody(t, TransitionRequest{Booking: row}))
	req.Header.Set("Content-Type", "application/json")
	w := performRequest(r, req, token)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			Booking Row `json:"booking"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domain.BookingAccepted, body.Data.Booking.Status)
	assert.Equal(t, "Not deposited", body.Data.Booking.Display.Label)
}

func TestHandler_InvalidTransitionIsConflict(t *testing.T) {
	svc, b, _ := newTestService()
	r, jwtSvc := setupRouter(svc)
	token, _ := jwtSvc.GenerateToken("landlord-1", domain.RoleLandlord, "tok-l")

	row := booking(domain.BookingRejected, "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/landlord/bookings/b-1/accept", jsonBody(t, TransitionRequest{Booking: row}))
	req.Header.Set("Content-Type", "application/json")
	w := performRequest(r, req, token)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TRANSITION")
	b.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_PathAndRowMustMatch(t *testing.T) {
	svc, _, _ := newTestService()
	r, jwtSvc := setupRouter(svc)
	token, _ := jwtSvc.GenerateToken("landlord-1", domain.RoleLandlord, "tok-l")

	row := booking(domain.BookingPending, "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/landlord/bookings/other/accept", jsonBody(t, TransitionRequest{Booking: row}))
	req.Header.Set("Content-Type", "application/json")
	w := performRequest(r, req, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bookingId")
}

func TestHandler_TenantCannotUseLandlordRoutes(t *testing.T) {
	svc, _, _ := newTestService()
	r, jwtSvc := setupRouter(svc)
	token, _ := jwtSvc.GenerateToken("tenant-1", domain.RoleUser, "tok-t")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/landlord/bookings", nil)
	w := performRequest(r, req, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_CreateBookingValidation(t *testing.T) {
	svc, b, _ := newTestService()
	r, jwtSvc := setupRouter(svc)
	token, _ := jwtSvc.GenerateToken("tenant-1", domain.RoleUser, "tok-t")

	in := domain.CreateBookingInput{RoomID: "room-1", RentalDate: "2025-08-01", RentalExpires: "2025-07-01", TenantCount: 1}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", jsonBody(t, in))
	req.Header.Set("Content-Type", "application/json")
	w := performRequest(r, req, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "rentalExpires")
	b.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_PayDepositWithoutProof(t *testing.T) {
	svc, b, _ := newTestService()
	r, jwtSvc := setupRouter(svc)
	token, _ := jwtSvc.GenerateToken("tenant-1", domain.RoleUser, "tok-t")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	raw, _ := json.Marshal(DepositRequest{Booking: booking(domain.BookingAccepted, "2025-08-01", "2026-08-01"), TransferConfirmed: true})
	require.NoError(t, mw.WriteField("data", string(raw)))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/b-1/deposit", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := performRequest(r, req, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"proof"`))
	b.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
