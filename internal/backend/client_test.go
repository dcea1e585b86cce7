package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/upload"
)

var testSession = domain.Session{UserID: "u-1", Role: domain.RoleLandlord, AccessToken: "tok-123"}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", 2*time.Second, time.Minute)
}

func TestParseErrorMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message string", `{"message":"Room not available"}`, "Room not available"},
		{"message array", `{"message":["first","second"]}`, "first"},
		{"spring messages", `{"status":400,"messages":["Start date required"],"error":"Bad Request"}`, "Start date required"},
		{"error only", `{"status":500,"error":"Internal Server Error"}`, "Internal Server Error"},
		{"details", `{"details":"duplicate booking"}`, "duplicate booking"},
		{"plain text", `Requirement not found`, "Requirement not found"},
		{"json string", `"Upload failed: too big"`, "Upload failed: too big"},
		{"empty", ``, "fallback"},
		{"json without message", `{"code":7}`, "fallback"},
		{"html", `<html><body>502</body></html>`, "fallback"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseErrorMessage([]byte(tc.body), "fallback"))
		})
	}
}

func TestUpdateBookingStatus_SendsActorAndToken(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/bookings/b-1/status", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"bookingId":"b-1","oldStatus":0,"newStatus":1}`))
	})

	err := client.UpdateBookingStatus(context.Background(), testSession, "b-1", domain.BookingAccepted)
	require.NoError(t, err)
	assert.Equal(t, float64(1), got["newStatus"])
	assert.Equal(t, "u-1", got["actorId"])
	assert.Equal(t, "landlords", got["actorRole"])
}

func TestUpdateBookingStatus_BackendError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Permission denied: Landlord can only set status from 0 to 1/2 or from 3 to 4"}`))
	})

	err := client.UpdateBookingStatus(context.Background(), testSession, "b-1", domain.BookingDeposited)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, be.Status)
	assert.Contains(t, be.Message, "Permission denied")
}

func TestTransportErrorUsesFallback(t *testing.T) {
	client := New("http://127.0.0.1:1/api", 200*time.Millisecond, time.Minute)

	err := client.RemoveBooking(context.Background(), testSession, "b-1")
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, be.Status)
	assert.Equal(t, "Failed to delete booking", be.Message)
	assert.NotNil(t, be.Unwrap())
}

func TestRemoveBooking_QueryAndPlainTextBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookings/b-9/delete", r.URL.Path)
		assert.Equal(t, "u-1", r.URL.Query().Get("userId"))
		_, _ = w.Write([]byte("Booking deleted successfully"))
	})
	require.NoError(t, client.RemoveBooking(context.Background(), testSession, "b-9"))
}

func TestLandlordBookings_Paging(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookings/landlord/u-1/paging", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("size"))
		_, _ = w.Write([]byte(`{"bookings":[{"bookingId":"b-1","status":3,"rentalDate":"2025-07-01","rentalExpires":"2026-07-01"}],"totalRecords":11}`))
	})

	page, err := client.LandlordBookings(context.Background(), testSession, 2, 5)
	require.NoError(t, err)
	require.Len(t, page.Bookings, 1)
	assert.Equal(t, domain.BookingWaitingForDeposit, page.Bookings[0].Status)
	assert.Equal(t, int64(11), page.TotalRecords)
}

func TestUserRequirements_NormalizesPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/requirements/user/u-1/requests", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":"r-1","status":0},{"id":"r-2","status":1}],"pageNumber":0,"pageSize":2,"totalRecords":5,"totalPages":3}`))
	})

	page, err := client.UserRequirements(context.Background(), testSession, 0, 2)
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 2, page.Size)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, int64(5), page.TotalRecords)
	assert.Equal(t, 3, page.TotalPages)
}

func TestLandlordContracts_NormalizesSpringPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"id":"c-1","status":0}],"number":1,"size":1,"totalElements":4,"totalPages":4}`))
	})

	page, err := client.LandlordContracts(context.Background(), testSession, "u-1", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, int64(4), page.TotalRecords)
	assert.Equal(t, 4, page.TotalPages)
	assert.Equal(t, "c-1", page.Data[0].ID)
}

func TestCreateResident_MultipartParts(t *testing.T) {
	img, err := upload.CheckImage("front.png", tinyPNG(), upload.MaxIDCardImage)
	require.NoError(t, err)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/temporary-residences", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		dataFile, dataHeader, err := r.FormFile("data")
		require.NoError(t, err)
		assert.Equal(t, "application/json", dataHeader.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(dataFile)
		var data map[string]any
		require.NoError(t, json.Unmarshal(raw, &data))
		assert.Equal(t, "PENDING", data["status"])
		assert.Equal(t, "c-1", data["contractId"])

		_, frontHeader, err := r.FormFile("frontImage")
		require.NoError(t, err)
		assert.Equal(t, "image/png", frontHeader.Header.Get("Content-Type"))

		_, _, err = r.FormFile("backImage")
		assert.ErrorIs(t, err, http.ErrMissingFile)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"res-1","fullName":"A","status":"PENDING"}`))
	})

	out, err := client.CreateResident(context.Background(), testSession, domain.ResidentInput{
		FullName: "A", IDNumber: "1", Relationship: "Sister",
		StartDate: "2025-01-01", EndDate: "2025-02-01", ContractID: "c-1",
	}, img, nil)
	require.NoError(t, err)
	assert.Equal(t, "res-1", out.ID)
}

func TestUploadBillProof_PlainTextOrJSON(t *testing.T) {
	img, err := upload.CheckImage("proof.png", tinyPNG(), upload.MaxProofImage)
	require.NoError(t, err)

	for _, body := range []string{
		"https://cdn.example.com/p.png",
		`{"imageUrl":"https://cdn.example.com/p.png"}`,
	} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, header, err := r.FormFile("file")
			require.NoError(t, err)
			assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
			_, _ = w.Write([]byte(body))
		})

		url, err := client.UploadBillProof(context.Background(), testSession, "bill-1", img)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/p.png", url)
	}
}

func TestLandlordByRoom_Cached(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/api/rooms/landlord-room/room-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"landlord-1","fullName":"Tran B"}`))
	})

	for i := 0; i < 3; i++ {
		ref, err := client.LandlordByRoom(context.Background(), testSession, "room-1")
		require.NoError(t, err)
		assert.Equal(t, "landlord-1", ref.ID)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestExportBills_Download(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-01", r.URL.Query().Get("fromMonth"))
		assert.Equal(t, "2025-06", r.URL.Query().Get("toMonth"))
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", "attachment; filename=bills.xlsx")
		_, _ = w.Write([]byte{0x50, 0x4b, 0x03, 0x04})
	})

	d, err := client.ExportBills(context.Background(), testSession, "c-1", "2025-01", "2025-06")
	require.NoError(t, err)
	assert.Equal(t, "attachment; filename=bills.xlsx", d.ContentDisposition)
	assert.Equal(t, []byte{0x50, 0x4b, 0x03, 0x04}, d.Body)
}

func TestHasBankInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/profile/ishavebank/u-1", r.URL.Path)
		_, _ = w.Write([]byte(`true`))
	})
	ok, err := client.HasBankInfo(context.Background(), testSession, "u-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLogin_NoBearer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"u-1","username":"an","accessToken":"abc","roles":["Users"]}`))
	})
	login, err := client.Login(context.Background(), "an", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", login.AccessToken)
	assert.Equal(t, []string{"Users"}, login.Roles)
}

// tinyPNG encodes a 1x1 PNG.
func tinyPNG() []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	return buf.Bytes()
}
