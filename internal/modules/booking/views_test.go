package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentalhub/internal/domain"
)

var now = time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)

func booking(status domain.BookingStatus, start, end string) domain.Booking {
	return domain.Booking{
		BookingID:     "b-1",
		User:          domain.BookingUser{UserID: "tenant-1", FullName: "Tenant"},
		Room:          domain.BookingRoom{RoomID: "room-1", Title: "Sunny Loft", OwnerName: "Owner"},
		RentalDate:    start,
		RentalExpires: end,
		Status:        status,
	}
}

func TestPeriodLabel(t *testing.T) {
	cases := []struct {
		start, end string
		want       string
	}{
		{"2025-08-01", "2026-08-01", "Deposited"},
		{"2025-07-15", "2026-07-15", "Renting"},
		{"2025-01-01", "2025-07-15", "Renting"},
		{"2024-01-01", "2025-07-14", "Expired"},
		{"2025-01-01T00:00:00.000+00:00", "2025-12-31T00:00:00.000+00:00", "Renting"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PeriodLabel(tc.start, tc.end, now), "%s..%s", tc.start, tc.end)
	}
}

func TestLandlordView(t *testing.T) {
	cases := []struct {
		status  domain.BookingStatus
		label   string
		actions []Action
	}{
		{domain.BookingPending, "Pending", []Action{ActionAccept, ActionReject, ActionRemove}},
		{domain.BookingAccepted, "Not deposited", []Action{ActionRemove}},
		{domain.BookingRejected, "Rejected", []Action{ActionRemove}},
		{domain.BookingWaitingForDeposit, "Waiting for deposit", []Action{ActionConfirmDeposit, ActionRemove}},
		{domain.BookingDeposited, "Renting", []Action{ActionRemove}},
	}
	for _, tc := range cases {
		b := booking(tc.status, "2025-07-01", "2026-07-01")
		row := NewRow(LandlordView, b, now)
		assert.Equal(t, tc.label, row.Display.Label, tc.status.String())
		assert.Equal(t, tc.actions, row.Actions, tc.status.String())
	}

	removed := booking(domain.BookingPending, "2025-07-01", "2026-07-01")
	removed.IsRemoved = 1
	assert.Equal(t, []Action{ActionAccept, ActionReject}, Actions(LandlordView, removed, now))
}

func TestTenantView(t *testing.T) {
	cases := []struct {
		status  domain.BookingStatus
		end     string
		label   string
		actions []Action
	}{
		{domain.BookingPending, "2026-07-01", "Pending", []Action{}},
		{domain.BookingAccepted, "2026-07-01", "Accepted", []Action{ActionPayDeposit}},
		{domain.BookingRejected, "2026-07-01", "Rejected", []Action{}},
		{domain.BookingWaitingForDeposit, "2026-07-01", "Waiting for deposit", []Action{}},
		{domain.BookingDeposited, "2026-07-01", "Renting", []Action{ActionNewRequest}},
		{domain.BookingDeposited, "2025-07-15", "Renting", []Action{ActionNewRequest}},
		{domain.BookingDeposited, "2025-07-14", "Expired", []Action{}},
	}
	for _, tc := range cases {
		b := booking(tc.status, "2025-07-01", tc.end)
		row := NewRow(TenantView, b, now)
		assert.Equal(t, tc.label, row.Display.Label, "%s %s", tc.status, tc.end)
		assert.Equal(t, tc.actions, row.Actions, "%s %s", tc.status, tc.end)
	}
}

func TestDisplayIsPure(t *testing.T) {
	b := booking(domain.BookingDeposited, "2025-08-01", "2026-08-01")
	assert.Equal(t, DisplayFor(TenantView, b, now), DisplayFor(TenantView, b, now))
	assert.Equal(t, "Deposited", DisplayFor(LandlordView, b, now).Label)
	assert.Equal(t, "Expired", DisplayFor(LandlordView, b, now.AddDate(2, 0, 0)).Label)
}

func TestRows_LandlordPageIsCut(t *testing.T) {
	p := &domain.BookingPage{
		Bookings: []domain.Booking{
			booking(domain.BookingPending, "", ""),
			booking(domain.BookingPending, "", ""),
			booking(domain.BookingPending, "", ""),
		},
		TotalRecords: 12,
	}

	landlord := Rows(LandlordView, p, 0, 2, now)
	assert.Len(t, landlord.Data, 2)
	assert.Equal(t, int64(12), landlord.TotalRecords)
	assert.Equal(t, 6, landlord.TotalPages)

	tenant := Rows(TenantView, p, 0, 2, now)
	assert.Len(t, tenant.Data, 3)

	empty := Rows(TenantView, nil, 0, 10, now)
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)
}
