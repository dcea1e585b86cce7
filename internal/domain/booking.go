package domain

import (
	"strings"
	"time"

	"gopkg.in/guregu/null.v4"
)

// BookingStatus is the server-owned booking state. The backend only moves it forward.
type BookingStatus int

const (
	BookingPending           BookingStatus = 0
	BookingAccepted          BookingStatus = 1
	BookingRejected          BookingStatus = 2
	BookingWaitingForDeposit BookingStatus = 3
	BookingDeposited         BookingStatus = 4
)

func (s BookingStatus) Valid() bool {
	return s >= BookingPending && s <= BookingDeposited
}

func (s BookingStatus) String() string {
	switch s {
	case BookingPending:
		return "Pending"
	case BookingAccepted:
		return "Accepted"
	case BookingRejected:
		return "Rejected"
	case BookingWaitingForDeposit:
		return "WaitingForDeposit"
	case BookingDeposited:
		return "Deposited"
	default:
		return "Unknown"
	}
}

type BookingUser struct {
	UserID      string `json:"userId"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

type Province struct {
	Name string `json:"name"`
}

type District struct {
	Name     string   `json:"name"`
	Province Province `json:"province"`
}

type Ward struct {
	Name     string   `json:"name"`
	District District `json:"district"`
}

type Address struct {
	Street string `json:"street"`
	Ward   Ward   `json:"ward"`
}

// String renders "street, ward, district, province" skipping empty parts.
func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.Ward.Name, a.Ward.District.Name, a.Ward.District.Province.Name} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type BookingRoom struct {
	RoomID     string  `json:"roomId"`
	Title      string  `json:"title"`
	PriceMonth float64 `json:"priceMonth"`
	OwnerName  string  `json:"ownerName"`
	OwnerPhone string  `json:"ownerPhone"`
	Address    Address `json:"address"`
}

type Booking struct {
	BookingID     string        `json:"bookingId"`
	User          BookingUser   `json:"user"`
	Room          BookingRoom   `json:"room"`
	RentalDate    string        `json:"rentalDate"`
	RentalExpires string        `json:"rentalExpires"`
	TenantCount   int           `json:"tenantCount"`
	ImageProof    null.String   `json:"imageProof"`
	Status        BookingStatus `json:"status"`
	IsRemoved     int           `json:"isRemoved"`
}

// BookingPage is the booking list shape the backend returns.
type BookingPage struct {
	Bookings     []Booking `json:"bookings"`
	TotalRecords int64     `json:"totalRecords"`
}

type CreateBookingInput struct {
	RoomID        string `json:"roomId" validate:"required"`
	RentalDate    string `json:"rentalDate" validate:"required,day"`
	RentalExpires string `json:"rentalExpires" validate:"required,day,dayafter=RentalDate"`
	TenantCount   int    `json:"tenantCount" validate:"required,min=1"`
}

// LandlordPaymentInfo is what the tenant needs to pay a deposit by bank transfer.
type LandlordPaymentInfo struct {
	LandlordID        string  `json:"landlordId"`
	LandlordName      string  `json:"landlordName"`
	AccountHolderName string  `json:"accountHolderName"`
	BankNumber        string  `json:"bankNumber"`
	BankName          string  `json:"bankName"`
	BinCode           string  `json:"binCode"`
	DepositAmount     float64 `json:"depositAmount"`
	PhoneNumber       string  `json:"phoneNumber"`
	Email             string  `json:"email"`
}

const dayLayout = "2006-01-02"

// ParseDay reads a backend date as a calendar day at UTC midnight.
// Timestamps such as "2025-07-01T00:00:00.000+00:00" are cut to their date part.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(dayLayout) {
		s = s[:len(dayLayout)]
	}
	return time.ParseInLocation(dayLayout, s, time.UTC)
}

// Today is now truncated to its UTC calendar day.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
