package booking

import (
	"time"

	"rentalhub/internal/domain"
)

type Action string

const (
	ActionAccept         Action = "accept"
	ActionReject         Action = "reject"
	ActionConfirmDeposit Action = "confirm-deposit"
	ActionPayDeposit     Action = "pay-deposit"
	ActionNewRequest     Action = "new-request"
	ActionRemove         Action = "remove"
)

func (a Action) Known() bool {
	switch a {
	case ActionAccept, ActionReject, ActionConfirmDeposit, ActionPayDeposit, ActionNewRequest, ActionRemove:
		return true
	}
	return false
}

// Viewer selects which side of a booking is rendered.
type Viewer int

const (
	LandlordView Viewer = iota
	TenantView
)

type Display struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Row is a booking as one viewer sees it.
type Row struct {
	domain.Booking
	Address string   `json:"address"`
	Display Display  `json:"display"`
	Actions []Action `json:"actions"`
}

type transition struct {
	from domain.BookingStatus
	to   domain.BookingStatus
	verb string
}

var landlordTransitions = map[Action]transition{
	ActionAccept:         {from: domain.BookingPending, to: domain.BookingAccepted, verb: "accepted"},
	ActionReject:         {from: domain.BookingPending, to: domain.BookingRejected, verb: "rejected"},
	ActionConfirmDeposit: {from: domain.BookingWaitingForDeposit, to: domain.BookingDeposited, verb: "deposit confirmed"},
}

var tenantTransitions = map[Action]transition{
	ActionPayDeposit: {from: domain.BookingAccepted, to: domain.BookingWaitingForDeposit},
}

func transitionsFor(v Viewer) map[Action]transition {
	if v == LandlordView {
		return landlordTransitions
	}
	return tenantTransitions
}

// PeriodLabel is the display of a deposited booking relative to its rental period.
func PeriodLabel(rentalDate, expires string, now time.Time) string {
	today := domain.Today(now)
	if start, err := domain.ParseDay(rentalDate); err == nil && today.Before(start) {
		return "Deposited"
	}
	if end, err := domain.ParseDay(expires); err == nil && today.After(end) {
		return "Expired"
	}
	return "Renting"
}

var periodColors = map[string]string{
	"Deposited": "green",
	"Renting":   "green",
	"Expired":   "red",
}

func DisplayFor(v Viewer, b domain.Booking, now time.Time) Display {
	switch b.Status {
	case domain.BookingPending:
		return Display{Label: "Pending", Color: "orange"}
	case domain.BookingAccepted:
		if v == LandlordView {
			return Display{Label: "Not deposited", Color: "orange"}
		}
		return Display{Label: "Accepted", Color: "blue"}
	case domain.BookingRejected:
		return Display{Label: "Rejected", Color: "red"}
	case domain.BookingWaitingForDeposit:
		return Display{Label: "Waiting for deposit", Color: "blue"}
	case domain.BookingDeposited:
		label := PeriodLabel(b.RentalDate, b.RentalExpires, now)
		return Display{Label: label, Color: periodColors[label]}
	default:
		return Display{Label: "Unknown", Color: "default"}
	}
}

// Actions lists what v may do with b. Order is stable.
func Actions(v Viewer, b domain.Booking, now time.Time) []Action {
	actions := make([]Action, 0, 3)
	for _, a := range []Action{ActionAccept, ActionReject, ActionConfirmDeposit, ActionPayDeposit} {
		if t, ok := transitionsFor(v)[a]; ok && t.from == b.Status {
			actions = append(actions, a)
		}
	}

	switch v {
	case LandlordView:
		if b.IsRemoved == 0 {
			actions = append(actions, ActionRemove)
		}
	case TenantView:
		if b.Status == domain.BookingDeposited && canRequest(b, now) {
			actions = append(actions, ActionNewRequest)
		}
	}
	return actions
}

// canRequest holds while today is on or before the expiry day.
func canRequest(b domain.Booking, now time.Time) bool {
	end, err := domain.ParseDay(b.RentalExpires)
	if err != nil {
		return false
	}
	return !domain.Today(now).After(end)
}

func Allowed(v Viewer, b domain.Booking, a Action, now time.Time) bool {
	for _, got := range Actions(v, b, now) {
		if got == a {
			return true
		}
	}
	return false
}

func NewRow(v Viewer, b domain.Booking, now time.Time) Row {
	return Row{
		Booking: b,
		Address: b.Room.Address.String(),
		Display: DisplayFor(v, b, now),
		Actions: Actions(v, b, now),
	}
}

// Rows renders a backend page. Landlord pages are cut to size since the backend may overfill them.
func Rows(v Viewer, p *domain.BookingPage, page, size int, now time.Time) domain.Page[Row] {
	if p == nil {
		return domain.NewPage[Row](nil, page, size, 0)
	}
	bookings := p.Bookings
	if v == LandlordView && size > 0 && len(bookings) > size {
		bookings = bookings[:size]
	}
	rows := make([]Row, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, NewRow(v, b, now))
	}
	total := p.TotalRecords
	if total == 0 {
		total = int64(len(p.Bookings))
	}
	return domain.NewPage(rows, page, size, total)
}
