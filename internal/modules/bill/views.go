package bill

import "rentalhub/internal/domain"

type Action string

const (
	ActionPay         Action = "pay"
	ActionConfirmPaid Action = "confirm-paid"
)

type Display struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type Row struct {
	domain.Bill
	Display Display  `json:"display"`
	Actions []Action `json:"actions"`
}

var displays = map[domain.BillStatus]Display{
	domain.BillPending:    {Label: "Pending", Color: "orange"},
	domain.BillConfirming: {Label: "Confirming", Color: "blue"},
	domain.BillPaid:       {Label: "Paid", Color: "green"},
	domain.BillOverdue:    {Label: "Overdue", Color: "red"},
}

func DisplayFor(b domain.Bill) Display {
	if d, ok := displays[b.Status]; ok {
		return d
	}
	return Display{Label: string(b.Status), Color: "default"}
}

// Actions is what the caller may do with b. Tenants pay, landlords confirm.
func Actions(landlord bool, b domain.Bill) []Action {
	switch {
	case !landlord && (b.Status == domain.BillPending || b.Status == domain.BillOverdue):
		return []Action{ActionPay}
	case landlord && b.Status == domain.BillConfirming:
		return []Action{ActionConfirmPaid}
	default:
		return []Action{}
	}
}

func Allowed(landlord bool, b domain.Bill, a Action) bool {
	for _, got := range Actions(landlord, b) {
		if got == a {
			return true
		}
	}
	return false
}

func NewRow(landlord bool, b domain.Bill) Row {
	return Row{Bill: b, Display: DisplayFor(b), Actions: Actions(landlord, b)}
}

func NewRows(landlord bool, bills []domain.Bill) []Row {
	rows := make([]Row, 0, len(bills))
	for _, b := range bills {
		rows = append(rows, NewRow(landlord, b))
	}
	return rows
}
