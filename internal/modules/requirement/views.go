package requirement

import "rentalhub/internal/domain"

type Action string

const (
	ActionComplete Action = "complete"
	ActionReject   Action = "reject"
	ActionEdit     Action = "edit"
)

type Display struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type Row struct {
	domain.Requirement
	Display Display  `json:"display"`
	Actions []Action `json:"actions"`
}

var colors = map[domain.RequirementStatus]string{
	domain.RequirementNotProcessed: "orange",
	domain.RequirementCompleted:    "green",
	domain.RequirementRejected:     "red",
}

func DisplayFor(r domain.Requirement) Display {
	color, ok := colors[r.Status]
	if !ok {
		color = "default"
	}
	return Display{Label: r.Status.String(), Color: color}
}

// Actions: landlords complete or reject open requests; tenants may still edit them.
// Completed and rejected are terminal.
func Actions(landlord bool, r domain.Requirement) []Action {
	if r.Status != domain.RequirementNotProcessed {
		return []Action{}
	}
	if landlord {
		return []Action{ActionComplete, ActionReject}
	}
	return []Action{ActionEdit}
}

func Allowed(landlord bool, r domain.Requirement, a Action) bool {
	for _, got := range Actions(landlord, r) {
		if got == a {
			return true
		}
	}
	return false
}

func NewRow(landlord bool, r domain.Requirement) Row {
	return Row{Requirement: r, Display: DisplayFor(r), Actions: Actions(landlord, r)}
}

func NewRows(landlord bool, p domain.Page[domain.Requirement]) domain.Page[Row] {
	rows := make([]Row, 0, len(p.Data))
	for _, r := range p.Data {
		rows = append(rows, NewRow(landlord, r))
	}
	return domain.Page[Row]{
		Data:          rows,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		TotalRecords:  p.TotalRecords,
	}
}
