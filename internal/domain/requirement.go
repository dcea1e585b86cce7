package domain

type RequirementStatus int

const (
	RequirementNotProcessed RequirementStatus = 0
	RequirementCompleted    RequirementStatus = 1
	RequirementRejected     RequirementStatus = 2
)

func (s RequirementStatus) String() string {
	switch s {
	case RequirementNotProcessed:
		return "Not processed"
	case RequirementCompleted:
		return "Completed"
	case RequirementRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

type Requirement struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	RoomID      string            `json:"roomId"`
	RoomTitle   string            `json:"roomTitle"`
	UserName    string            `json:"userName"`
	Email       string            `json:"email"`
	Description string            `json:"description"`
	Status      RequirementStatus `json:"status"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	CreatedDate string            `json:"createdDate"`
}

// RequirementInput is the JSON "data" part of a maintenance request.
type RequirementInput struct {
	UserID      string `json:"userId"`
	RoomID      string `json:"roomId" form:"roomId" validate:"required"`
	Description string `json:"description" form:"description" validate:"required,max=2000"`
}

type RequirementUpdate struct {
	ID          string `json:"id"`
	Description string `json:"description" validate:"required,max=2000"`
}
