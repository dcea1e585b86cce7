package domain

type ResidentStatus string

const (
	ResidentPending ResidentStatus = "PENDING"
	ResidentDone    ResidentStatus = "DONE"
)

type Resident struct {
	ID             string         `json:"id"`
	ContractID     string         `json:"contractId"`
	FullName       string         `json:"fullName"`
	IDNumber       string         `json:"idNumber"`
	Relationship   string         `json:"relationship"`
	StartDate      string         `json:"startDate"`
	EndDate        string         `json:"endDate"`
	Note           string         `json:"note"`
	Status         ResidentStatus `json:"status"`
	IDCardFrontURL string         `json:"idCardFrontUrl"`
	IDCardBackURL  string         `json:"idCardBackUrl"`
}

// ResidentInput is the JSON "data" part of the resident multipart form.
type ResidentInput struct {
	FullName     string         `json:"fullName" form:"fullName" validate:"required"`
	IDNumber     string         `json:"idNumber" form:"idNumber" validate:"required"`
	Relationship string         `json:"relationship" form:"relationship" validate:"required"`
	StartDate    string         `json:"startDate" form:"startDate" validate:"required,day"`
	EndDate      string         `json:"endDate" form:"endDate" validate:"required,day,dayafter=StartDate"`
	Note         string         `json:"note" form:"note"`
	Status       ResidentStatus `json:"status" form:"status" validate:"omitempty,oneof=PENDING DONE"`
	ContractID   string         `json:"contractId" form:"contractId"`
}
