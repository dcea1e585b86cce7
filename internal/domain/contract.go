package domain

type ContractStatus int

const (
	ContractActive     ContractStatus = 0
	ContractTerminated ContractStatus = 1
	ContractExpired    ContractStatus = 2
	ContractPending    ContractStatus = 3
)

func (s ContractStatus) String() string {
	switch s {
	case ContractActive:
		return "Active"
	case ContractTerminated:
		return "Terminated"
	case ContractExpired:
		return "Expired"
	case ContractPending:
		return "Pending"
	default:
		return "Unknown"
	}
}

type PaymentInfo struct {
	BankName          string `json:"bankName"`
	BankNumber        string `json:"bankNumber"`
	BinCode           string `json:"binCode"`
	AccountHolderName string `json:"accountHolderName"`
	PhoneNumber       string `json:"phoneNumber"`
}

type Contract struct {
	ID                  string         `json:"id"`
	ContractName        string         `json:"contractName"`
	RoomID              string         `json:"roomId"`
	RoomTitle           string         `json:"roomTitle"`
	TenantID            string         `json:"tenantId"`
	TenantName          string         `json:"tenantName"`
	TenantPhone         string         `json:"tenantPhone"`
	LandlordID          string         `json:"landlordId"`
	LandlordName        string         `json:"landlordName"`
	StartDate           string         `json:"startDate"`
	EndDate             string         `json:"endDate"`
	DepositAmount       float64        `json:"depositAmount"`
	MonthlyRent         float64        `json:"monthlyRent"`
	Status              ContractStatus `json:"status"`
	ContractImage       string         `json:"contractImage,omitempty"`
	Bills               []Bill         `json:"bills"`
	Residents           []Resident     `json:"residents,omitempty"`
	LandlordPaymentInfo *PaymentInfo   `json:"landlordPaymentInfo,omitempty"`
}

type ContractInput struct {
	ContractName  string         `json:"contractName,omitempty"`
	RoomID        string         `json:"roomId" validate:"required"`
	TenantID      string         `json:"tenantId" validate:"required"`
	LandlordID    string         `json:"landlordId" validate:"required"`
	StartDate     string         `json:"startDate" validate:"required,day"`
	EndDate       string         `json:"endDate" validate:"required,day,dayafter=StartDate"`
	DepositAmount float64        `json:"depositAmount" validate:"gte=0"`
	MonthlyRent   float64        `json:"monthlyRent" validate:"gt=0"`
	Status        ContractStatus `json:"status" validate:"gte=0,lte=3"`
}
