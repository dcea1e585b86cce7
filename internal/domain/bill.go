package domain

import "gopkg.in/guregu/null.v4"

type BillStatus string

const (
	BillPending    BillStatus = "PENDING"
	BillConfirming BillStatus = "CONFIRMING"
	BillPaid       BillStatus = "PAID"
	BillOverdue    BillStatus = "OVERDUE"
)

func (s BillStatus) Valid() bool {
	switch s {
	case BillPending, BillConfirming, BillPaid, BillOverdue:
		return true
	}
	return false
}

type Bill struct {
	ID               string      `json:"id"`
	ContractID       string      `json:"contractId,omitempty"`
	Month            string      `json:"month"`
	ElectricityFee   float64     `json:"electricityFee"`
	WaterFee         float64     `json:"waterFee"`
	ServiceFee       float64     `json:"serviceFee"`
	DamageFee        null.Float  `json:"damageFee"`
	Note             string      `json:"note,omitempty"`
	TotalAmount      float64     `json:"totalAmount"`
	Status           BillStatus  `json:"status"`
	ElectricityUsage null.Float  `json:"electricityUsage"`
	WaterUsage       null.Float  `json:"waterUsage"`
	ElectricityPrice null.Float  `json:"electricityPrice"`
	WaterPrice       null.Float  `json:"waterPrice"`
	ImageProof       null.String `json:"imageProof"`
}

// BillInput carries create and update fields. Month is "YYYY-MM".
type BillInput struct {
	ContractID     string   `json:"contractId,omitempty"`
	Month          string   `json:"month" validate:"required,datetime=2006-01"`
	ElectricityFee float64  `json:"electricityFee" validate:"gte=0"`
	WaterFee       float64  `json:"waterFee" validate:"gte=0"`
	ServiceFee     float64  `json:"serviceFee" validate:"gte=0"`
	DamageFee      *float64 `json:"damageFee,omitempty" validate:"omitempty,gte=0"`
	Note           string   `json:"note,omitempty"`
	TotalAmount    float64  `json:"totalAmount" validate:"gte=0"`
}

// Total sums the fee lines the way the landlord form does.
func (in BillInput) Total() float64 {
	total := in.ElectricityFee + in.WaterFee + in.ServiceFee
	if in.DamageFee != nil {
		total += *in.DamageFee
	}
	return total
}
