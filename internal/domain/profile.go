package domain

type Profile struct {
	ID                string  `json:"id"`
	FullName          string  `json:"fullName"`
	Email             string  `json:"email"`
	PhoneNumber       string  `json:"phoneNumber,omitempty"`
	Avatar            string  `json:"avatar,omitempty"`
	IsActive          int     `json:"isActive"`
	BankName          string  `json:"bankName,omitempty"`
	BinCode           string  `json:"binCode,omitempty"`
	BankNumber        string  `json:"bankNumber,omitempty"`
	AccountHolderName string  `json:"accoutHolderName,omitempty"`
	Address           Address `json:"address"`
}

type ProfileUpdate struct {
	ID                string `json:"id"`
	FullName          string `json:"fullName" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	PhoneNumber       string `json:"phoneNumber" validate:"omitempty,numeric,min=9,max=12"`
	BankName          string `json:"bankName,omitempty"`
	BinCode           string `json:"binCode,omitempty" validate:"omitempty,numeric"`
	BankNumber        string `json:"bankNumber,omitempty" validate:"omitempty,numeric"`
	AccountHolderName string `json:"accoutHolderName,omitempty"`
}

// LandlordRef identifies the landlord behind a room.
type LandlordRef struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Login is the backend auth response.
type Login struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	Roles        []string `json:"roles"`
	UserProfile  Profile  `json:"userProfile"`
}
