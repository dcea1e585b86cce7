package domain

import "strings"

const (
	RoleLandlord = "Landlords"
	RoleUser     = "Users"
	RoleAdmin    = "Administrators"
)

// Session is the authenticated caller. AccessToken is the backend bearer token.
type Session struct {
	UserID      string
	Role        string
	AccessToken string
}

func (s Session) IsLandlord() bool {
	return s.Role == RoleLandlord
}

// ActorRole is the lowercase role name the booking status endpoint expects.
func (s Session) ActorRole() string {
	return strings.ToLower(s.Role)
}

// PrimaryRole picks the role a session acts as. Landlords win over Users.
func PrimaryRole(roles []string) string {
	for _, want := range []string{RoleAdmin, RoleLandlord, RoleUser} {
		for _, r := range roles {
			if r == want {
				return want
			}
		}
	}
	return RoleUser
}
