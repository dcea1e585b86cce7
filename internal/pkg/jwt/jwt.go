package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const issuer = "rentalhub"

var (
	ErrInvalidToken = errors.New("invalid token")
	// ErrSessionExpired means the signature was fine but the session ran out; the client should log in again.
	ErrSessionExpired = errors.New("session expired")
)

// Claims is the rentalhub session. AccessToken is the backend bearer token the session rides on.
type Claims struct {
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
	jwtlib.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// GenerateToken signs a session that expires together with the configured TTL.
func (s *Service) GenerateToken(userID, role, accessToken string) (string, error) {
	issued := s.now()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		UserID:      userID,
		Role:        role,
		AccessToken: accessToken,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwtlib.NewNumericDate(issued),
			ExpiresAt: jwtlib.NewNumericDate(issued.Add(s.ttl)),
		},
	})
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwtlib.ParseWithClaims(tokenStr, claims, func(*jwtlib.Token) (any, error) {
		return s.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return nil, ErrSessionExpired
	case err != nil:
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.AccessToken == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
