package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/jwt"
	"rentalhub/internal/pkg/response"
)

const (
	ctxUserID      = "user_id"
	ctxRole        = "role"
	ctxAccessToken = "access_token"
)

// JWTAuth validates the session token from the Authorization header.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Missing Authorization header")
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be Bearer token")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			abortToken(c, err)
			return
		}

		setSession(c, claims)
		c.Next()
	}
}

func abortToken(c *gin.Context, err error) {
	if errors.Is(err, jwt.ErrSessionExpired) {
		response.Abort(c, http.StatusUnauthorized, "SESSION_EXPIRED", "Session expired, please log in again")
		return
	}
	response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
}

// QueryTokenAuth is JWTAuth for websocket upgrades, which cannot set headers from browsers.
func QueryTokenAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			}
		}
		if tokenStr == "" {
			response.Abort(c, http.StatusUnauthorized, "TOKEN_MISSING", "Missing token")
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			abortToken(c, err)
			return
		}

		setSession(c, claims)
		c.Next()
	}
}

func setSession(c *gin.Context, claims *jwt.Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxAccessToken, claims.AccessToken)
}

// SessionFrom returns the caller set by JWTAuth.
func SessionFrom(c *gin.Context) domain.Session {
	return domain.Session{
		UserID:      c.GetString(ctxUserID),
		Role:        c.GetString(ctxRole),
		AccessToken: c.GetString(ctxAccessToken),
	}
}
