package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-touring-backend/internal/delivery/http/response"
	"go-touring-backend/internal/domain"
	"go-touring-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const adminRole = "admin"

var (
	errAdminNotConfigured = errors.New("ADMIN_JWT_SECRET is not configured")
	errMissingToken       = errors.New("missing bearer token")
	errNotAdmin           = errors.New("token has no admin role")
	errNoExpiry           = errors.New("token has no expiry")
)

// AdminAuthMiddleware accepts HS256 bearer tokens signed with secret whose
// role claim is "admin". With an empty secret every request is rejected.
func AdminAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := verifyAdminToken(c.GetHeader("Authorization"), secret)
		if err != nil {
			security.DefaultLogger().LogUnauthorizedAccess(
				c.Request.Context(),
				c.ClientIP(),
				response.RequestID(c),
				c.FullPath(),
				err.Error(),
			)
			response.Error(c, http.StatusUnauthorized, "No autorizado.", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyAdminSub), sub)
		c.Next()
	}
}

func verifyAdminToken(authHeader, secret string) (string, error) {
	if secret == "" {
		return "", errAdminNotConfigured
	}
	tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || tokenString == "" {
		return "", errMissingToken
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "", errNoExpiry
	}
	if role, _ := claims["role"].(string); role != adminRole {
		return "", errNotAdmin
	}

	sub, _ := claims.GetSubject()
	return sub, nil
}
