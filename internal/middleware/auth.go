package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/auth"
	"github.com/BruksfildServices01/food-storefront/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

type TokenParser interface {
	Parse(token string) (auth.Claims, error)
}

func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authentication required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Authentication required")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// RequireCapability rejects callers whose role does not hold cap.
// It must run after AuthMiddleware.
func RequireCapability(capability access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !access.Can(Actor(c).Role, capability) {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "You are not allowed to do that!")
			return
		}
		c.Next()
	}
}

// Actor returns the authenticated caller. The zero Actor holds no
// capabilities.
func Actor(c *gin.Context) access.Actor {
	id, _ := c.Get(ContextUserID)
	role, _ := c.Get(ContextUserRole)

	uid, _ := id.(uint)
	r, _ := role.(access.Role)
	return access.Actor{UserID: uid, Role: r}
}
