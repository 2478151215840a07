// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/designly/marketplace-backend/internal/models"
	"github.com/designly/marketplace-backend/internal/utils"
)

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func setIdentity(c *gin.Context, claims *utils.JWTClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("user_type", claims.UserType)
}

// AuthRequired rejects requests without a valid access token.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userType, exists := c.Get("user_type")
		if !exists || userType != string(models.UserTypeAdmin) {
			utils.ForbiddenResponse(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// otherwise lets the request through anonymously. Download entitlement
// checks rely on this to distinguish "no actor" from "actor without a
// purchase".
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := utils.ValidateJWT(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}
