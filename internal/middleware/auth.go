package middleware

import (
	"net/http"
	"strings"

	"delivery-tracker/internal/config"
	"delivery-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const principalKey = "principal"

// Principal is the authenticated actor resolved from the request token. The
// staff flag is passed explicitly into services rather than read ambiently.
type Principal struct {
	ID       uuid.UUID
	Username string
	IsStaff  bool
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWT.Secret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(principalKey, &Principal{
			ID:       claims.UserID,
			Username: claims.Username,
			IsStaff:  claims.IsStaff,
		})

		c.Next()
	}
}

// CurrentPrincipal retrieves the authenticated principal from the Gin context.
func CurrentPrincipal(c *gin.Context) (*Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}
