package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/contoso-university-api/internal/models"
	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
	"github.com/noah-isme/contoso-university-api/pkg/response"
)

// RequireRoles allows the request through only when the JWT carries one of roles.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly chains token validation and the ADMIN role check. When enabled is
// false it returns a pass-through so mutating routes stay open in development.
func AdminOnly(enabled bool, validator TokenValidator) []gin.HandlerFunc {
	if !enabled {
		return nil
	}
	return []gin.HandlerFunc{JWT(validator), RequireRoles(models.RoleAdmin)}
}
