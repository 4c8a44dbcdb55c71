package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alibia/backoffice/pkg/helpers"
	"github.com/alibia/backoffice/pkg/response"
)

// StaffAuth guards back-office routes. It expects an Authorization bearer
// header signed with the staff secret and sets userID and userRole in the
// Gin context. Every failure mode answers the same 401 so callers cannot
// distinguish a missing header from a bad signature.
func StaffAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := ""
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = strings.TrimSpace(parts[1])
		}
		if token == "" {
			unauthorized(c)
			return
		}
		claims, err := jwt.ParseStaffToken(token)
		if err != nil || claims.UserID == "" {
			unauthorized(c)
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	resp := response.Error[any](c, http.StatusUnauthorized, "required", nil)
	c.AbortWithStatusJSON(resp.Status, resp)
}
