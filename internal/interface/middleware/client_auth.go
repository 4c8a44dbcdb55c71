package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/alibia/backoffice/pkg/helpers"
)

// ClientAuth guards storefront routes. The session rides an httpOnly
// cookie signed with the client secret; on success the numeric account id
// is set as clientID. The rejection is uniform with StaffAuth.
func ClientAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			unauthorized(c)
			return
		}
		claims, err := jwt.ParseClientToken(token)
		if err != nil || claims.UserID == 0 {
			unauthorized(c)
			return
		}
		c.Set("clientID", claims.UserID)
		c.Next()
	}
}

// ClientID reads the authenticated client account id set by ClientAuth.
func ClientID(c *gin.Context) (int64, bool) {
	v, ok := c.Get("clientID")
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
