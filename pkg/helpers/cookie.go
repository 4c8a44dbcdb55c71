package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the client-domain token.
const SessionCookieName = "token"

// CookieManager writes and clears the client session cookie. In production
// the cookie is Secure with SameSite=None (cross-site storefront); anywhere
// else it stays SameSite=Strict without the Secure bit.
type CookieManager struct {
	Domain     string
	Production bool
}

func NewCookieManager(domain string, production bool) *CookieManager {
	return &CookieManager{Domain: domain, Production: production}
}

func (m *CookieManager) sameSite() http.SameSite {
	if m.Production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}

// SetSession stores the token until exp, httpOnly.
func (m *CookieManager) SetSession(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(m.sameSite())
	c.SetCookie(SessionCookieName, token, maxAgeFrom(exp), "/", m.Domain, m.Production, true)
}

// ClearSession expires the cookie with the same attributes used at set
// time. Clearing an absent cookie still succeeds.
func (m *CookieManager) ClearSession(c *gin.Context) {
	c.SetSameSite(m.sameSite())
	c.SetCookie(SessionCookieName, "", -1, "/", m.Domain, m.Production, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
