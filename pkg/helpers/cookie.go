package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PendingVerificationCookie holds the id of a user who registered (or tried to
// log in) from this browser and has not confirmed their email yet.
const PendingVerificationCookie = "pendingVerification"

type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

// SetPendingVerification stores the pending user id for ttl
func (m *Manager) SetPendingVerification(c *gin.Context, userID string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(PendingVerificationCookie, userID, maxAgeFrom(time.Now().Add(ttl)), "/", m.Domain, m.Secure, true)
}

// PendingVerification returns the pending user id, or "" when absent
func (m *Manager) PendingVerification(c *gin.Context) string {
	v, err := c.Cookie(PendingVerificationCookie)
	if err != nil {
		return ""
	}
	return v
}

func (m *Manager) ClearPendingVerification(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(PendingVerificationCookie, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Round(time.Second).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
