package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP exempts loopback and RFC 1918 clients, e.g. the email
// worker or health probes inside the cluster
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// AllowNone never bypasses the limiter
func AllowNone() AllowFunc {
	return func(*gin.Context) bool { return false }
}

// AllowIf picks between allow functions at wiring time
func AllowIf(cond bool, a, b AllowFunc) AllowFunc {
	if cond {
		return a
	}
	return b
}
