package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/juicyplanet/internal/interface/middleware"
)

// Limits builds Redis-backed rate limiters for module routes. A nil RDB
// disables limiting.
type Limits struct {
	RDB   redis.Cmdable
	Allow middleware.AllowFunc
}

// AllowInternal exempts private addresses outside production
func AllowInternal(production bool) middleware.AllowFunc {
	return middleware.AllowIf(production, middleware.AllowNone(), middleware.AllowPrivateIP())
}

func (l Limits) PerRoute(max int, window time.Duration) gin.HandlerFunc {
	if l.RDB == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(l.RDB, max, window, middleware.KeyByIPAndPath(), l.Allow)
}

func (l Limits) PerIP(max int, window time.Duration) gin.HandlerFunc {
	if l.RDB == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(l.RDB, max, window, middleware.KeyByIP(), l.Allow)
}

func (l Limits) PerUser(max int, window time.Duration) gin.HandlerFunc {
	if l.RDB == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(l.RDB, max, window, middleware.KeyByUserID(), l.Allow)
}
