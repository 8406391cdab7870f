package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
)

type DebugModule struct {
	Limits Limits
}

func NewDebugModule(limits Limits) *DebugModule { return &DebugModule{Limits: limits} }

// Register exposes expvar at /debug/vars, rate-limited per IP
func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", m.Limits.PerIP(120, time.Minute), gin.WrapH(expvar.Handler()))
}
