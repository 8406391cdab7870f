package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	handlers "github.com/oksasatya/juicyplanet/internal/interface/http"
	"github.com/oksasatya/juicyplanet/internal/interface/middleware"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
)

type ContactModule struct {
	Handler *handlers.ContactHandler
	JWT     *helpers.JWTManager
	Limits  Limits
}

func NewContactModule(h *handlers.ContactHandler, jwt *helpers.JWTManager, limits Limits) *ContactModule {
	return &ContactModule{Handler: h, JWT: jwt, Limits: limits}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	rg.POST("/contact", m.Limits.PerRoute(5, time.Minute), m.Handler.Create)
	rg.GET("/contact", middleware.Auth(m.JWT), middleware.RequireRole(entity.RoleAdmin), m.Handler.List)
}
