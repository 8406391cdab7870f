package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	handlers "github.com/oksasatya/juicyplanet/internal/interface/http"
	"github.com/oksasatya/juicyplanet/internal/interface/middleware"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
)

type EmailModule struct {
	Handler *handlers.EmailHandler
	JWT     *helpers.JWTManager
	Limits  Limits
}

func NewEmailModule(h *handlers.EmailHandler, jwt *helpers.JWTManager, limits Limits) *EmailModule {
	return &EmailModule{Handler: h, JWT: jwt, Limits: limits}
}

func (m *EmailModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireRole(entity.RoleAdmin))
	admin.Use(m.Limits.PerUser(60, time.Minute))
	{
		admin.POST("/emails", m.Handler.Send)
	}
}
