package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	handlers "github.com/oksasatya/juicyplanet/internal/interface/http"
	"github.com/oksasatya/juicyplanet/internal/interface/middleware"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
)

type CatalogModule struct {
	Handler *handlers.CatalogHandler
	JWT     *helpers.JWTManager
	Limits  Limits
}

func NewCatalogModule(h *handlers.CatalogHandler, jwt *helpers.JWTManager, limits Limits) *CatalogModule {
	return &CatalogModule{Handler: h, JWT: jwt, Limits: limits}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	p := rg.Group("/products")
	p.GET("", m.Limits.PerIP(300, time.Minute), m.Handler.List)
	p.GET("/:id", m.Limits.PerIP(300, time.Minute), m.Handler.Get)

	admin := p.Group("")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireRole(entity.RoleAdmin))
	{
		admin.POST("", m.Handler.Create)
		admin.DELETE("/:id", m.Handler.Delete)
		admin.POST("/:id/image", m.Handler.UploadImage)
	}
}
