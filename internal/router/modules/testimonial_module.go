package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/juicyplanet/internal/interface/http"
	"github.com/oksasatya/juicyplanet/internal/interface/middleware"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
)

type TestimonialModule struct {
	Handler *handlers.TestimonialHandler
	JWT     *helpers.JWTManager
	Limits  Limits
}

func NewTestimonialModule(h *handlers.TestimonialHandler, jwt *helpers.JWTManager, limits Limits) *TestimonialModule {
	return &TestimonialModule{Handler: h, JWT: jwt, Limits: limits}
}

func (m *TestimonialModule) Register(rg *gin.RouterGroup) {
	t := rg.Group("/testimonials")
	t.GET("", m.Limits.PerIP(300, time.Minute), m.Handler.List)

	auth := t.Group("")
	auth.Use(middleware.Auth(m.JWT), m.Limits.PerUser(30, time.Minute))
	{
		auth.POST("", m.Handler.Create)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
