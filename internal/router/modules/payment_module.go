package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/juicyplanet/internal/interface/http"
	"github.com/oksasatya/juicyplanet/internal/interface/middleware"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
)

type PaymentModule struct {
	Handler *handlers.PaymentHandler
	JWT     *helpers.JWTManager
	Limits  Limits
}

func NewPaymentModule(h *handlers.PaymentHandler, jwt *helpers.JWTManager, limits Limits) *PaymentModule {
	return &PaymentModule{Handler: h, JWT: jwt, Limits: limits}
}

func (m *PaymentModule) Register(rg *gin.RouterGroup) {
	rg.POST("/payments/mobile-money", middleware.Auth(m.JWT), m.Limits.PerUser(10, time.Minute), m.Handler.MobileMoney)
}
