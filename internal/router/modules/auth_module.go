package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/juicyplanet/internal/interface/http"
	"github.com/oksasatya/juicyplanet/internal/interface/middleware"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
)

// AuthModule serves registration, email verification and login under /user
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Limits  Limits
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, limits Limits) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Limits: limits}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	u := rg.Group("/user")

	u.POST("/register", m.Limits.PerRoute(10, time.Minute), m.Handler.Register)
	u.POST("/login", m.Limits.PerRoute(10, time.Minute), m.Handler.Login)
	u.POST("/send-verification-email", m.Limits.PerRoute(5, time.Minute), m.Handler.SendVerificationEmail)
	u.POST("/resend-otp", m.Limits.PerRoute(5, time.Minute), m.Handler.ResendOTP)
	u.POST("/check-verification-status", m.Limits.PerRoute(60, time.Minute), m.Handler.CheckStatus)
	u.POST("/verify-otp", m.Limits.PerRoute(30, time.Minute), m.Handler.VerifyOTP)
	u.GET("/verify-email/:token", m.Limits.PerRoute(30, time.Minute), m.Handler.VerifyLink)

	u.GET("/me", middleware.Auth(m.JWT), m.Limits.PerUser(120, time.Minute), m.Handler.Me)
}
