package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/juicyplanet/internal/application"
	"github.com/oksasatya/juicyplanet/internal/interface/middleware"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
	"github.com/oksasatya/juicyplanet/pkg/response"
)

type AuthHandler struct {
	Svc        *application.AuthService
	Cookies    *helpers.Manager
	PendingTTL time.Duration
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.Manager, pendingTTL time.Duration) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, PendingTTL: pendingTTL}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Username string `json:"username" binding:"omitempty,min=3,max=32"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
}

type userRef struct {
	UserID string `json:"user_id" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
}

type statusRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email" binding:"omitempty,email"`
}

type verifyOTPRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Email  string `json:"email" binding:"omitempty,email"`
	OTP    string `json:"otp" binding:"required,otp"`
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Register POST /api/user/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.Cookies.SetPendingVerification(c, res.UserID, h.PendingTTL)
	response.Success(c, http.StatusCreated, res, "registration successful, check your email for the verification code", nil)
}

// SendVerificationEmail POST /api/user/send-verification-email
func (h *AuthHandler) SendVerificationEmail(c *gin.Context) {
	var req userRef
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	msg, err := h.Svc.SendVerificationEmail(c.Request.Context(), req.UserID, req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, msg, nil)
}

// CheckStatus POST /api/user/check-verification-status
func (h *AuthHandler) CheckStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	verified, err := h.Svc.CheckStatus(c.Request.Context(), req.UserID, req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verified": verified}, "verification status", nil)
}

// VerifyOTP POST /api/user/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	res, err := h.Svc.VerifyOTP(c.Request.Context(), req.UserID, req.Email, req.OTP, h.Cookies.PendingVerification(c))
	if err != nil {
		writeError(c, err)
		return
	}
	h.writeVerified(c, res)
}

// VerifyLink GET /api/user/verify-email/:token
func (h *AuthHandler) VerifyLink(c *gin.Context) {
	res, err := h.Svc.VerifyLink(c.Request.Context(), c.Param("token"), h.Cookies.PendingVerification(c))
	if err != nil {
		writeError(c, err)
		return
	}
	h.writeVerified(c, res)
}

func (h *AuthHandler) writeVerified(c *gin.Context, res *application.VerifyResult) {
	if res.ClearPending {
		h.Cookies.ClearPendingVerification(c)
	}
	data := gin.H{"verified": true, "autoLogin": res.AutoLogin}
	if res.Session != nil {
		data["token"] = res.Session.Token
		data["user"] = res.Session.User
	}
	response.Success(c, http.StatusOK, data, res.Message, nil)
}

// ResendOTP POST /api/user/resend-otp
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req userRef
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	msg, err := h.Svc.ResendOTP(c.Request.Context(), req.UserID, req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, msg, nil)
}

// Login POST /api/user/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		status := StatusOf(err)
		if application.KindOf(err) == application.KindNotFound {
			// unknown identifiers look like a bad request, not a missing resource
			status = http.StatusBadRequest
		}
		response.Error[any](c, status, application.MessageOf(err), nil)
		return
	}
	if res.Pending {
		h.Cookies.SetPendingVerification(c, res.UserID, h.PendingTTL)
		response.Failure(c, http.StatusForbidden, "please verify your email before logging in", gin.H{
			"redirect": application.CheckEmailRedirect,
			"user_id":  res.UserID,
			"email":    res.Email,
		})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": res.Session.Token, "user": res.Session.User},
		"login successful", gin.H{"expires_at": res.Session.ExpiresAt})
}

// Me GET /api/user/me
func (h *AuthHandler) Me(c *gin.Context) {
	p, err := h.Svc.Me(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "profile", nil)
}
