package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/juicyplanet/internal/application"
	"github.com/oksasatya/juicyplanet/internal/interface/middleware"
	"github.com/oksasatya/juicyplanet/pkg/response"
)

type PaymentHandler struct {
	Svc *application.PaymentService
}

func NewPaymentHandler(svc *application.PaymentService) *PaymentHandler {
	return &PaymentHandler{Svc: svc}
}

type mobileMoneyRequest struct {
	Phone    string `json:"phone" binding:"required,phone"`
	Amount   int64  `json:"amount" binding:"required,money"`
	Currency string `json:"currency" binding:"omitempty,len=3,alpha"`
	OrderRef string `json:"order_ref" binding:"required,max=64"`
}

// MobileMoney POST /api/payments/mobile-money (auth)
func (h *PaymentHandler) MobileMoney(c *gin.Context) {
	var req mobileMoneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	p, err := h.Svc.InitiateMobileMoney(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.MobileMoneyInput{
		Phone:    req.Phone,
		Amount:   req.Amount,
		Currency: req.Currency,
		OrderRef: req.OrderRef,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{
		"reference": p.Reference,
		"status":    p.Status,
		"provider":  p.Provider,
		"amount":    p.Amount,
		"currency":  p.Currency,
	}, "payment initiated", nil)
}
