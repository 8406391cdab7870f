package application

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
)

const (
	PaymentStatusPending = "pending"
	DefaultCurrency      = "GHS"
	stubProvider         = "mobile-money-stub"
)

var e164 = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)

// PaymentService accepts mobile-money requests. No provider is called; every
// request is acknowledged as pending.
type PaymentService struct {
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewPaymentService(logger *logrus.Logger) *PaymentService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &PaymentService{Logger: logger, Now: time.Now}
}

type MobileMoneyInput struct {
	Phone    string
	Amount   int64
	Currency string
	OrderRef string
}

func (s *PaymentService) InitiateMobileMoney(_ context.Context, userID string, in MobileMoneyInput) (*entity.MobileMoneyPayment, error) {
	phone := strings.TrimSpace(in.Phone)
	if !e164.MatchString(phone) {
		return nil, fail(KindValidation, "phone must be in E.164 format")
	}
	if in.Amount <= 0 {
		return nil, fail(KindValidation, "amount must be positive")
	}
	orderRef := strings.TrimSpace(in.OrderRef)
	if orderRef == "" {
		return nil, fail(KindValidation, "order_ref is required")
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	p := &entity.MobileMoneyPayment{
		Reference: uuid.NewString(),
		UserID:    userID,
		Phone:     phone,
		Amount:    in.Amount,
		Currency:  currency,
		OrderRef:  orderRef,
		Provider:  stubProvider,
		Status:    PaymentStatusPending,
		CreatedAt: s.Now().UTC(),
	}
	helpers.LogInfo(s.Logger, "mobile money payment initiated", logrus.Fields{
		"reference": p.Reference, "user_id": userID, "order_ref": orderRef, "amount": p.Amount, "currency": currency,
	})
	return p, nil
}
