package application

import (
	"github.com/oksasatya/juicyplanet/config"
	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
	"github.com/oksasatya/juicyplanet/pkg/mailer"
	tpl "github.com/oksasatya/juicyplanet/pkg/mailer/templates"
)

// Delivery decides what a verification code looks like and how it reaches
// the user. The verification state machine is the same for every Delivery.
type Delivery interface {
	NewCode() (string, error)
	Message(u *entity.User, t *entity.EmailToken) mailer.EmailJob
}

// OTPDelivery mails a 6-digit code to be typed into the storefront
type OTPDelivery struct {
	Cfg *config.Config
}

func (d OTPDelivery) NewCode() (string, error) { return helpers.GenOTPCode() }

func (d OTPDelivery) Message(u *entity.User, t *entity.EmailToken) mailer.EmailJob {
	data := tpl.NewVerifyOTPData(d.Cfg, displayName(u), u.Email, t.Code,
		tpl.WithExpiresAt(t.ExpiresAt),
		tpl.WithExpiresIn(t.ExpiresAt.Sub(t.CreatedAt)),
	)
	return mailer.EmailJob{To: u.Email, Template: tpl.VerifyOTP, Data: data}
}

// LinkDelivery mails a link carrying an opaque token
type LinkDelivery struct {
	Cfg *config.Config
}

func (d LinkDelivery) NewCode() (string, error) { return helpers.GenLinkToken(32) }

func (d LinkDelivery) Message(u *entity.User, t *entity.EmailToken) mailer.EmailJob {
	base := ""
	if d.Cfg != nil {
		base = d.Cfg.FrontendURL
	}
	link := base + "/verify-email/" + t.Code
	data := tpl.NewVerifyEmailData(d.Cfg, displayName(u), u.Email, link,
		tpl.WithExpiresAt(t.ExpiresAt),
		tpl.WithExpiresIn(t.ExpiresAt.Sub(t.CreatedAt)),
	)
	return mailer.EmailJob{To: u.Email, Template: tpl.VerifyEmail, Data: data}
}

// NewDelivery picks the delivery for VERIFICATION_MODE
func NewDelivery(cfg *config.Config) Delivery {
	if cfg != nil && cfg.VerificationMode == "link" {
		return LinkDelivery{Cfg: cfg}
	}
	return OTPDelivery{Cfg: cfg}
}

func displayName(u *entity.User) string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return ""
}
