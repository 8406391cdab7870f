package container

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/juicyplanet/config"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
	"github.com/oksasatya/juicyplanet/pkg/mailer"
)

var ErrMailgunNotConfigured = errors.New("mailgun not configured: MAILGUN_DOMAIN, MAILGUN_API_KEY and MAILGUN_SENDER are required")

// NewDispatcher picks the mail transport from MAIL_TRANSPORT. The returned
// close func releases transport resources and is never nil.
func NewDispatcher(cfg *config.Config, logger *logrus.Logger) (mailer.Dispatcher, func() error, error) {
	noop := func() error { return nil }
	if !cfg.MailSendEnabled {
		return mailer.NewLogDispatcher(logger), noop, nil
	}

	switch cfg.MailTransport {
	case "mailgun":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			return nil, noop, ErrMailgunNotConfigured
		}
		mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		return mailer.NewDirectDispatcher(mg), noop, nil
	case "queue":
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return nil, noop, fmt.Errorf("rabbitmq: %w", err)
		}
		return mailer.NewQueueDispatcher(pub), func() error { pub.Close(); return nil }, nil
	case "log", "":
		return mailer.NewLogDispatcher(logger), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown MAIL_TRANSPORT %q", cfg.MailTransport)
	}
}
