package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	repo "github.com/oksasatya/juicyplanet/internal/domain/repository"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
	"github.com/oksasatya/juicyplanet/pkg/mailer"
)

type ContactService struct {
	Repo   repo.ContactRepository
	Mail   mailer.Dispatcher
	Notify string // admin inbox; empty disables the notification
	Logger *logrus.Logger
}

func NewContactService(r repo.ContactRepository, mail mailer.Dispatcher, notify string, logger *logrus.Logger) *ContactService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &ContactService{Repo: r, Mail: mail, Notify: notify, Logger: logger}
}

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Create stores a contact message and forwards a copy to the admin inbox.
// A failed notification does not fail the request.
func (s *ContactService) Create(ctx context.Context, in ContactInput) (*entity.ContactMessage, error) {
	m := &entity.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   NormalizeEmail(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if m.Name == "" || m.Email == "" || m.Message == "" {
		return nil, fail(KindValidation, "name, email and message are required")
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		helpers.LogError(s.Logger, "save contact message failed", err, nil)
		return nil, upstream("save contact message", err)
	}

	if s.Mail != nil && s.Notify != "" {
		subject := "New contact message"
		if m.Subject != "" {
			subject += ": " + m.Subject
		}
		job := mailer.EmailJob{
			To:      s.Notify,
			Subject: subject,
			Text:    "From: " + m.Name + " <" + m.Email + ">\n\n" + m.Message,
		}
		if err := s.Mail.Dispatch(ctx, job); err != nil {
			s.Logger.WithError(err).WithField("contact_id", m.ID).Warn("contact notification failed")
		}
	}
	return m, nil
}

func (s *ContactService) List(ctx context.Context, limit, offset int) ([]entity.ContactMessage, error) {
	limit, offset = pageBounds(limit, offset)
	items, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		helpers.LogError(s.Logger, "list contact messages failed", err, nil)
		return nil, upstream("list contact messages", err)
	}
	return items, nil
}
