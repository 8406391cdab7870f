package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	tpl "github.com/oksasatya/juicyplanet/pkg/mailer/templates"
)

var ErrEmptyJob = errors.New("email job needs a template or a subject with text/html")

// Dispatcher hands an email job to a transport. Implementations return once
// the transport accepted the job; callers await it inline.
type Dispatcher interface {
	Dispatch(ctx context.Context, job EmailJob) error
}

// Render resolves a job into subject, text and html bodies
func Render(job EmailJob) (subject, text, html string, err error) {
	if job.Template != "" {
		job.EnsureRecipient()
		return tpl.Render(job.Template, job.Data)
	}
	if job.Subject == "" || (job.Text == "" && job.HTML == "") {
		return "", "", "", ErrEmptyJob
	}
	return job.Subject, job.Text, job.HTML, nil
}

// DirectDispatcher renders and sends within the request
type DirectDispatcher struct {
	Sender Sender
}

func NewDirectDispatcher(s Sender) *DirectDispatcher { return &DirectDispatcher{Sender: s} }

func (d *DirectDispatcher) Dispatch(ctx context.Context, job EmailJob) error {
	subject, text, html, err := Render(job)
	if err != nil {
		return fmt.Errorf("render %q: %w", job.Template, err)
	}
	return d.Sender.Send(ctx, job.To, subject, text, html)
}

// JSONPublisher is satisfied by helpers.RabbitPublisher
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueDispatcher publishes jobs for cmd/email_worker to render and send
type QueueDispatcher struct {
	Pub JSONPublisher
}

func NewQueueDispatcher(p JSONPublisher) *QueueDispatcher { return &QueueDispatcher{Pub: p} }

func (d *QueueDispatcher) Dispatch(ctx context.Context, job EmailJob) error {
	if job.Template == "" && (job.Subject == "" || (job.Text == "" && job.HTML == "")) {
		return ErrEmptyJob
	}
	return d.Pub.PublishJSON(ctx, job)
}

// LogDispatcher renders the job and writes it to the log instead of sending.
// Bodies are logged at debug level only, so codes never reach production logs.
type LogDispatcher struct {
	Logger *logrus.Logger
}

func NewLogDispatcher(l *logrus.Logger) *LogDispatcher { return &LogDispatcher{Logger: l} }

func (d *LogDispatcher) Dispatch(_ context.Context, job EmailJob) error {
	subject, text, _, err := Render(job)
	if err != nil {
		return err
	}
	entry := d.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template, "subject": subject})
	entry.Info("email not sent (log transport)")
	entry.Debug(text)
	return nil
}
