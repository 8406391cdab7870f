package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tpl "github.com/oksasatya/juicyplanet/pkg/mailer/templates"
)

type sentMail struct{ to, subject, text, html string }

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, text, html})
	return nil
}

type fakePublisher struct {
	bodies []any
	err    error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.bodies = append(f.bodies, body)
	return nil
}

func otpJob() EmailJob {
	return EmailJob{To: "a@x.com", Template: tpl.VerifyOTP, Data: tpl.NewVerifyOTPData(nil, "", "", "123456")}
}

func TestDirectDispatcher_RendersTemplate(t *testing.T) {
	s := &fakeSender{}
	require.NoError(t, NewDirectDispatcher(s).Dispatch(context.Background(), otpJob()))

	require.Len(t, s.sent, 1)
	assert.Equal(t, "a@x.com", s.sent[0].to)
	assert.Equal(t, "Your JuicyPlanet verification code", s.sent[0].subject)
	assert.Contains(t, s.sent[0].text, "123456")
	assert.Contains(t, s.sent[0].text, "Hi a@x.com,", "recipient fills the empty Email field")
}

func TestDirectDispatcher_RawAndErrors(t *testing.T) {
	s := &fakeSender{}
	d := NewDirectDispatcher(s)

	require.NoError(t, d.Dispatch(context.Background(), EmailJob{To: "b@x.com", Subject: "Hello", Text: "hi"}))
	assert.Equal(t, "Hello", s.sent[0].subject)

	assert.ErrorIs(t, d.Dispatch(context.Background(), EmailJob{To: "b@x.com"}), ErrEmptyJob)

	s.err = errors.New("mailgun down")
	assert.EqualError(t, d.Dispatch(context.Background(), otpJob()), "mailgun down")
}

func TestQueueDispatcher_Publishes(t *testing.T) {
	p := &fakePublisher{}
	d := NewQueueDispatcher(p)

	require.NoError(t, d.Dispatch(context.Background(), otpJob()))
	require.Len(t, p.bodies, 1)
	job, ok := p.bodies[0].(EmailJob)
	require.True(t, ok)
	assert.Equal(t, tpl.VerifyOTP, job.Template)

	assert.ErrorIs(t, d.Dispatch(context.Background(), EmailJob{To: "x@x.com"}), ErrEmptyJob)
}

func TestLogDispatcher_NoCodeAtInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.InfoLevel)

	job := otpJob()
	job.Data = tpl.NewVerifyOTPData(nil, "", "", "654321")
	require.NoError(t, NewLogDispatcher(l).Dispatch(context.Background(), job))
	assert.Contains(t, buf.String(), "a@x.com")
	assert.NotContains(t, buf.String(), "654321")
}

func TestEnsureRecipient(t *testing.T) {
	j := EmailJob{To: "c@x.com", Template: tpl.VerifyOTP}
	j.EnsureRecipient()
	assert.Equal(t, "c@x.com", j.Data["Email"])
	assert.Equal(t, "c@x.com", j.Data["RecipientEmail"])

	j = EmailJob{To: "c@x.com", Template: tpl.VerifyOTP, Data: map[string]any{"Email": "d@x.com"}}
	j.EnsureRecipient()
	assert.Equal(t, "d@x.com", j.Data["Email"])
}
