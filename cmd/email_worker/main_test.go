package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/juicyplanet/pkg/helpers"
	"github.com/oksasatya/juicyplanet/pkg/mailer"
)

type ackRecorder struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *ackRecorder) Ack(uint64, bool) error { a.acked = true; return nil }
func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}
func (a *ackRecorder) Reject(_ uint64, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

type stubSender struct {
	err     error
	to      string
	subject string
}

func (s *stubSender) Send(_ context.Context, to, subject, _, _ string) error {
	s.to, s.subject = to, subject
	return s.err
}

func delivery(t *testing.T, ack *ackRecorder, job any) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(job)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, Body: body}
}

func TestHandle_SendsAndAcks(t *testing.T) {
	ack := &ackRecorder{}
	s := &stubSender{}
	job := mailer.EmailJob{To: "ama@example.com", Subject: "Hello", Text: "hi"}

	handle(context.Background(), helpers.NopLogger(), s, delivery(t, ack, job))

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	assert.Equal(t, "ama@example.com", s.to)
	assert.Equal(t, "Hello", s.subject)
}

func TestHandle_SendFailureRequeues(t *testing.T) {
	ack := &ackRecorder{}
	s := &stubSender{err: errors.New("mailgun down")}

	handle(context.Background(), helpers.NopLogger(), s, delivery(t, ack, mailer.EmailJob{To: "a@b.co", Subject: "x", Text: "y"}))

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)
}

func TestHandle_DropsBadMessages(t *testing.T) {
	ack := &ackRecorder{}
	handle(context.Background(), helpers.NopLogger(), &stubSender{}, amqp.Delivery{Acknowledger: ack, Body: []byte("{not json")})
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)

	ack = &ackRecorder{}
	handle(context.Background(), helpers.NopLogger(), &stubSender{}, delivery(t, ack, mailer.EmailJob{To: "a@b.co"}))
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue, "a job with nothing to render is never retried")
}
