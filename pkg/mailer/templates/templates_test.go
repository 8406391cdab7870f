package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/juicyplanet/config"
)

func TestRender_VerifyOTP(t *testing.T) {
	cfg := &config.Config{CompanyName: "JuicyPlanet", AppName: "juicyplanet"}
	data := NewVerifyOTPData(cfg, "", "a@x.com", "004217", WithExpiresIn(15*time.Minute))

	subject, text, html, err := Render(VerifyOTP, data)
	require.NoError(t, err)

	assert.Equal(t, "Your JuicyPlanet verification code", subject)
	assert.Contains(t, text, "Hi a@x.com,")
	assert.Contains(t, text, "004217")
	assert.Contains(t, text, "15 minutes")
	assert.Contains(t, html, "004217")
}

func TestRender_VerifyEmailLink(t *testing.T) {
	data := NewVerifyEmailData(nil, "Ama", "ama@x.com", "https://shop.example.com/verify-email/tok123", WithExpiresIn(time.Hour))

	subject, text, html, err := Render(VerifyEmail, data)
	require.NoError(t, err)

	assert.Equal(t, "Verify your JuicyPlanet email address", subject)
	assert.Contains(t, text, "Hi Ama,")
	assert.Contains(t, text, "https://shop.example.com/verify-email/tok123")
	assert.Contains(t, text, "1 hour")
	assert.Contains(t, html, `href="https://shop.example.com/verify-email/tok123"`)
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", map[string]any{})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestHumanDuration(t *testing.T) {
	cases := map[time.Duration]string{
		15 * time.Minute: "15 minutes",
		time.Minute:      "1 minute",
		2 * time.Hour:    "2 hours",
		90 * time.Minute: "90 minutes",
		30 * time.Second: "30 seconds",
	}
	for in, want := range cases {
		assert.Equal(t, want, humanDuration(in), in.String())
	}
}
