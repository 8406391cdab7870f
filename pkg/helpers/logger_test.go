package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ProductionUsesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "juicyplanet", "production")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())

	buf.Reset()
	LogError(l, "dispatch failed", errors.New("smtp down"), logrus.Fields{"user_id": "u1"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dispatch failed", entry["msg"])
	assert.Equal(t, "smtp down", entry["error"])
	assert.Equal(t, "u1", entry["user_id"])
}

func TestNewLogger_DevelopmentIsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "juicyplanet", "development")
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogError(nil, "x", errors.New("y"), nil)
		LogInfo(nil, "x", nil)
	})
}
