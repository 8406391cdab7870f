package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/juicy-media/products/p1/a.png", PublicURL("juicy-media", "products/p1/a.png"))
}

func TestNewESClient_Disabled(t *testing.T) {
	c, err := NewESClient(nil, "", "")
	assert.NoError(t, err)
	assert.Nil(t, c)
}
