package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cfg := Config{APIKey: "k"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)

	empty := Config{}
	assert.Error(t, empty.Validate())
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(context.Background(), Config{Model: "gemini-2.5-flash"})
	assert.Error(t, err)
}

func TestGenerateContentRejectsEmptyRequest(t *testing.T) {
	g, err := New(context.Background(), Config{APIKey: "test-key"})
	require.NoError(t, err)

	_, err = g.GenerateContent(context.Background(), &Request{})
	assert.Error(t, err)
	_, err = g.GenerateContent(context.Background(), nil)
	assert.Error(t, err)
}
