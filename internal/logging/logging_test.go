package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", &buf)
	require.NoError(t, err)

	logger.WithContext(context.Background()).Info("routine detail")
	logger.WithContext(context.Background()).Warn("something odd")

	out := buf.String()
	assert.NotContains(t, out, "routine detail")
	assert.Contains(t, out, "something odd")
	assert.Contains(t, out, "session")
}

func TestNew_DefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("", &buf)
	require.NoError(t, err)

	logger.WithContext(context.Background()).Info("hidden")
	assert.Empty(t, buf.String())
}

func TestNew_LevelIsCaseInsensitive(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(" DEBUG ", &buf)
	require.NoError(t, err)

	logger.WithContext(context.Background()).Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrInvalidLevel)
}
