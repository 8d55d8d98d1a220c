package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewNetwork("fetch", "failed to fetch page", inner)

	assert.Contains(t, err.Error(), "network")
	assert.Contains(t, err.Error(), "fetch")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, inner)
}

func TestRetryableByType(t *testing.T) {
	assert.True(t, Retryable(NewNetwork("fetch", "timeout", nil)))
	assert.True(t, Retryable(NewDOM("select", "element not found", nil)))
	assert.False(t, Retryable(NewRateLimit("fetch", "")))
	assert.False(t, Retryable(NewData("extract", "no marker")))
	assert.False(t, Retryable(NewSink("append", "disk full", nil)))
	assert.False(t, Retryable(errors.New("untyped")))
	assert.False(t, Retryable(nil))
}

func TestRetryableSeesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("probe: %w", NewNetwork("fetch", "timeout", nil))
	assert.True(t, Retryable(wrapped))
	assert.Equal(t, ErrorTypeNetwork, TypeOf(wrapped))
}

func TestTypeOfUntyped(t *testing.T) {
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
	assert.Equal(t, ErrorType(""), TypeOf(nil))
}

func TestNewRateLimitMessage(t *testing.T) {
	assert.Contains(t, NewRateLimit("fetch", "120").Error(), "retry after 120")
	assert.Contains(t, NewRateLimit("fetch", "").Error(), "rate limited")
}
