package keepererr

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	origErr := errors.New("server error")

	assert.False(t, IsRetryable(origErr))
	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(NewRetryableAnytimeError(origErr)))
	assert.True(t, IsRetryable(fmt.Errorf("fetching check runs: %w", NewRetryableAnytimeError(origErr))))
}

func TestErrorString(t *testing.T) {
	origErr := errors.New("rate limited")

	assert.Equal(t, "retryable error: rate limited", NewRetryableAnytimeError(origErr).Error())

	after := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Contains(t, NewRetryableError(origErr, after).Error(), "(after 2024-01-02 03:04:05 +0000 UTC)")
	assert.ErrorIs(t, NewRetryableError(origErr, after), origErr)
}
