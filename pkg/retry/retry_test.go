package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// no goroutines may outlive the retry loop
	goleak.VerifyTestMain(m)
}

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 2 * time.Millisecond
	cfg.Jitter = false
	return cfg
}

type statusErr struct{ retry bool }

func (e statusErr) Error() string   { return "status" }
func (e statusErr) Retryable() bool { return e.retry }

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), "test", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_GivesUp(t *testing.T) {
	calls := 0
	sentinel := errors.New("always")
	err := Do(context.Background(), fastConfig(), "test", func() error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 4, calls)
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), "test", func() error {
		calls++
		return statusErr{retry: false}
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoWithResult_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DoWithResult(ctx, fastConfig(), "test", func() (int, error) {
		return 1, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(context.Canceled))
	assert.False(t, IsRetryable(statusErr{retry: false}))
	assert.True(t, IsRetryable(statusErr{retry: true}))
	assert.True(t, IsRetryable(errors.New("dial tcp: connection refused")))
}

func TestCalculateDelay_Capped(t *testing.T) {
	cfg := fastConfig()
	cfg.InitialDelay = time.Second
	cfg.MaxDelay = 3 * time.Second
	assert.Equal(t, time.Second, calculateDelay(0, cfg))
	assert.Equal(t, 2*time.Second, calculateDelay(1, cfg))
	assert.Equal(t, 3*time.Second, calculateDelay(5, cfg))
}
