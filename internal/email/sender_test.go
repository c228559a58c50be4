package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/roleready/roleready-api/pkg/circuitbreaker"
	"github.com/roleready/roleready-api/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncRunner runs jobs inline so tests can inspect the outcome
type syncRunner struct {
	errs []error
}

func (s *syncRunner) CallAsync(_ string, fn func(ctx context.Context) error) {
	s.errs = append(s.errs, fn(context.Background()))
}

func newTestMailer(t *testing.T, url string) (*WebhookMailer, *syncRunner) {
	t.Helper()
	runner := &syncRunner{}
	cfg := retry.WebhookConfig()
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 2 * time.Millisecond
	cfg.Jitter = false

	return &WebhookMailer{
		factory:    newTestFactory(t),
		webhookURL: url,
		secret:     "s3cret",
		from:       "noreply@roleready.test",
		client:     &http.Client{Timeout: time.Second},
		breaker:    circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("mail-webhook-test")),
		retry:      cfg,
		runner:     runner,
	}, runner
}

func TestWebhookMailer_PostsRenderedEmail(t *testing.T) {
	var got webhookPayload
	var secret string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret = r.Header.Get(webhookSecretHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m, runner := newTestMailer(t, srv.URL)
	err := m.Send("ada@example.com", "Ada", EventWelcome, nil)
	require.NoError(t, err)

	require.Len(t, runner.errs, 1)
	assert.NoError(t, runner.errs[0])
	assert.Equal(t, "s3cret", secret)
	assert.Equal(t, "ada@example.com", got.To)
	assert.Equal(t, "noreply@roleready.test", got.From)
	assert.Equal(t, EventWelcome, got.Event)
	assert.Equal(t, "Welcome to RoleReady", got.Subject)
	assert.Contains(t, got.HTML, "Hi Ada,")
}

func TestWebhookMailer_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m, runner := newTestMailer(t, srv.URL)
	require.NoError(t, m.Send("ada@example.com", "Ada", EventAccountDeactivated, nil))

	assert.NoError(t, runner.errs[0])
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestWebhookMailer_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	m, runner := newTestMailer(t, srv.URL)
	require.NoError(t, m.Send("ada@example.com", "Ada", EventWelcome, nil))

	assert.Error(t, runner.errs[0])
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestWebhookMailer_UnknownEventFailsBeforeQueueing(t *testing.T) {
	m, runner := newTestMailer(t, "http://127.0.0.1:1")

	err := m.Send("ada@example.com", "Ada", Event("nope"), nil)
	assert.ErrorIs(t, err, ErrUnknownEvent)
	assert.Empty(t, runner.errs)
}

func TestWebhookMailer_DisabledOnlyLogs(t *testing.T) {
	m, runner := newTestMailer(t, "")

	require.NoError(t, m.Send("ada@example.com", "Ada", EventWelcome, nil))
	require.Len(t, runner.errs, 1)
	assert.NoError(t, runner.errs[0])
}
