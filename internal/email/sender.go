package email

import (
	"context"
	"fmt"
	"time"

	"github.com/roleready/roleready-api/config"
	"github.com/roleready/roleready-api/pkg/circuitbreaker"
	"github.com/roleready/roleready-api/pkg/httpclient"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/metrics"
	"github.com/roleready/roleready-api/pkg/retry"
	"github.com/roleready/roleready-api/pkg/trigger"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const webhookSecretHeader = "X-Webhook-Secret"

// Mailer renders an email and queues it for delivery
type Mailer interface {
	Send(to, userName string, event Event, metadata map[string]string) error
}

// Runner runs delivery off the request path
type Runner interface {
	CallAsync(operation string, fn func(ctx context.Context) error)
}

// webhookPayload is what the mail webhook receives
type webhookPayload struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Event   Event  `json:"event"`
}

// WebhookMailer posts rendered emails to EMAIL_WEBHOOK_URL. Without a URL
// it only logs what would have been sent.
type WebhookMailer struct {
	factory    *Factory
	webhookURL string
	secret     string
	from       string
	client     httpclient.Client
	breaker    *gobreaker.CircuitBreaker
	retry      retry.Config
	runner     Runner
}

var _ Mailer = (*WebhookMailer)(nil)

// NewWebhookMailer wires the mailer from config
func NewWebhookMailer(cfg config.EmailConfig, factory *Factory, runner *trigger.Runner) *WebhookMailer {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &WebhookMailer{
		factory:    factory,
		webhookURL: cfg.WebhookURL,
		secret:     cfg.WebhookSecret,
		from:       cfg.From,
		client:     httpclient.NewStandardClient(timeout),
		breaker:    circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("mail-webhook")),
		retry:      retry.WebhookConfig(),
		runner:     runner,
	}
}

// Send renders synchronously so unknown events fail the caller, then
// delivers in the background
func (m *WebhookMailer) Send(to, userName string, event Event, metadata map[string]string) error {
	msg, err := m.factory.Render(event, userName, metadata)
	if err != nil {
		metrics.EmailsSent.WithLabelValues(string(event), "render_error").Inc()
		return err
	}

	payload := webhookPayload{
		To:      to,
		From:    m.from,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Event:   event,
	}

	m.runner.CallAsync("email:"+string(event), func(ctx context.Context) error {
		return m.deliver(ctx, payload)
	})
	return nil
}

func (m *WebhookMailer) deliver(ctx context.Context, p webhookPayload) error {
	if m.webhookURL == "" {
		logger.Info("Email delivery disabled, dropping message",
			zap.String("event", string(p.Event)),
			zap.String("to", p.To),
			zap.String("subject", p.Subject))
		logger.Debug("Email body", zap.String("html", p.HTML))
		metrics.EmailsSent.WithLabelValues(string(p.Event), "skipped").Inc()
		return nil
	}

	headers := map[string]string{}
	if m.secret != "" {
		headers[webhookSecretHeader] = m.secret
	}

	start := time.Now()
	_, err := circuitbreaker.Execute(m.breaker, func() (struct{}, error) {
		return struct{}{}, retry.Do(ctx, m.retry, "mail-webhook", func() error {
			return httpclient.PostJSON(ctx, m.client, m.webhookURL, p, headers)
		})
	})
	duration := metrics.MeasureDuration(start)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.EmailDeliveryDuration.WithLabelValues(status).Observe(duration)
	metrics.EmailsSent.WithLabelValues(string(p.Event), status).Inc()
	logger.LogAPICall("mail-webhook", string(p.Event), status, duration, zap.String("to", p.To))

	if err != nil {
		return fmt.Errorf("failed to deliver %s email: %w", p.Event, err)
	}
	return nil
}
