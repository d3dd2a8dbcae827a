package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/mickaelbalensi/ProductManager/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	if strings.TrimSpace(payload.To) == "" {
		return nil, fmt.Errorf("jobs: send email: empty recipient")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data, asynq.MaxRetry(5)), nil
}

// SendEmailHandler delivers TaskTypeSendEmail tasks through a Mailer.
type SendEmailHandler struct {
	mailer  Mailer
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
}

// NewSendEmailHandler constructs a SendEmailHandler. metrics may be nil.
func NewSendEmailHandler(mailer Mailer, logger *slog.Logger, metrics *jobmetrics.Metrics) *SendEmailHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SendEmailHandler{mailer: mailer, logger: logger, metrics: metrics}
}

// ProcessTask implements asynq.Handler. Undecodable payloads are not retried.
func (h *SendEmailHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	tracker := h.metrics.Track(TaskTypeSendEmail)

	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Warn("decode send email payload", slog.Any("error", err))
		return tracker.End(fmt.Errorf("jobs: decode payload: %v: %w", err, asynq.SkipRetry))
	}
	if err := h.mailer.Send(ctx, payload); err != nil {
		return tracker.End(fmt.Errorf("jobs: send email: %w", err))
	}
	h.logger.Info("email sent", slog.String("to", payload.To), slog.String("subject", payload.Subject))
	return tracker.End(nil)
}
