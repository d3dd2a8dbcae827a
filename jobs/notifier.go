package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/mickaelbalensi/ProductManager/internal/auth"
)

// EmailEnqueuer submits send-email tasks.
type EmailEnqueuer interface {
	EnqueueSendEmail(ctx context.Context, payload SendEmailPayload) (*asynq.TaskInfo, error)
}

// WelcomeNotifier enqueues a welcome email for every registered user.
type WelcomeNotifier struct {
	queue EmailEnqueuer
}

// NewWelcomeNotifier constructs a WelcomeNotifier.
func NewWelcomeNotifier(queue EmailEnqueuer) *WelcomeNotifier {
	return &WelcomeNotifier{queue: queue}
}

// UserRegistered implements auth.Notifier.
func (n *WelcomeNotifier) UserRegistered(ctx context.Context, user auth.User) error {
	_, err := n.queue.EnqueueSendEmail(ctx, WelcomeEmail(user))
	if err != nil {
		return fmt.Errorf("jobs: enqueue welcome email: %w", err)
	}
	return nil
}

// WelcomeEmail renders the welcome message for user.
func WelcomeEmail(user auth.User) SendEmailPayload {
	return SendEmailPayload{
		To:      user.Email,
		Subject: "Welcome to ProductManager",
		Body: fmt.Sprintf("Hello %s,\n\nYour account %s is ready. Create a project and start adding tasks.\n",
			user.FirstName, user.Email),
	}
}

var _ auth.Notifier = (*WelcomeNotifier)(nil)
