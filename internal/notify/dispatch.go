package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dtroode/autocompany-server/internal/logger"
	"github.com/dtroode/autocompany-server/internal/model"
)

var (
	_ model.VerificationNotifier = (*Inline)(nil)
	_ model.VerificationNotifier = (*Background)(nil)
)

// Inline delivers the confirmation code before returning.
type Inline struct {
	sender  model.MailSender
	codeTTL time.Duration
	timeout time.Duration
}

func NewInline(sender model.MailSender, codeTTL, timeout time.Duration) *Inline {
	return &Inline{sender: sender, codeTTL: codeTTL, timeout: timeout}
}

func (n *Inline) SendVerificationCode(ctx context.Context, email, code string) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.sender.Send(ctx, VerificationMessage(email, code, n.codeTTL)); err != nil {
		return fmt.Errorf("failed to deliver confirmation code: %w", err)
	}
	return nil
}

// Background delivers the confirmation code in its own goroutine and never fails the caller.
// Delivery outlives the caller's context but is bounded by the timeout.
type Background struct {
	sender  model.MailSender
	codeTTL time.Duration
	timeout time.Duration
	logger  *logger.Logger
	wg      sync.WaitGroup
}

func NewBackground(sender model.MailSender, codeTTL, timeout time.Duration, logger *logger.Logger) *Background {
	return &Background{sender: sender, codeTTL: codeTTL, timeout: timeout, logger: logger}
}

func (n *Background) SendVerificationCode(ctx context.Context, email, code string) error {
	msg := VerificationMessage(email, code, n.codeTTL)
	detached := context.WithoutCancel(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(detached, n.timeout)
		defer cancel()

		if err := n.sender.Send(ctx, msg); err != nil {
			n.logger.Error("Mail notifier: failed to deliver confirmation code",
				"email", email,
				"error", err.Error())
			return
		}

		n.logger.Info("Mail notifier: confirmation code delivered",
			"email", email)
	}()

	return nil
}

// Wait blocks until in-flight deliveries finish or ctx is done.
func (n *Background) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
