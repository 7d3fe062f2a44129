package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/dtroode/autocompany-server/internal/model"
)

var _ model.MailSender = (*ResendSender)(nil)

// ResendSender delivers mail through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(client *resend.Client, from string) *ResendSender {
	return &ResendSender{client: client, from: from}
}

func (s *ResendSender) Send(ctx context.Context, msg model.MailMessage) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to send email via resend: %w", err)
	}
	return nil
}
