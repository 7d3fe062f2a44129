package model

import "context"

// MailMessage is a plain-text email.
type MailMessage struct {
	To      string
	Subject string
	Text    string
}

// MailSender delivers a single message.
type MailSender interface {
	Send(ctx context.Context, msg MailMessage) error
}

// VerificationNotifier delivers email confirmation codes.
type VerificationNotifier interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}
