package notify

import (
	"fmt"
	"time"

	"github.com/dtroode/autocompany-server/internal/model"
)

const verificationSubject = "Confirm your email"

// VerificationMessage builds the confirmation mail for email carrying code.
func VerificationMessage(email, code string, ttl time.Duration) model.MailMessage {
	return model.MailMessage{
		To:      email,
		Subject: verificationSubject,
		Text: fmt.Sprintf(
			"Your confirmation code: %s\n\nThe code is valid for %d minutes.\n",
			code, int(ttl.Minutes()),
		),
	}
}
