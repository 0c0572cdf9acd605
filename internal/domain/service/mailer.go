package service

import "context"

// Mailer delivers transactional email for the registration flow.
type Mailer interface {
	// SendVerificationCode dispatches the verification code to the address.
	// An error means nothing reached the provider; callers keep the pending
	// record so the send can be retried.
	SendVerificationCode(ctx context.Context, email, code string) error
}
