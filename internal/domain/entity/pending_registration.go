package entity

import "time"

const (
	// DefaultCodeTTL is how long a verification code is accepted after issuance.
	DefaultCodeTTL = 15 * time.Minute

	// DefaultRecordTTL is how long a pending registration survives before it
	// becomes eligible for cleanup. A record whose code has expired but whose
	// cleanup window has not can still be refreshed via resend.
	DefaultRecordTTL = 24 * time.Hour

	// CodeLength is the exact number of digits in a verification code.
	CodeLength = 6
)

// PendingRegistration is an unconfirmed signup staged until the email code is
// verified. It is keyed by canonical email and owned exclusively by the
// registration flow; it never outlives a successful verification.
type PendingRegistration struct {
	Email            string // Canonical (lowercase) email, unique among pending registrations.
	FirstName        string
	LastName         string
	PasswordHash     string // Hashed before staging; plaintext is never persisted.
	Role             Role
	Profile          ProfileFields
	VerificationCode string    // Exactly 6 ASCII digits.
	CreatedAt        time.Time // Start of both expiry windows; reset by resend.
	LastSentAt       time.Time // When the code was last dispatched.
}

// CodeExpired reports whether the verification code is no longer accepted.
// The record itself may still be alive (see CleanupDue), in which case a
// resend issues a fresh code.
func (p *PendingRegistration) CodeExpired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = DefaultCodeTTL
	}

	return now.After(p.CreatedAt.Add(ttl))
}

// CleanupDue reports whether the record has aged past the cleanup threshold
// and should be deleted by maintenance.
func (p *PendingRegistration) CleanupDue(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = DefaultRecordTTL
	}

	return now.After(p.CreatedAt.Add(ttl))
}
