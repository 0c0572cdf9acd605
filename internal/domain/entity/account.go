// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is the permanent user record, created only after email verification
// succeeds. It carries exactly one role and the matching profile pointer; the
// other profile pointer is nil.
type Account struct {
	ID               uuid.UUID // The unique identifier for the account.
	Email            string    // Canonical (lowercase) login email, unique across accounts.
	FirstName        string
	LastName         string
	PasswordHash     string // bcrypt hash; plaintext passwords never reach this struct.
	Role             Role
	IsApproved       bool // Always true for customers; shop owners need admin approval.
	IsActive         bool // Inactive accounts are treated as abandoned and may be reclaimed.
	CustomerProfile  *CustomerProfile
	ShopOwnerProfile *ShopOwnerProfile
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName returns the account holder's display name.
func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// CanonicalEmail converts a raw email address to the canonical form used for
// every store lookup: trimmed and lowercased. Applied uniformly at intake,
// resend and verify so no code path is case-sensitive.
func CanonicalEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
