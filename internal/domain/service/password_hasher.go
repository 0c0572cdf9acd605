// Package service defines interfaces for domain services.
// These abstract away infrastructure concerns from the use case layer.
package service

// PasswordHasher defines the interface for password hashing operations.
type PasswordHasher interface {
	// Hash generates a hash from a plaintext password.
	Hash(password string) (string, error)

	// Compare checks if a plaintext password matches a hash.
	Compare(hashedPassword, password string) error
}
