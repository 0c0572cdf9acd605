package service

// CodeGenerator produces verification codes for pending registrations.
type CodeGenerator interface {
	// Generate returns a string of exactly six ASCII digits. Codes are
	// rate-limit protected rather than cryptographically random; the short
	// validity window bounds the guessing surface.
	Generate() string
}
