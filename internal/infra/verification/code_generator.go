// Package verification provides the concrete verification code generator.
package verification

import (
	"math/rand/v2"
	"strconv"

	"shopsmart/internal/domain/entity"
	"shopsmart/internal/domain/service"
)

// digitCodeGenerator produces fixed-width numeric codes.
type digitCodeGenerator struct{}

// NewDigitCodeGenerator is the constructor for digitCodeGenerator.
func NewDigitCodeGenerator() service.CodeGenerator {
	return &digitCodeGenerator{}
}

// Generate returns a uniformly random 6-digit code, zero-padded on the left
// so "004217" and "942170" are equally likely shapes.
func (g *digitCodeGenerator) Generate() string {
	const span = 1_000_000 // 10^CodeLength

	n := rand.IntN(span)
	code := strconv.Itoa(n)
	for len(code) < entity.CodeLength {
		code = "0" + code
	}

	return code
}
