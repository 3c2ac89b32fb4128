package services

import (
	"strings"
	"testing"

	"github.com/ghuser/propstack/services/invite/domain/models"
)

func TestGenerateCode_Format(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := GenerateCode().String()
		if len(code) != models.CodeLength {
			t.Fatalf("expected length %d, got %q", models.CodeLength, code)
		}
		if !strings.ContainsRune(models.CodeFirstAlphabet, rune(code[0])) {
			t.Fatalf("first character %q not in A-Z: %q", code[0], code)
		}
		for _, r := range code {
			if !strings.ContainsRune(models.CodeAlphabet, r) {
				t.Fatalf("character %q outside alphabet: %q", r, code)
			}
		}
		if !models.IsValidCodeFormat(code) {
			t.Fatalf("generated code fails format check: %q", code)
		}
	}
}

// The code space is 26 * 36^7 ≈ 2x10^12, so a 10k sample colliding would
// point at a broken random source, not bad luck.
func TestGenerateCode_NoCollisionsInSample(t *testing.T) {
	const sample = 10000
	seen := make(map[string]struct{}, sample)
	for i := 0; i < sample; i++ {
		code := GenerateCode().String()
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate code in %d-sample: %q", sample, code)
		}
		seen[code] = struct{}{}
	}
}

func TestGenerateCode_FirstCharacterNeverDigit(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := GenerateCode().String()
		if code[0] >= '0' && code[0] <= '9' {
			t.Fatalf("code starts with digit: %q", code)
		}
	}
}
