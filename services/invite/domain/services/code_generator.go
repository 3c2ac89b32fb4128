// Package services contains stateless domain services for the invite bounded
// context. Domain services enforce business rules that operate purely on
// domain types and have zero external dependencies beyond stdlib and the
// domain layer.
package services

import (
	"math/rand/v2"

	"github.com/ghuser/propstack/services/invite/domain/models"
)

// GenerateCode produces a single random invite code: first character uniform
// over A-Z, remaining seven uniform over A-Z0-9. Each call is independent.
//
// math/rand is deliberate — the 26 * 36^7 code space is sized to avoid
// accidental collisions, not to resist an adversary guessing codes. Swap in
// crypto/rand if codes ever become a secret-bearing credential.
func GenerateCode() models.InviteCode {
	b := make([]byte, models.CodeLength)
	b[0] = models.CodeFirstAlphabet[rand.IntN(len(models.CodeFirstAlphabet))]
	for i := 1; i < models.CodeLength; i++ {
		b[i] = models.CodeAlphabet[rand.IntN(len(models.CodeAlphabet))]
	}
	return models.InviteCode(b)
}
