package handlers

import (
	"github.com/go-playground/validator/v10"

	pkgvalidator "github.com/ghuser/propstack/pkg/validator"
	"github.com/ghuser/propstack/services/invite/domain/models"
)

// The invitecode tag accepts anything that normalizes to a well-formed code,
// so clients may send padded or lowercase input.
func init() {
	err := pkgvalidator.Register("invitecode", func(fl validator.FieldLevel) bool {
		return models.IsValidCodeFormat(models.NormalizeCode(fl.Field().String()))
	})
	if err != nil {
		panic(err)
	}
}
