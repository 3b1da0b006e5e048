package auth

import (
	"econ-lab/errors"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Credentials is what an operator submits on the admin login page.
type Credentials struct {
	Username string `validate:"required,max=150"`
	Password string `validate:"required,max=72"`
}

func ValidateCredentials(c Credentials) error {
	return validate.Struct(c)
}

// ValidateProductionPassword applies the stricter rules used when the
// server runs in production mode.
func ValidateProductionPassword(password string) error {
	if err := validate.Var(password, "required,min=12,max=72"); err != nil {
		return err
	}
	if !isPasswordComplex(password) {
		return errors.ErrInvalidPassword
	}
	return nil
}

func isPasswordComplex(s string) bool {
	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)
	for _, char := range s {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasNumber && hasSpecial
}
