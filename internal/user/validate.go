package user

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/thesrcielos/HeroHigherLower/internal/apperrors"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

func (r *SignupRequest) Validate() error {
	if !emailPattern.MatchString(r.Email) {
		return apperrors.NewAppError(http.StatusUnprocessableEntity, "Must match an email address!", ErrValidation)
	}
	if len(r.Username) < MinUsernameLength {
		return apperrors.NewAppError(http.StatusUnprocessableEntity,
			fmt.Sprintf("username is shorter than the minimum allowed length (%d)", MinUsernameLength), ErrValidation)
	}
	return validatePassword(r.Password)
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperrors.NewAppError(http.StatusUnprocessableEntity,
			fmt.Sprintf("password is shorter than the minimum allowed length (%d)", MinPasswordLength), ErrValidation)
	}
	return nil
}
