// Package validation runs the client-side input checks that gate every write.
// A request is never issued for input that fails here, which is how the client keeps
// validation failures from ever reaching the backend.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/user/snsclone-go/apperror"
	"github.com/user/snsclone-go/models"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// validate returns the shared validator. validator.Validate caches struct metadata and
// is safe for concurrent use, so one instance serves the whole process.
func validate() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})
	return instance
}

// Struct validates any tagged struct and converts failures into a ValidationError.
func Struct(what string, v interface{}) error {
	err := validate().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.NewValidationError(fmt.Sprintf("invalid %s", what), err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return apperror.NewValidationError(fmt.Sprintf("invalid %s: %s", what, strings.Join(problems, "; ")), err)
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " format is wrong"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// Credential checks email format and password length before sign-in or sign-up.
func Credential(c models.Credential) error {
	return Struct("credential", c)
}

// NewPost requires both a title and an image, matching the composer's submit gate.
func NewPost(p models.NewPost) error {
	if err := Struct("post", p); err != nil {
		return err
	}
	if len(p.Image.Data) == 0 {
		return apperror.NewValidationError("invalid post: image is empty", nil)
	}
	return nil
}

// NewComment requires non-empty text and a target post.
func NewComment(c models.NewComment) error {
	return Struct("comment", c)
}

// ProfileUpdate requires a nickname and a known profile id.
func ProfileUpdate(u models.ProfileUpdate) error {
	return Struct("profile", u)
}
