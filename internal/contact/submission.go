// Package contact implements the contact form: validation, the submit state
// machine and the senders that deliver messages.
package contact

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Submission is the content of the contact form.
type Submission struct {
	Name    string `form:"name" json:"name" validate:"filled"`
	Email   string `form:"email" json:"email" validate:"filled,mailbox"`
	Subject string `form:"subject" json:"subject" validate:"filled"`
	Message string `form:"message" json:"message" validate:"filled"`
}

var mailboxPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Missing      []string
	InvalidEmail bool
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if e.InvalidEmail {
		parts = append(parts, "invalid email")
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

// NewValidator returns a validator with the form's custom rules registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.ToLower(f.Name)
	})
	_ = v.RegisterValidation("filled", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return mailboxPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks every field is non-blank and the email looks like
// local@domain.tld.
func Validate(v *validator.Validate, s Submission) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating submission: %w", err)
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "filled":
			verr.Missing = append(verr.Missing, fe.Field())
		case "mailbox":
			verr.InvalidEmail = true
		}
	}
	return verr
}
