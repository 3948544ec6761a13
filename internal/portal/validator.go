package portal

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire and input format of a date of birth.
const DateLayout = "2006-01-02"

const minRegistrationLength = 3

// User-facing validation messages.
const (
	MsgInvalidRegistration = "Please enter a valid Registration Number."
	MsgMissingDateOfBirth  = "Please select Date of Birth."
	MsgFutureDateOfBirth   = "Date of Birth cannot be in the future."
)

const (
	tagRegistrationNumber = "registration_number"
	tagNotFutureDate      = "not_future_date"
)

// LookupInput is the raw content of the two form fields.
type LookupInput struct {
	RegistrationNumber string `validate:"registration_number"`
	DateOfBirth        string `validate:"required,not_future_date"`
}

// ValidationError rejects a submission before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InputValidator checks form input. Rules run in field order and the first failure wins.
type InputValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewInputValidator builds a validator. now defaults to time.Now.
func NewInputValidator(now func() time.Time) *InputValidator {
	if now == nil {
		now = time.Now
	}
	iv := &InputValidator{validate: validator.New(), now: now}
	mustRegister(iv.validate, tagRegistrationNumber, func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= minRegistrationLength
	})
	mustRegister(iv.validate, tagNotFutureDate, iv.notFutureDate)
	return iv
}

// Validate returns nil or a *ValidationError carrying the message to show.
func (v *InputValidator) Validate(in LookupInput) error {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	first := fieldErrs[0]
	return &ValidationError{Field: first.Field(), Message: messageFor(first)}
}

// An unparsable date is left for the server to reject.
func (v *InputValidator) notFutureDate(fl validator.FieldLevel) bool {
	dob, err := time.Parse(DateLayout, fl.Field().String())
	if err != nil {
		return true
	}
	return !dob.After(v.now())
}

func messageFor(fe validator.FieldError) string {
	switch {
	case fe.Field() == "RegistrationNumber":
		return MsgInvalidRegistration
	case fe.Tag() == tagNotFutureDate:
		return MsgFutureDateOfBirth
	default:
		return MsgMissingDateOfBirth
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}
