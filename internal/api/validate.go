package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"findex/internal/language"
	"findex/internal/services"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v, err := newValidator()
		if err != nil {
			panic(fmt.Sprintf("api: build request validator: %v", err))
		}
		validate = v
	})
	return validate
}

// newValidator reports JSON field names in errors and registers the
// subtitle_lang tag.
func newValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	err := v.RegisterValidation("subtitle_lang", func(fl validator.FieldLevel) bool {
		_, err := language.Canonicalize(fl.Field().String())
		return err == nil
	})
	if err != nil {
		return nil, fmt.Errorf("register subtitle_lang: %w", err)
	}
	return v, nil
}

// Validate checks request struct tags and returns a validation-marked error
// naming every rejected field.
func Validate(request any) error {
	err := getValidator().Struct(request)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return services.Wrap(services.ErrValidation, "api", "validate", "validation failed", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, e.Field()+" "+describeFieldError(e))
	}
	return services.WithMessage(services.ErrValidation, strings.Join(messages, "; "))
}

func describeFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "subtitle_lang":
		return "is not a recognized language"
	default:
		return "is invalid"
	}
}

// trimFields trims whitespace before validation so " " counts as missing.
func trimFields(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}
