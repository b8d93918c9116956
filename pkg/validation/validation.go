// Package validation wraps go-playground/validator with the tags request
// DTOs need and maps failures onto domain errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
)

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// principal accepts any parseable address, including the zero address.
	_ = v.RegisterValidation("principal", func(fl validator.FieldLevel) bool {
		_, err := id.ParsePrincipal(fl.Field().String())
		return err == nil
	})
	// nonzeroprincipal additionally rejects 0x000...0.
	_ = v.RegisterValidation("nonzeroprincipal", func(fl validator.FieldLevel) bool {
		p, err := id.ParsePrincipal(fl.Field().String())
		return err == nil && !p.IsZero()
	})
	return v
}

// Validate checks req's struct tags. The first failing field becomes a
// CodeValidation error whose message names it by its JSON key.
func Validate(req any) error {
	if err := defaultValidator.Struct(req); err != nil {
		return dErrors.New(dErrors.CodeValidation, ErrorMessage(err))
	}
	return nil
}

// messages phrase a failed tag for a field; %[1]s is the field, %[2]s the
// tag parameter.
var messages = map[string]string{
	"required":         "%[1]s is required",
	"max":              "%[1]s must be at most %[2]s",
	"notblank":         "%[1]s must not be blank",
	"principal":        "%[1]s must be a 0x-prefixed address",
	"nonzeroprincipal": "%[1]s must be a non-zero address",
}

// ErrorMessage renders the first validator failure in err for a client.
func ErrorMessage(err error) string {
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) || len(failures) == 0 {
		return "invalid request body"
	}

	fe := failures[0]
	field := fe.Field()
	if field == "" {
		field = strings.ToLower(fe.StructField())
	}
	if format, ok := messages[fe.ActualTag()]; ok {
		return fmt.Sprintf(format, field, fe.Param())
	}
	return field + " is invalid"
}
