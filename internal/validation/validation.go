// Package validation wires custom rules into gin's validator and turns binding
// failures into the field messages shown on re-rendered forms.
package validation

import (
	"errors"  // Error type assertions
	"fmt"     // Message formatting
	"reflect" // Struct tag lookup
	"strconv" // Param parsing
	"strings" // String manipulation
	"sync"    // One-time registration

	"github.com/gin-gonic/gin/binding"       // Gin binding engine
	"github.com/go-playground/validator/v10" // Struct validator
)

// FieldError is one failed rule, rendered in the form's error list
type FieldError struct {
	Field   string `json:"field,omitempty"` // Form field name, empty for non-field errors
	Message string `json:"message"`         // Human readable message
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register installs the custom rules on gin's default validator. Safe to call
// repeatedly, every call returns the outcome of the first.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		// Report form field names instead of Go field names
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		if err := v.RegisterValidation("decimals", decimals); err != nil {
			registerErr = fmt.Errorf("register decimals rule: %w", err)
		}
	})
	return registerErr
}

// decimals checks that a numeric string has no more than param digits after the point
func decimals(fl validator.FieldLevel) bool {
	max, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	s := fl.Field().String()
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return true
	}
	return len(s)-i-1 <= max
}

// Errors converts a binding error into field messages, one per failing field, in
// struct order.
func Errors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: "Invalid form submission: " + err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	name := fmt.Sprintf("%q", fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email"
	case "numeric":
		return name + " must be a number"
	case "decimals":
		return fmt.Sprintf("%s must have no more than %s decimal places", name, fe.Param())
	case "latitude":
		return name + " must be a valid latitude"
	case "longitude":
		return name + " must be a valid longitude"
	default:
		return name + " is invalid"
	}
}
