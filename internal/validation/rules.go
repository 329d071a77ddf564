// Package validation provides composable field rules. Each rule inspects a
// request value and appends messages into a field→messages map; an empty map
// means the request is valid.
package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Errors accumulates per-field failure messages.
type Errors map[string][]string

// Add appends a message for a field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty reports whether no rule failed.
func (e Errors) Empty() bool {
	return len(e) == 0
}

const specialChars = `][""!@$%^&*(){}:;<>,.?/+_=|'~\-`

// forbidden anywhere in a password
const forbiddenChars = "£#“” "

// Required adds a message when value is empty.
func Required(e Errors, field, value, message string) {
	if value == "" {
		e.Add(field, message)
	}
}

// MinLength adds a message when a non-empty value is shorter than min.
// Empty values are left to Required so optional fields can reuse the rule.
func MinLength(e Errors, field, value string, min int, message string) {
	if value != "" && len([]rune(value)) < min {
		e.Add(field, message)
	}
}

// MaxLength adds a message when value exceeds max characters.
func MaxLength(e Errors, field, value string, max int, message string) {
	if len([]rune(value)) > max {
		e.Add(field, message)
	}
}

// Email validates address syntax for non-empty values.
func Email(e Errors, field, value string) {
	if value == "" {
		e.Add(field, "Email is empty")
		return
	}
	if err := validate.Var(value, "email"); err != nil {
		e.Add(field, "Email address is invalid")
	}
}

// Password applies the account password composition rules.
func Password(e Errors, field, value string) {
	if value == "" {
		e.Add(field, "Password is empty")
		return
	}
	if len([]rune(value)) < 6 {
		e.Add(field, "Password must contain at least 6 characters")
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(specialChars, r) {
			hasSpecial = true
		}
	}
	if !hasUpper {
		e.Add(field, "Password must contain an uppercase letter")
	}
	if !hasLower {
		e.Add(field, "Password must contain a lowercase letter")
	}
	if !hasDigit {
		e.Add(field, "Password must contain a digit")
	}
	if !hasSpecial {
		e.Add(field, "Password must contain one or more special characters.")
	}
	if strings.ContainsAny(value, forbiddenChars) {
		e.Add(field, "Password must not contain the following characters £ # “” or spaces.")
	}
}

// NonNegative adds a message when value is below zero.
func NonNegative(e Errors, field string, value float64, message string) {
	if value < 0 {
		e.Add(field, message)
	}
}
