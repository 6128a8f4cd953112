// Package validate holds the form checks run before any credential lookup.
package validate

import (
	"regexp"
	"strings"

	"homehub/utils/errors"
)

// Password bounds apply to signup only. bcrypt rejects input longer than
// MaxPasswordBytes.
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginForm is the trimmed input of the login screen.
type LoginForm struct {
	Email    string
	Password string
}

// SignupForm is the trimmed input of the signup screen.
type SignupForm struct {
	Username string
	Email    string
	Password string
}

// Email reports whether s has the local@domain.tld shape.
func Email(s string) bool {
	return emailRegex.MatchString(s)
}

// Login trims and checks the login fields.
func Login(email, password string) (LoginForm, error) {
	form := LoginForm{
		Email:    strings.TrimSpace(email),
		Password: strings.TrimSpace(password),
	}
	if form.Email == "" || form.Password == "" {
		return form, errors.Validation("Please fill in all fields.")
	}
	if !Email(form.Email) {
		return form, errors.Validation("Please enter a valid email address")
	}
	return form, nil
}

// Signup trims and checks the signup fields.
func Signup(username, email, password string) (SignupForm, error) {
	form := SignupForm{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: strings.TrimSpace(password),
	}
	if form.Username == "" || form.Email == "" || form.Password == "" {
		return form, errors.Validation("Please fill in all fields.")
	}
	if !Email(form.Email) {
		return form, errors.Validation("Please enter a valid email address")
	}
	if len(form.Password) < MinPasswordLength {
		return form, errors.Validation("Password must be at least 6 characters long.")
	}
	if len(form.Password) > MaxPasswordBytes {
		return form, errors.Validation("Password must be at most 72 characters long.")
	}
	return form, nil
}
