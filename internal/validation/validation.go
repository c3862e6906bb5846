// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateUsername checks username length and character set.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(username) > 50 {
		return fmt.Errorf("username must not exceed 50 characters")
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username may only contain letters, digits, and underscores")
	}
	return nil
}

// ValidateEmail checks basic email shape and length.
func ValidateEmail(email string) error {
	if len(email) > 100 {
		return fmt.Errorf("email must not exceed 100 characters")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	// Check maximum length (prevent unreasonable inputs)
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}

	return nil
}

// ValidateTweetText checks tweet/reply text content.
func ValidateTweetText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text content is required")
	}
	if len(text) > 10000 {
		return fmt.Errorf("text content must not exceed 10000 characters")
	}
	return nil
}

// ValidateGroupName checks a group name.
func ValidateGroupName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("group name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("group name must not exceed 100 characters")
	}
	return nil
}

// ValidateEmoji checks a reaction emoji string.
func ValidateEmoji(emoji string) error {
	if emoji == "" {
		return fmt.Errorf("emoji is required")
	}
	if len(emoji) > 10 {
		return fmt.Errorf("emoji must not exceed 10 bytes")
	}
	return nil
}
