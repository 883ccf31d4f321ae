// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidateNickname checks if a nickname meets requirements
func ValidateNickname(nickname string) error {
	trimmed := strings.TrimSpace(nickname)
	if trimmed == "" {
		return fmt.Errorf("nickname is required")
	}
	if utf8.RuneCountInString(trimmed) > 30 {
		return fmt.Errorf("nickname must not exceed 30 characters")
	}
	return nil
}

// ValidatePassword rejects empty or unreasonably long passwords.
// Strength policy is intentionally left to the client.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}

// ValidateCommentContent enforces the comment length contract.
func ValidateCommentContent(content string) error {
	if content == "" {
		return fmt.Errorf("content is required")
	}
	if utf8.RuneCountInString(content) > 500 {
		return fmt.Errorf("comment must not exceed 500 characters")
	}
	return nil
}
