package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// NormalizeTaskText trims text and checks it against the task text limits.
func NormalizeTaskText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: text must not be empty", ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > TextMaxLength {
		return "", fmt.Errorf("%w: text exceeds %d characters", ErrInvalidInput, TextMaxLength)
	}
	return text, nil
}
