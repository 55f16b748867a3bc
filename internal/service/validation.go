package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidInput is returned when a value is unusable after normalisation.
var ErrInvalidInput = errors.New("invalid input")

const (
	usernameMinLength = 3
	usernameMaxLength = 80
	titleMaxLength    = 100
)

// normalizeUsername trims surrounding whitespace and enforces the 3..80
// character rule on what is left.
func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)

	n := utf8.RuneCountInString(username)
	if n < usernameMinLength || n > usernameMaxLength {
		return "", fmt.Errorf("%w: username must be %d to %d characters", ErrInvalidInput, usernameMinLength, usernameMaxLength)
	}

	return username, nil
}

// normalizePost trims the title. Content keeps its whitespace since leading
// indentation is meaningful markdown, but it may not be blank.
func normalizePost(title, content string) (string, error) {
	title = strings.TrimSpace(title)

	if title == "" || utf8.RuneCountInString(title) > titleMaxLength {
		return "", fmt.Errorf("%w: title must be 1 to %d characters", ErrInvalidInput, titleMaxLength)
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: content is required", ErrInvalidInput)
	}

	return title, nil
}
