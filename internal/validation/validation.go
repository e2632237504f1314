// Package validation screens caller input before it reaches the analyzer.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLength is the longest accepted text, in characters
const DefaultMaxLength = 1000

// CrisisMessage is returned when the text mentions self-harm
const CrisisMessage = "This service is not equipped to handle crisis situations. Please contact a mental health professional."

// ErrInvalidInput marks text the analyzer must not be given
var ErrInvalidInput = errors.New("invalid input")

// DefaultCrisisKeywords returns the phrases that reject a request
func DefaultCrisisKeywords() []string {
	return []string{"suicide", "kill myself", "end it all", "hurt myself"}
}

// Error describes why a text was rejected. It matches ErrInvalidInput.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is reports ErrInvalidInput for every validation error
func (e *Error) Is(target error) bool {
	return target == ErrInvalidInput
}

// Rules configures Text. A zero MaxLength means DefaultMaxLength.
type Rules struct {
	MaxLength      int
	CrisisKeywords []string
}

// DefaultRules returns the limits used by the API
func DefaultRules() Rules {
	return Rules{
		MaxLength:      DefaultMaxLength,
		CrisisKeywords: DefaultCrisisKeywords(),
	}
}

// Text trims raw and checks it against the rules. It returns the trimmed
// text that should be analyzed.
func Text(raw string, rules Rules) (string, error) {
	maxLen := rules.MaxLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}

	if utf8.RuneCountInString(raw) > maxLen {
		return "", &Error{Field: "text", Message: fmt.Sprintf("text must be at most %d characters", maxLen)}
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return "", &Error{Field: "text", Message: "text cannot be empty or only whitespace"}
	}

	lower := strings.ToLower(text)
	for _, kw := range rules.CrisisKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(lower, kw) {
			return "", &Error{Field: "text", Message: CrisisMessage}
		}
	}

	return text, nil
}
