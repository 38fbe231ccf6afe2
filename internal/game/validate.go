package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinPlayers    = 2
	MaxPlayers    = 4
	MinNameLength = 2
	MaxNameLength = 20
)

// ErrInvalidPlayers matches any *ValidationError with errors.Is.
var ErrInvalidPlayers = errors.New("invalid players")

// ErrNotInSetup is returned by Start once a roster is already seated.
var ErrNotInSetup = errors.New("game already started")

// FieldError is a problem with one submitted name.
type FieldError struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// ValidationError collects every problem found in a roster so a form can
// show them all at once.
type ValidationError struct {
	Count  string       `json:"count,omitempty"`
	Fields []FieldError `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.Count != "" {
		parts = append(parts, e.Count)
	}
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("player %d: %s", f.Index+1, f.Message))
	}
	return "invalid players: " + strings.Join(parts, "; ")
}

// Is lets callers test with errors.Is(err, ErrInvalidPlayers).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPlayers
}

// Message returns the error for a field index, or "".
func (e *ValidationError) Message(index int) string {
	for _, f := range e.Fields {
		if f.Index == index {
			return f.Message
		}
	}
	return ""
}

// ValidateNames checks a roster and returns the trimmed names. Names must be
// 2-20 characters after trimming and unique ignoring case; 2-4 names are
// required. The first occurrence of a repeated name is accepted and every
// later one is flagged.
func ValidateNames(names []string) ([]string, error) {
	verr := &ValidationError{}
	if len(names) < MinPlayers || len(names) > MaxPlayers {
		verr.Count = fmt.Sprintf("between %d and %d players are required, got %d", MinPlayers, MaxPlayers, len(names))
	}

	trimmed := make([]string, len(names))
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		trimmed[i] = name

		var msg string
		switch n := utf8.RuneCountInString(name); {
		case n == 0:
			msg = "Name is required"
		case n < MinNameLength:
			msg = fmt.Sprintf("Name must be at least %d characters", MinNameLength)
		case n > MaxNameLength:
			msg = fmt.Sprintf("Name must be at most %d characters", MaxNameLength)
		}

		key := strings.ToLower(name)
		if msg == "" && seen[key] {
			msg = "Name must be unique"
		}
		if name != "" {
			seen[key] = true
		}

		if msg != "" {
			verr.Fields = append(verr.Fields, FieldError{Index: i, Name: name, Message: msg})
		}
	}

	if verr.Count != "" || len(verr.Fields) > 0 {
		return nil, verr
	}
	return trimmed, nil
}
