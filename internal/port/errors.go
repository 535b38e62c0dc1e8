package port

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrProtocolViolation is matched by every *ViolationError.
var ErrProtocolViolation = errors.New("protocol violation")

// maxSuggestDistance bounds the edit distance for name suggestions.
const maxSuggestDistance = 3

// ViolationError describes a malformed or unknown message. It is fatal to the
// offending message only.
type ViolationError struct {
	Direction  Direction
	Name       string
	Reason     string
	Suggestion string
	Payload    []byte
}

func (e *ViolationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "protocol violation: %s %q: %s", e.Direction, e.Name, e.Reason)
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	}
	return b.String()
}

func (e *ViolationError) Unwrap() error { return ErrProtocolViolation }

func violation(dir Direction, m Message, format string, args ...any) *ViolationError {
	return &ViolationError{
		Direction: dir,
		Name:      m.Name,
		Reason:    fmt.Sprintf(format, args...),
		Payload:   []byte(m.Payload),
	}
}

func unknownName(dir Direction, m Message) *ViolationError {
	known, other := CommandNames, EventNames
	if dir == Inbound {
		known, other = EventNames, CommandNames
	}
	for _, n := range other {
		if n == m.Name {
			return violation(dir, m, "%q is not a %s port", m.Name, dir)
		}
	}
	v := violation(dir, m, "unknown port")
	v.Suggestion = Suggest(m.Name, known)
	return v
}

// Suggest returns the candidate closest to name by edit distance, or "" when
// nothing is close enough.
func Suggest(name string, candidates []string) string {
	best, bestDist := "", maxSuggestDistance+1
	lower := strings.ToLower(name)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
