package owoify

import (
	"errors"
	"fmt"
	"strings"
)

// Level selects how many rule tiers are applied.
type Level int

const (
	// Basic applies the specific-word rules and tier 1.
	Basic Level = iota
	// Medium adds tier 2.
	Medium
	// Heavy adds tier 3.
	Heavy
)

// ErrUnknownLevel is returned by ParseLevel for names it does not recognise.
var ErrUnknownLevel = errors.New("unknown owoify level")

// Levels returns every level from weakest to strongest
func Levels() []Level {
	return []Level{Basic, Medium, Heavy}
}

func (l Level) String() string {
	switch l {
	case Basic:
		return "basic"
	case Medium:
		return "medium"
	case Heavy:
		return "heavy"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel accepts basic, medium and heavy as well as the owo, uwu and uvu
// aliases. Matching is case-insensitive.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "basic", "owo":
		return Basic, nil
	case "medium", "uwu":
		return Medium, nil
	case "heavy", "uvu":
		return Heavy, nil
	default:
		return Basic, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
}

// MarshalText implements encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	if l < Basic || l > Heavy {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
