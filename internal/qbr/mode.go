package qbr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is returned for an unrecognized filter mode.
var ErrInvalidArgument = errors.New("invalid argument")

// Mode selects which record field a key is matched against.
type Mode int

const (
	ByPlayer Mode = iota + 1
	ByTeam
)

func (m Mode) String() string {
	switch m {
	case ByPlayer:
		return "player"
	case ByTeam:
		return "team"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the enumerated modes.
func (m Mode) Valid() bool {
	return m == ByPlayer || m == ByTeam
}

// ParseMode maps a query or flag value to a Mode. "qb" is accepted as an
// alias for "player" since that is what the dashboard tab is called.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "player", "qb":
		return ByPlayer, nil
	case "team":
		return ByTeam, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidArgument, s)
	}
}

func (m Mode) field(r Record) string {
	if m == ByTeam {
		return r.Team
	}
	return r.Name
}
