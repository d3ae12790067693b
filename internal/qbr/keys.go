package qbr

import (
	"fmt"
	"sort"
	"strings"
)

// Keys returns the selectable values for mode: players ordered by surname,
// teams in lexical order.
func (d *Dataset) Keys(mode Mode) ([]string, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %s", ErrInvalidArgument, mode)
	}
	if d == nil {
		return []string{}, nil
	}
	src := d.players
	if mode == ByTeam {
		src = d.teams
	}
	out := make([]string, len(src))
	copy(out, src)
	return out, nil
}

// HasKey reports whether key names at least one record under mode.
func (d *Dataset) HasKey(key string, mode Mode) bool {
	if d == nil || key == "" {
		return false
	}
	for _, r := range d.records {
		if mode.field(r) == key {
			return true
		}
	}
	return false
}

// distinct keeps first-appearance order.
func distinct(records []Record, field func(Record) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		v := field(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func sortedPlayers(records []Record) []string {
	names := distinct(records, func(r Record) string { return r.Name })
	sort.SliceStable(names, func(i, j int) bool {
		return surname(names[i]) < surname(names[j])
	})
	return names
}

func sortedTeams(records []Record) []string {
	teams := distinct(records, func(r Record) string { return r.Team })
	sort.Strings(teams)
	return teams
}

// surname is the second whitespace-separated token of a player name, or
// the whole name when it has only one token.
func surname(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return name
	}
	return fields[1]
}
