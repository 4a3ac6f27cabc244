package models

import "strings"

// MatchMode selects how substring search compares text.
type MatchMode int

const (
	// MatchInsensitive folds case before comparing. Default.
	MatchInsensitive MatchMode = iota
	// MatchSensitive compares bytes as-is.
	MatchSensitive
)

// ParseMatchMode accepts "insensitive" and "sensitive"; anything else is
// MatchInsensitive.
func ParseMatchMode(s string) MatchMode {
	if strings.EqualFold(strings.TrimSpace(s), "sensitive") {
		return MatchSensitive
	}
	return MatchInsensitive
}

func (m MatchMode) String() string {
	if m == MatchSensitive {
		return "sensitive"
	}
	return "insensitive"
}

// Contains reports whether sub occurs in s under mode.
func (m MatchMode) Contains(s, sub string) bool {
	if m == MatchSensitive {
		return strings.Contains(s, sub)
	}
	return strings.Contains(Fold(s), Fold(sub))
}

// Fold is the case folding used by MatchInsensitive. Stores that cannot
// fold Unicode themselves call it from SQL.
func Fold(s string) string {
	return strings.ToLower(s)
}

// LikePattern wraps sub in % wildcards for a LIKE/ILIKE with ESCAPE '\',
// escaping the wildcard characters it contains.
func LikePattern(sub string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(sub) + "%"
}
