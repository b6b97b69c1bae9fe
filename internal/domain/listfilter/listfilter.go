// Package listfilter holds the matching rules shared by the client and
// session list filters: a case-insensitive substring search across a few
// text fields, ANDed with any number of set-membership categories.
package listfilter

import "strings"

// MatchesSearch reports whether q occurs in any of fields, ignoring case.
// A blank q matches everything.
func MatchesSearch(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// InSet reports whether value is one of set, ignoring case. An empty set
// places no constraint.
func InSet(value string, set []string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), value) {
			return true
		}
	}
	return false
}

// Clean splits entries on commas, trims them, drops blanks and duplicates,
// and lowercases them. Use it for fixed vocabularies only.
func Clean(values []string) []string {
	var parts []string
	for _, v := range values {
		parts = append(parts, strings.Split(v, ",")...)
	}
	return CleanRepeated(parts)
}

// CleanRepeated is Clean without the comma split, for free-text values
// such as program names.
func CleanRepeated(values []string) []string {
	var out []string
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		p := strings.ToLower(strings.TrimSpace(v))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
