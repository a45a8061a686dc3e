// Package names turns loosely formatted instructor name strings into
// structured identities and comparison keys. It is the front door for both
// matching engines: every cache key and every name comparison in the
// service goes through NormalizePart.
package names

import (
	"strings"

	"github.com/Thenathanb/CourseMate-UH/internal/types"
)

// suffixes are honorifics stripped before parsing, compared case-insensitively
// with periods removed.
var suffixes = map[string]struct{}{
	"jr":  {},
	"sr":  {},
	"iii": {},
	"iv":  {},
	"phd": {},
	"md":  {},
}

// Parse extracts first name, last name, and an optional middle initial from
// a raw instructor string. Supported shapes are "Last, First M.", "First M.
// Last", and "First Last". A single bare token is treated as a last name
// only, which leaves the result invalid.
func Parse(raw string) types.ParsedName {
	cleaned := stripSuffixes(raw)
	if cleaned == "" {
		return types.ParsedName{}
	}

	var p types.ParsedName

	if i := strings.Index(cleaned, ","); i >= 0 {
		p.LastName = strings.TrimSpace(cleaned[:i])
		rest := strings.Fields(cleaned[i+1:])
		if len(rest) > 0 {
			p.FirstName = rest[0]
		}
		if len(rest) > 1 {
			p.MiddleInitial = middleInitial(rest[1])
		}
		return p
	}

	parts := strings.Fields(cleaned)
	switch {
	case len(parts) >= 2:
		p.FirstName = parts[0]
		p.LastName = parts[len(parts)-1]
		if len(parts) >= 3 {
			p.MiddleInitial = middleInitial(parts[1])
		}
	case len(parts) == 1:
		p.LastName = parts[0]
	}
	return p
}

func stripSuffixes(raw string) string {
	fields := strings.Fields(raw)
	kept := fields[:0]
	for _, f := range fields {
		probe := strings.ToLower(strings.ReplaceAll(strings.Trim(f, ","), ".", ""))
		if _, ok := suffixes[probe]; ok {
			// Only the suffix word goes; a comma riding on it still
			// separates last name from first name ("Smith Jr., John").
			if strings.HasSuffix(f, ",") {
				kept = append(kept, ",")
			}
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func middleInitial(token string) string {
	mi := strings.TrimSuffix(token, ".")
	if mi != "" && len(mi) <= 2 {
		return mi
	}
	return ""
}

// NormalizePart lowercases s and drops every character outside [a-z0-9].
// It is idempotent and never fails; punctuation and spacing variance
// collapse, Unicode accents do not.
func NormalizePart(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MutualPrefix reports whether either normalized string is a prefix of the
// other. Both sides must be non-empty.
func MutualPrefix(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// Match decides whether a dataset row's instructor refers to the queried
// identity: normalized last names must be equal, and the normalized first
// names must be non-empty and prefix-compatible in either direction.
func Match(queryFirst, queryLast, rowFirst, rowLast string) bool {
	if NormalizePart(queryLast) != NormalizePart(rowLast) {
		return false
	}
	return MutualPrefix(NormalizePart(queryFirst), NormalizePart(rowFirst))
}
