package grades

import (
	"context"
	"strings"

	"github.com/Thenathanb/CourseMate-UH/internal/names"
	"github.com/Thenathanb/CourseMate-UH/internal/types"
)

// subjectFields are the directory entry keys scanned for a department/subject
// signal, in no particular order. Directory records are free-form; any of
// these may hold a scalar, an array, or a nested object.
var subjectFields = []string{
	"subject", "subjects",
	"department", "departments",
	"dept", "deptCode", "deptAbbr",
	"abbreviation", "abbr",
	"code", "name",
}

// Matcher disambiguates instructor directory candidates for a queried name.
type Matcher struct {
	index *Index
}

func NewMatcher(index *Index) *Matcher {
	return &Matcher{index: index}
}

// Resolve picks the dataset profile link for the queried instructor, or ""
// when no candidate can be chosen unambiguously. Disambiguation runs in four
// tiers; the first tier producing exactly one match wins:
//
//	tier 1: first name starts with firstKey+middleKey (middle initial known)
//	tier 2: exact normalized first and last name
//	tier 3: mutual prefix on first names
//	tier 4: the last name has exactly one entry overall
//
// Tiers 1-3 narrow multi-candidate sets by course subject when available.
// Multiple equally plausible candidates are never guessed between.
func (m *Matcher) Resolve(ctx context.Context, firstName, lastName string, course *types.CourseInfo, middleInitial string) (string, error) {
	candidates, err := m.index.Candidates(ctx, lastName)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", nil
	}

	firstKey := names.NormalizePart(firstName)
	lastKey := names.NormalizePart(lastName)

	if middleKey := names.NormalizePart(middleInitial); middleKey != "" {
		tier := filterEntries(candidates, func(e types.InstructorEntry) bool {
			return strings.HasPrefix(names.NormalizePart(e.FirstName), firstKey+middleKey)
		})
		if href, ok := pickOne(tier, course); ok {
			return href, nil
		}
	}

	tier := filterEntries(candidates, func(e types.InstructorEntry) bool {
		return names.NormalizePart(e.FirstName) == firstKey && names.NormalizePart(e.LastName) == lastKey
	})
	if href, ok := pickOne(tier, course); ok {
		return href, nil
	}

	tier = filterEntries(candidates, func(e types.InstructorEntry) bool {
		return names.MutualPrefix(names.NormalizePart(e.FirstName), firstKey)
	})
	if href, ok := pickOne(tier, course); ok {
		return href, nil
	}

	if len(candidates) == 1 {
		return candidates[0].Href, nil
	}
	return "", nil
}

func filterEntries(entries []types.InstructorEntry, keep func(types.InstructorEntry) bool) []types.InstructorEntry {
	var out []types.InstructorEntry
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// pickOne resolves a tier: a single candidate wins outright; several
// candidates are narrowed by course subject and win only if exactly one
// survives.
func pickOne(entries []types.InstructorEntry, course *types.CourseInfo) (string, bool) {
	if len(entries) == 1 {
		return entries[0].Href, true
	}
	if len(entries) > 1 && course != nil && course.Subject != "" {
		narrowed := filterEntries(entries, func(e types.InstructorEntry) bool {
			return entryMatchesSubject(e, course.Subject)
		})
		if len(narrowed) == 1 {
			return narrowed[0].Href, true
		}
	}
	return "", false
}

// entryMatchesSubject reports whether any subject-like field on the entry,
// or its profile link, carries the course subject code.
func entryMatchesSubject(e types.InstructorEntry, subject string) bool {
	subject = strings.ToUpper(subject)
	for _, field := range subjectFields {
		if v, ok := e.Fields[field]; ok && valueMatchesSubject(v, subject) {
			return true
		}
	}
	return e.Href != "" && textMatchesSubject(e.Href, subject)
}

func valueMatchesSubject(v any, subject string) bool {
	switch val := v.(type) {
	case string:
		return textMatchesSubject(val, subject)
	case []any:
		for _, item := range val {
			if valueMatchesSubject(item, subject) {
				return true
			}
		}
	case map[string]any:
		for _, item := range val {
			if valueMatchesSubject(item, subject) {
				return true
			}
		}
	}
	return false
}

// textMatchesSubject matches the upper-cased text against a subject code:
// equal, prefixed by it, or containing it bounded by a space, dash, slash,
// or comma on each side.
func textMatchesSubject(text, subject string) bool {
	t := strings.ToUpper(text)
	if t == subject || strings.HasPrefix(t, subject) {
		return true
	}

	for from := 0; ; {
		i := strings.Index(t[from:], subject)
		if i < 0 {
			return false
		}
		i += from
		end := i + len(subject)
		if (i == 0 || isSubjectBoundary(t[i-1])) && (end == len(t) || isSubjectBoundary(t[end])) {
			return true
		}
		from = i + 1
	}
}

func isSubjectBoundary(b byte) bool {
	switch b {
	case ' ', '-', '/', ',':
		return true
	}
	return false
}
