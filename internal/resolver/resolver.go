// Package resolver turns a free-text "wunschpartner" string into a
// concrete student identifier, per spec.md §4.2.
package resolver

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/s-hoffleit/projekttage/common/models/domain"
)

// partnerPattern extracts the name portion and an optional class label.
// The name portion is further split into firstName/middleName/lastName in
// Go rather than via additional regex groups: RE2 (the engine backing
// Go's regexp) cannot backtrack, so a variable-length "zero or more middle
// tokens" group followed by an optional last-name group of the same shape
// is ambiguous for it to assign correctly. Splitting on whitespace after
// the match gives the exact same partition the spec describes (first
// token / last token / everything between).
var partnerPattern = regexp.MustCompile(
	`(?i)^\s*([\p{L}-]+(?:\s+[\p{L}-]+)*)(?:[\s,|()/\\]|Klasse)*([0-9]{1,2}[\p{L}])?\s*$`,
)

type parsed struct {
	firstName  string
	middleName string
	lastName   string
	classLabel string
}

func parsePartnerText(raw string) (parsed, bool) {
	m := partnerPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return parsed{}, false
	}
	tokens := strings.Fields(m[1])
	if len(tokens) == 0 {
		return parsed{}, false
	}

	p := parsed{firstName: tokens[0], classLabel: m[2]}
	switch {
	case len(tokens) == 2:
		p.lastName = tokens[1]
	case len(tokens) > 2:
		p.lastName = tokens[len(tokens)-1]
		p.middleName = strings.Join(tokens[1:len(tokens)-1], " ")
	}
	return p, true
}

// fold NFKD-normalizes and lowercases s for case-insensitive, Unicode-form
// -insensitive comparison (spec.md §4.2: "case-insensitive on Unicode
// NFKD-normalized forms").
func fold(s string) string {
	return strings.ToLower(norm.NFKD.String(s))
}

func firstToken(name string) string {
	f := strings.Fields(name)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

func lastToken(name string) string {
	f := strings.Fields(name)
	if len(f) == 0 {
		return ""
	}
	return f[len(f)-1]
}

func filter(ids []domain.StudentID, keep func(domain.StudentID) bool) []domain.StudentID {
	out := make([]domain.StudentID, 0, len(ids))
	for _, id := range ids {
		if keep(id) {
			out = append(out, id)
		}
	}
	return out
}

// Resolve implements the matching cascade of spec.md §4.2 against the
// given roster for a single free-text partner string.
func Resolve(roster map[domain.StudentID]*domain.Student, raw string) (domain.StudentID, bool) {
	p, ok := parsePartnerText(raw)
	if !ok {
		return domain.StudentID{}, false
	}

	all := make([]domain.StudentID, 0, len(roster))
	for id := range roster {
		all = append(all, id)
	}

	// Step 1: class-label restriction, discarded if it would empty the set.
	classFiltered := all
	if p.classLabel != "" {
		foldedClass := fold(p.classLabel)
		restricted := filter(all, func(id domain.StudentID) bool {
			return fold(roster[id].Klasse.String()) == foldedClass
		})
		if len(restricted) > 0 {
			classFiltered = restricted
		}
	}

	// Step 2: first-token match.
	foldedFirst := fold(p.firstName)
	firstFiltered := filter(classFiltered, func(id domain.StudentID) bool {
		return fold(firstToken(roster[id].Name)) == foldedFirst
	})
	if len(firstFiltered) == 1 {
		return firstFiltered[0], true
	}
	if len(firstFiltered) == 0 {
		return domain.StudentID{}, false
	}

	// Step 3: last-token match if lastName was captured; several matches
	// fall through to step 4.
	if p.lastName != "" {
		foldedLast := fold(p.lastName)
		lastFiltered := filter(firstFiltered, func(id domain.StudentID) bool {
			return fold(lastToken(roster[id].Name)) == foldedLast
		})
		if len(lastFiltered) == 1 {
			return lastFiltered[0], true
		}
		if len(lastFiltered) == 0 {
			return domain.StudentID{}, false
		}
	}

	// Step 4: full-name match against the original class-filtered set.
	fullName := p.firstName
	if p.middleName != "" {
		fullName += " " + p.middleName
	}
	if p.lastName != "" {
		fullName += " " + p.lastName
	}
	foldedFull := fold(fullName)
	fullFiltered := filter(classFiltered, func(id domain.StudentID) bool {
		return fold(roster[id].Name) == foldedFull
	})
	if len(fullFiltered) == 1 {
		return fullFiltered[0], true
	}

	return domain.StudentID{}, false
}

// ResolveAll iterates every student with a non-empty partner_raw, resolves
// each against the full roster, and writes the result (or nil, on a miss)
// to PartnerResolved. It does not require mutual consent — reciprocity is
// enforced later by the formulator (spec.md §4.2, §9). Calling it twice on
// the same roster produces identical PartnerResolved fields (idempotence).
func ResolveAll(roster map[domain.StudentID]*domain.Student) {
	for _, s := range roster {
		if s.PartnerRaw == nil || strings.TrimSpace(*s.PartnerRaw) == "" {
			s.PartnerResolved = nil
			continue
		}
		if id, ok := Resolve(roster, *s.PartnerRaw); ok {
			resolved := id
			s.PartnerResolved = &resolved
		} else {
			s.PartnerResolved = nil
		}
	}
}
