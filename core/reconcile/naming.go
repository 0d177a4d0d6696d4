package reconcile

import (
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// knownPrefixes are id prefixes carrying no meaning, longest first.
var knownPrefixes = []string{"ACHIEVEMENT_", "ACHIEV_", "ACH_"}

// StripPrefix removes one known id prefix, ignoring case.
func StripPrefix(id string) string {
	upper := strings.ToUpper(id)
	for _, p := range knownPrefixes {
		if strings.HasPrefix(upper, p) {
			return id[len(p):]
		}
	}
	return id
}

// Beautify turns a raw achievement id into a readable label:
// "ACH_SOME_Achievement" becomes "Some Achievement". Ids that reduce to
// nothing are returned unchanged.
func Beautify(id string) string {
	name := StripPrefix(id)

	var b strings.Builder
	var prev rune
	for i, r := range name {
		if i > 0 && unicode.IsLower(prev) && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		if r == '_' {
			r = ' '
		}
		b.WriteRune(r)
		prev = r
	}

	tokens := strings.Fields(b.String())
	if len(tokens) == 0 {
		return id
	}
	caser := cases.Title(language.Und)
	for i, t := range tokens {
		tokens[i] = caser.String(t)
	}
	return strings.Join(tokens, " ")
}

// Matcher finds the display name belonging to a raw id among candidate names.
type Matcher interface {
	Match(id string, candidates []string) (string, bool)
}

// normalizeForMatch strips known prefixes, lowercases and drops whitespace and underscores.
func normalizeForMatch(s string) string {
	s = strings.ToLower(StripPrefix(s))
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// SubstringMatcher accepts the first candidate whose normalized form contains,
// or is contained in, the normalized id. There is no scoring, so generic names
// can produce false positives.
type SubstringMatcher struct{}

// Match implements Matcher.
func (SubstringMatcher) Match(id string, candidates []string) (string, bool) {
	needle := normalizeForMatch(id)
	if needle == "" {
		return "", false
	}
	for _, c := range candidates {
		norm := normalizeForMatch(c)
		if norm == "" {
			continue
		}
		if strings.Contains(norm, needle) || strings.Contains(needle, norm) {
			return c, true
		}
	}
	return "", false
}

// FuzzyMatcher picks the best scored candidate in which the normalized id
// appears as an in-order character subsequence.
type FuzzyMatcher struct{}

// Match implements Matcher.
func (FuzzyMatcher) Match(id string, candidates []string) (string, bool) {
	needle := normalizeForMatch(id)
	if needle == "" || len(candidates) == 0 {
		return "", false
	}
	data := make([]string, len(candidates))
	for i, c := range candidates {
		data[i] = normalizeForMatch(c)
	}
	matches := fuzzy.Find(needle, data)
	if len(matches) == 0 {
		return "", false
	}
	return candidates[matches[0].Index], true
}
