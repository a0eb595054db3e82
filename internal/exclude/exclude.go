// Package exclude implements the title exclusion matcher used by the
// scanner. Built-in patterns are keyed by a two-letter language code; an
// explicit pattern always overrides the language default.
package exclude

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// ErrBadPattern wraps every pattern compilation failure so the CLI can map
// it to its dedicated exit code.
var ErrBadPattern = errors.New("invalid exclusion pattern")

// ErrUnknownLanguage is returned when no built-in pattern exists for the
// requested language and no explicit pattern was given.
var ErrUnknownLanguage = errors.New("unsupported language")

// Matcher decides whether a title marks an entry for exclusion.
type Matcher struct {
	re *regexp.Regexp
}

// Compile builds a Matcher from a regular expression.
func Compile(pattern string) (*Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
	}
	return &Matcher{re: re}, nil
}

// Matches reports whether title should be excluded.
func (m *Matcher) Matches(title string) bool {
	if m == nil || m.re == nil {
		return false
	}
	return m.re.MatchString(title)
}

// ForLanguage resolves the matcher for a language code and optional explicit
// pattern. The explicit pattern, when non-empty, takes precedence; otherwise
// the language's built-in literal is used. defaults maps language codes to
// literal title fragments (not regular expressions).
func ForLanguage(defaults map[string]string, language, pattern string) (*Matcher, error) {
	if pattern != "" {
		return Compile(pattern)
	}
	literal, ok := defaults[language]
	if !ok {
		return nil, fmt.Errorf("%w %q: choose one of %v or pass an explicit pattern",
			ErrUnknownLanguage, language, sortedKeys(defaults))
	}
	return Compile(regexp.QuoteMeta(literal))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
