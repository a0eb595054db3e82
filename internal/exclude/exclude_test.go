package exclude

import (
	"errors"
	"testing"
)

func TestCompileAndMatch(t *testing.T) {
	m, err := Compile(`\(disambiguation\)`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !m.Matches("X (disambiguation)") {
		t.Fatalf("expected match")
	}
	if m.Matches("X") {
		t.Fatalf("unexpected match")
	}
}

func TestCompileBadPattern(t *testing.T) {
	_, err := Compile("(unclosed")
	if !errors.Is(err, ErrBadPattern) {
		t.Fatalf("got %v, want ErrBadPattern", err)
	}
}

func TestForLanguageDefaults(t *testing.T) {
	defaults := map[string]string{
		"en": "(disambiguation)",
		"hu": "(egyértelműsítő lap)",
	}
	m, err := ForLanguage(defaults, "en", "")
	if err != nil {
		t.Fatalf("en: %v", err)
	}
	// The literal contains regexp metacharacters; they must be quoted.
	if !m.Matches("Mercury (disambiguation)") {
		t.Fatalf("expected literal match")
	}
	if m.Matches("Mercury disambiguation") {
		t.Fatalf("parentheses must not act as a group")
	}

	m, err = ForLanguage(defaults, "hu", "")
	if err != nil {
		t.Fatalf("hu: %v", err)
	}
	if !m.Matches("Szeged (egyértelműsítő lap)") {
		t.Fatalf("expected hu match")
	}
}

func TestForLanguageExplicitOverride(t *testing.T) {
	defaults := map[string]string{"en": "(disambiguation)"}
	m, err := ForLanguage(defaults, "en", `^List of `)
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if !m.Matches("List of lakes") || m.Matches("A (disambiguation)") {
		t.Fatalf("override must replace the default")
	}
}

func TestForLanguageUnknown(t *testing.T) {
	_, err := ForLanguage(map[string]string{"en": "x"}, "tlh", "")
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("got %v, want ErrUnknownLanguage", err)
	}
}

func TestNilMatcherNeverMatches(t *testing.T) {
	var m *Matcher
	if m.Matches("anything") {
		t.Fatalf("nil matcher must not match")
	}
}
