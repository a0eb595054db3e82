package config

// LanguagePatterns maps two-letter language codes to the literal title
// fragment marking disambiguation pages in that language's Wikipedia. The
// map is returned fresh on each call so callers can pass it around without
// sharing mutable state.
func LanguagePatterns() map[string]string {
	return map[string]string{
		"hu": "(egyértelműsítő lap)",
		"en": "(disambiguation)",
	}
}
