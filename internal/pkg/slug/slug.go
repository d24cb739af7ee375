package slug

import (
	"fmt"
	"strings"
)

// Fallback is used when a name contains nothing slug-worthy after
// transliteration (e.g. only punctuation or non-Latin symbols).
const Fallback = "proizvod"

// translit maps the Latin-extended characters of the site's source
// language to plain ASCII. Input is lowercased before lookup, so only
// lowercase forms are listed.
var translit = map[rune]string{
	'č': "c",
	'ć': "c",
	'š': "s",
	'ž': "z",
	'đ': "dj",
	'ä': "a",
	'ö': "o",
	'ü': "u",
	'ß': "ss",
	'é': "e", 'è': "e", 'ê': "e",
	'á': "a", 'à': "a", 'â': "a",
	'í': "i", 'ì': "i",
	'ó': "o", 'ò': "o",
	'ú': "u", 'ù': "u",
}

// Slugify turns free text into a lowercase URL-safe identifier:
// transliterate, then collapse every run of non-[a-z0-9] characters
// into a single hyphen. An empty result yields Fallback.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	for _, r := range s {
		if t, ok := translit[r]; ok {
			b.WriteString(t)
			continue
		}
		b.WriteRune(r)
	}

	var out strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range b.String() {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			out.WriteRune('-')
			lastHyphen = true
		}
	}

	result := strings.Trim(out.String(), "-")
	if result == "" {
		return Fallback
	}
	return result
}

// PickUnique returns base when it is not taken, otherwise the first
// "base-N" (N >= 2) that is free. Deterministic for a given taken set,
// so re-resolving a slug against a set that excludes its own row is a
// no-op on the update path.
func PickUnique(base string, taken []string) string {
	used := make(map[string]bool, len(taken))
	for _, t := range taken {
		used[t] = true
	}
	if !used[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !used[candidate] {
			return candidate
		}
	}
}
