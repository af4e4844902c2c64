package survey

import (
	"strings"
	"unicode"

	"github.com/mbolis/interview-survey/model"
)

// NormalizeOptionKey reduces an option to a comparison key. Separators that
// tend to get lost or rewritten in spreadsheets (arrows, dashes, brackets,
// slashes, colons, underscores, whitespace) are dropped and the rest is
// lowercased.
func NormalizeOptionKey(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range strings.TrimSpace(value) {
		if isOptionSeparator(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

func isOptionSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	if r >= 0x2190 && r <= 0x21FF { // arrows block
		return true
	}
	switch r {
	case '-', '‐', '‑', '–', '—', '－',
		'(', ')', '（', '）',
		'/',
		':', '：',
		'_':
		return true
	}
	return false
}

// CanonicalOption returns the option raw stands for, or raw itself when no
// option matches.
func CanonicalOption(options []string, raw string) string {
	for _, o := range options {
		if raw == o {
			return o
		}
	}

	key := NormalizeOptionKey(raw)
	if key == "" {
		return raw
	}
	for _, o := range options {
		if NormalizeOptionKey(o) == key {
			return o
		}
	}
	return raw
}

// Canonicalize maps a raw selection back to one of the field's options.
// Fields without options return raw unchanged.
func Canonicalize(field model.Field, raw string) string {
	f, ok := field.(model.MultiSelectField)
	if !ok {
		return raw
	}
	return CanonicalOption(f.Options, raw)
}
