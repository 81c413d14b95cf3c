// Package format provides MarkdownV2 text formatters for outgoing messages.
// Formatters compose left to right and are applied when a fragment is added
// to a message, not at send time.
package format

import "strings"

// Formatter transforms a message fragment.
type Formatter func(string) string

// Reserved characters of the MarkdownV2 dialect that must be escaped in
// plain text fragments.
const mdV2Specials = `\_*[]()~>#+-=|{}.!`

// Escape prefixes every reserved MarkdownV2 character with a backslash.
// Non-reserved characters pass through unchanged.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for _, r := range s {
		if strings.ContainsRune(mdV2Specials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Bold wraps the fragment in bold markers.
func Bold(s string) string {
	return "*" + s + "*"
}

// Italic wraps the fragment in italic markers.
func Italic(s string) string {
	return "_" + s + "_"
}

// Underline wraps the fragment in underline markers.
func Underline(s string) string {
	return "__" + s + "__"
}

// Strikethrough wraps the fragment in strikethrough markers.
func Strikethrough(s string) string {
	return "~" + s + "~"
}

// Spoiler wraps the fragment in spoiler markers.
func Spoiler(s string) string {
	return "||" + s + "||"
}

// Apply runs the formatters over s left to right.
func Apply(s string, formatters ...Formatter) string {
	for _, f := range formatters {
		if f == nil {
			continue
		}
		s = f(s)
	}
	return s
}
