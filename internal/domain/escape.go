package domain

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML must be applied to every user-supplied field before it is
// written into markup.
func EscapeHTML(s string) string { return htmlEscaper.Replace(s) }
