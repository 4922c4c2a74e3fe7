package latex

import (
	"strings"
	"sync"
)

var (
	latexEscaper     *strings.Replacer
	onceLatexEscaper sync.Once

	entityEscaper     *strings.Replacer
	onceEntityEscaper sync.Once
)

// StrEscape escapes LaTeX special characters in plain prose text. Math
// source recovered from annotations must never go through this, it is
// already valid LaTeX.
func StrEscape(text string) string {
	onceLatexEscaper.Do(func() {
		latexEscaper = strings.NewReplacer(
			"#", `\#`,
			"%", `\%`,
			"{", `\{`,
			"}", `\}`,
			"\\", `\textbackslash{}`,
			"$", `\$`,
			"~", `\~{}`,
			"^", `\^{}`,
			"&", `\&`,
			"_", `\_{}`,
		)
	})

	return latexEscaper.Replace(text)
}

// EntityEscape escapes characters that carry meaning in HTML text content,
// for payloads whose destination document is HTML-bearing.
func EntityEscape(text string) string {
	onceEntityEscaper.Do(func() {
		entityEscaper = strings.NewReplacer(
			"&", "&amp;",
			"<", "&lt;",
			">", "&gt;",
		)
	})

	return entityEscaper.Replace(text)
}
