package latex

import "regexp"

// A single-line `equation` directly wrapping a multi-line environment is
// invalid LaTeX, the outer environment cannot contain the inner one's line
// breaks. Naive reconstruction produces this when an equation hint wraps
// source that already carries its own multi-line environment.
//
// Inner environment names are captured twice so mismatched begin/end pairs
// can be rejected, RE2 has no backreferences.
var invalidNestingPattern = regexp.MustCompile(
	`(?s)\\begin\{equation\}\s*\\begin\{(align\*?|gather\*?)\}(.*?)\\end\{(align\*?|gather\*?)\}\s*\\end\{equation\}`,
)

// DetectInvalidNesting reports whether text contains a single-line
// environment wrapping a multi-line one. Only `equation` around
// `align`/`align*`/`gather`/`gather*` is recognized, other invalid
// combinations pass undetected.
func DetectInvalidNesting(text string) bool {
	for _, m := range invalidNestingPattern.FindAllStringSubmatch(text, -1) {
		if m[1] == m[3] {
			return true
		}
	}

	return false
}

// CleanInvalidNesting strips the redundant `equation` wrapper from every
// invalid nesting it finds, keeping the inner environment intact. Text
// without invalid nesting is returned unchanged. Rewriting runs to a fixed
// point, peeling one wrapper can expose another, so cleaning is idempotent.
func CleanInvalidNesting(text string) string {
	for {
		cleaned := invalidNestingPattern.ReplaceAllStringFunc(text, func(match string) string {
			m := invalidNestingPattern.FindStringSubmatch(match)
			if m[1] != m[3] {
				return match
			}

			return `\begin{` + m[1] + "}" + m[2] + `\end{` + m[1] + "}"
		})

		if cleaned == text {
			return text
		}
		text = cleaned
	}
}
