package latex

import (
	"regexp"
	"strings"

	"github.com/SirZenith/retex/format/common"
	"github.com/charmbracelet/log"
)

var envNamePattern = regexp.MustCompile(`^[A-Za-z]+\*?$`)

// CheckEnvHintIsName reports whether an environment hint read from node
// metadata looks like a plain environment name. Hints that carry brace,
// bracket or backslash characters are treated as malformed, an upstream
// stage serialized a structured value into the attribute by mistake.
func CheckEnvHintIsName(hint string) bool {
	return envNamePattern.MatchString(hint)
}

// Resolve wraps reconstructed math source into the delimiter or environment
// it belongs in.
//
// An explicit environment hint wins over everything else. Source that is
// already environment-wrapped is returned unchanged, so resolving twice
// never double-wraps. With no hint, multi-line source gets an unnumbered
// multi-line environment: alignment markers pick `align*`, bare line breaks
// pick `gather*`. The heuristic cannot tell numbered environments, or
// `alignat`/`multline`, from these defaults.
func Resolve(source string, display bool, envHint string) string {
	if envHint != "" {
		if CheckEnvHintIsName(envHint) {
			return wrapEnv(source, envHint)
		}
		log.Warnf("malformed environment hint %q, falling back to heuristic", envHint)
	}

	if strings.HasPrefix(source, `\begin{`) {
		return source
	}

	hasLineBreak := strings.Contains(source, `\\`)
	switch {
	case hasLineBreak && strings.Contains(source, "&"):
		return wrapEnv(source, common.EnvAlignStar)
	case hasLineBreak:
		return wrapEnv(source, common.EnvGatherStar)
	case display:
		return `\[` + source + `\]`
	default:
		return `\(` + source + `\)`
	}
}

func wrapEnv(source string, env string) string {
	return `\begin{` + env + "}\n" + source + "\n\\end{" + env + "}"
}
