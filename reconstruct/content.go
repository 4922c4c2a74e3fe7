package reconstruct

import (
	"regexp"
	"strings"

	"github.com/SirZenith/retex/common/html_util"
	"github.com/SirZenith/retex/format/common"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	lineEndingReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	htmlCommentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// ValidateSyntaxBalance counts gross delimiter balance in input text and
// logs a warning for every mismatch it sees. Static counting can false
// positive on content that merely talks about delimiters, so mismatches
// are never fatal.
func ValidateSyntaxBalance(content string) {
	dollarCount := strings.Count(content, "$") - strings.Count(content, `\$`)
	if dollarCount%2 != 0 {
		log.Warnf("input has unmatched $ delimiter")
	}

	if opening, closing := strings.Count(content, `\[`), strings.Count(content, `\]`); opening != closing {
		log.Warnf(`input has %d \[ against %d \]`, opening, closing)
	}

	if begin, end := strings.Count(content, `\begin{`), strings.Count(content, `\end{`); begin != end {
		log.Warnf(`input has %d \begin against %d \end`, begin, end)
	}
}

// CleanContent normalizes line endings and drops HTML comments from input
// text before parsing.
func CleanContent(content string) string {
	content = lineEndingReplacer.Replace(content)
	return htmlCommentPattern.ReplaceAllString(content, "")
}

// stripArtifacts removes typesetting engine leftovers from a transformed
// tree: script and style elements, hidden preview and rendered-output
// spans, and the internal parent markers written during the mark phase.
// Protected subtrees are left byte-identical.
func stripArtifacts(root *html.Node) {
	var doomed []*html.Node

	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if checkIsProtected(node) {
			return
		}

		if node.Type == html.ElementNode {
			switch {
			case node.DataAtom == atom.Script || node.DataAtom == atom.Style:
				doomed = append(doomed, node)
				return
			case html_util.CheckHasClass(node, common.ClassPreview):
				doomed = append(doomed, node)
				return
			case html_util.CheckHasClass(node, common.ClassMathJax) && !checkIsMathElem(node):
				// rendered output of an engine whose source lives in a
				// separate script element, that script is already replaced.
				// Spans carrying source themselves are scanner territory.
				doomed = append(doomed, node)
				return
			}

			html_util.RemoveNodeAttr(node, common.MetaAttrParentMark)
		}

		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	for _, node := range doomed {
		html_util.DetachNode(node)
	}
}
