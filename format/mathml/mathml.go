// Package mathml converts presentation MathML subtrees back into LaTeX
// source. It is the fallback reconstruction path, used only when a rendered
// math node carries no original-source annotation.
package mathml

import (
	"strings"

	"github.com/SirZenith/retex/common/html_util"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
)

// Kind is the closed set of semantic node kinds the converter understands.
type Kind int

const (
	KindUnknown Kind = iota
	KindRow
	KindIdentifier
	KindNumber
	KindOperator
	KindSup
	KindSub
	KindFrac
	KindSqrt
	KindRoot
	KindSpace
	KindText
	KindIgnored
)

var kindByTag = map[string]Kind{
	"math":           KindRow,
	"mrow":           KindRow,
	"mstyle":         KindRow,
	"semantics":      KindRow,
	"mi":             KindIdentifier,
	"mn":             KindNumber,
	"mo":             KindOperator,
	"msup":           KindSup,
	"msub":           KindSub,
	"mfrac":          KindFrac,
	"msqrt":          KindSqrt,
	"mroot":          KindRoot,
	"mspace":         KindSpace,
	"mtext":          KindText,
	"annotation":     KindIgnored,
	"annotation-xml": KindIgnored,
}

// KindOf maps an element's tag name onto its semantic kind.
func KindOf(node *html.Node) Kind {
	if node.Type != html.ElementNode {
		return KindUnknown
	}
	return kindByTag[node.Data]
}

const (
	glyphInvisibleTimes = "⁢"
	glyphEmptySet       = "∅"
)

// Convert turns a semantic subtree into LaTeX source by recursive descent.
// It never fails: unrecognized kinds contribute their raw text and a
// diagnostic, so one exotic node cannot abort a whole document.
func Convert(node *html.Node) string {
	switch KindOf(node) {
	case KindRow:
		var sb strings.Builder
		for _, child := range elementChildren(node) {
			sb.WriteString(Convert(child))
		}
		return sb.String()

	case KindIdentifier, KindNumber:
		return textContent(node)

	case KindOperator:
		return convertOperator(textContent(node))

	case KindSup:
		base, script, ok := twoChildren(node)
		if !ok {
			return convertChildrenJoined(node)
		}
		return Convert(base) + "^{" + Convert(script) + "}"

	case KindSub:
		base, script, ok := twoChildren(node)
		if !ok {
			return convertChildrenJoined(node)
		}
		return Convert(base) + "_{" + Convert(script) + "}"

	case KindFrac:
		num, den, ok := twoChildren(node)
		if !ok {
			return convertChildrenJoined(node)
		}
		return `\frac{` + Convert(num) + "}{" + Convert(den) + "}"

	case KindSqrt:
		return `\sqrt{` + convertChildrenJoined(node) + "}"

	case KindRoot:
		content, index, ok := twoChildren(node)
		if !ok {
			return `\sqrt{` + convertChildrenJoined(node) + "}"
		}
		return `\sqrt[` + Convert(index) + "]{" + Convert(content) + "}"

	case KindSpace:
		return " "

	case KindText:
		return `\text{` + textContent(node) + "}"

	case KindIgnored:
		return ""

	default:
		log.Warnf("unhandled semantic node kind: %q", node.Data)
		return textContent(node)
	}
}

func convertOperator(op string) string {
	switch op {
	case glyphInvisibleTimes:
		return ""
	case glyphEmptySet:
		return `\emptyset`
	default:
		return op
	}
}

func convertChildrenJoined(node *html.Node) string {
	var sb strings.Builder
	for _, child := range elementChildren(node) {
		sb.WriteString(Convert(child))
	}
	return sb.String()
}

func twoChildren(node *html.Node) (*html.Node, *html.Node, bool) {
	children := elementChildren(node)
	if len(children) != 2 {
		return nil, nil, false
	}
	return children[0], children[1], true
}

// elementChildren gathers element children of a node, skipping the
// indentation whitespace serialized MathML tends to carry between tags.
func elementChildren(node *html.Node) []*html.Node {
	var children []*html.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			children = append(children, child)
		}
	}
	return children
}

func textContent(node *html.Node) string {
	if node.FirstChild == nil && node.Type == html.TextNode {
		return node.Data
	}
	return strings.TrimSpace(strings.Join(html_util.ExtractText(node), ""))
}
