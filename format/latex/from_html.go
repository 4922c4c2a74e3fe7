package latex

import (
	"slices"

	"github.com/SirZenith/retex/common/html_util"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type HTMLConverterFunc = func(node *html.Node, content []string) []string
type HTMLConverterMap = map[atom.Atom]HTMLConverterFunc

func noOptConverter(_ *html.Node, content []string) []string {
	return content
}

func dropConverter(_ *html.Node, _ []string) []string {
	return nil
}

func surroundConverter(content []string, left, right string) []string {
	if left != "" {
		content = slices.Insert(content, 0, left)
	}
	if right != "" {
		content = append(content, right)
	}
	return content
}

func makeReplaceConverter(text string) HTMLConverterFunc {
	return func(_ *html.Node, content []string) []string {
		return []string{text}
	}
}

func makeSurroundConverter(left string, right string) HTMLConverterFunc {
	return func(_ *html.Node, content []string) []string {
		return surroundConverter(content, left, right)
	}
}

func makeSectioningConverter(level string) HTMLConverterFunc {
	return func(_ *html.Node, content []string) []string {
		return surroundConverter(content, "\n\n\\"+level+"{", "}\n")
	}
}

func anchorConverter(node *html.Node, content []string) []string {
	href, ok := html_util.GetNodeAttrVal(node, "href", "")
	if !ok || href == "" {
		return content
	}

	if len(content) == 0 {
		return []string{"\\url{", StrEscape(href), "}"}
	}

	content = slices.Insert(content, 0, "\\href{", StrEscape(href), "}{")
	content = append(content, "}")
	return content
}

// GetStandardConverter returns the converter table used to turn a document
// body with already reconstructed math into a LaTeX document body.
func GetStandardConverter() HTMLConverterMap {
	return map[atom.Atom]HTMLConverterFunc{
		atom.A:          anchorConverter,
		atom.B:          makeSurroundConverter("\\textbf{", "}"),
		atom.Blockquote: makeSurroundConverter("\n\\begin{quote}\n", "\n\\end{quote}\n"),
		atom.Body:       noOptConverter,
		atom.Br:         makeReplaceConverter("\n\n"),
		atom.Code:       makeSurroundConverter("\\texttt{", "}"),
		atom.Div:        makeSurroundConverter("\n\n", ""),
		atom.Em:         makeSurroundConverter("\\textit{", "}"),
		atom.H1:         makeSectioningConverter("section"),
		atom.H2:         makeSectioningConverter("subsection"),
		atom.H3:         makeSectioningConverter("subsubsection"),
		atom.H4:         makeSectioningConverter("paragraph"),
		atom.H5:         makeSectioningConverter("subparagraph"),
		atom.H6:         makeSectioningConverter("subparagraph"),
		atom.Head:       dropConverter,
		atom.Hr:         makeReplaceConverter("\n\n\\bigskip\n\n"),
		atom.Html:       noOptConverter,
		atom.I:          makeSurroundConverter("\\textit{", "}"),
		atom.Li:         makeSurroundConverter("\n\\item ", ""),
		atom.Link:       dropConverter,
		atom.Meta:       dropConverter,
		atom.Ol:         makeSurroundConverter("\n\\begin{enumerate}\n", "\n\\end{enumerate}\n"),
		atom.P:          makeSurroundConverter("\n\n", ""),
		atom.Pre:        makeSurroundConverter("\n\\begin{verbatim}\n", "\n\\end{verbatim}\n"),
		atom.Script:     dropConverter,
		atom.Small:      makeSurroundConverter("{\\small ", "}"),
		atom.Span:       noOptConverter,
		atom.Strong:     makeSurroundConverter("\\textbf{", "}"),
		atom.Style:      dropConverter,
		atom.Sub:        makeSurroundConverter("$_{", "}$"),
		atom.Sup:        makeSurroundConverter("$^{", "}$"),
		atom.Table:      noOptConverter,
		atom.Tbody:      noOptConverter,
		atom.Td:         noOptConverter,
		atom.Title:      dropConverter,
		atom.Tr:         noOptConverter,
		atom.U:          makeSurroundConverter("\\underline{", "}"),
		atom.Ul:         makeSurroundConverter("\n\\begin{itemize}\n", "\n\\end{itemize}\n"),
	}
}

// ConvertTree walks a document tree and yields LaTeX fragments for its
// content. Raw nodes, which hold reconstructed math payloads, pass through
// verbatim while ordinary text gets escaped for prose context.
func ConvertTree(node *html.Node, converterMap HTMLConverterMap) []string {
	var content []string

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		childContent := ConvertTree(child, converterMap)
		if childContent != nil {
			content = append(content, childContent...)
		}
	}

	switch node.Type {
	case html.ErrorNode, html.DocumentNode, html.DoctypeNode, html.CommentNode:
		// pass
	case html.RawNode:
		content = append(content, node.Data)
	case html.TextNode:
		content = append(content, StrEscape(node.Data))
	case html.ElementNode:
		if html_util.CheckIsDisplayNone(node) {
			content = nil
		} else if converter := converterMap[node.DataAtom]; converter == nil {
			if node.DataAtom != 0 {
				log.Warnf("not supported tag: %q", node.Data)
			}
		} else {
			content = converter(node, content)
		}
	}

	return content
}
