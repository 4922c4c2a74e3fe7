package reconstruct

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/SirZenith/retex/common/html_util"
	"github.com/SirZenith/retex/format/common"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MathNode is one rendered math expression discovered in the document
// tree. Nodes are created by the scanner, consumed exactly once by the
// replace step, and discarded after the run.
type MathNode struct {
	ID         int
	Display    bool
	Annotation string
	EnvHint    string
	Semantic   *html.Node

	elem *html.Node
}

const liveScanSelector = common.TagContainer +
	`, span.` + common.ClassMathJax +
	`, script[type^="` + common.ScriptTypeMath + `"]`

func checkIsMathElem(node *html.Node) bool {
	if node.Type != html.ElementNode {
		return false
	}

	switch {
	case node.Data == common.TagContainer:
		return true
	case node.DataAtom == atom.Script:
		typ, _ := html_util.GetNodeAttrVal(node, "type", "")
		return strings.HasPrefix(typ, common.ScriptTypeMath)
	case node.DataAtom == atom.Span && html_util.CheckHasClass(node, common.ClassMathJax):
		// legacy engine output, the span is a container only when it
		// carries source itself. Rendered spans whose source lives in a
		// sibling script element are stripped as artifacts instead.
		if _, ok := html_util.GetNodeAttrVal(node, common.AttrAnnotation, ""); ok {
			return true
		}
		return findEmbeddedAnnotation(node) != ""
	}

	return false
}

func checkHasMathAncestor(node *html.Node) bool {
	for cur := node.Parent; cur != nil; cur = cur.Parent {
		if checkIsMathElem(cur) {
			return true
		}
	}

	return false
}

func checkIsProtected(node *html.Node) bool {
	if node.Type != html.ElementNode {
		return false
	}

	if _, ok := html_util.GetNodeAttrVal(node, common.AttrProtect, ""); ok {
		return true
	}

	return html_util.CheckHasClass(node, common.ClassProtect)
}

func checkInProtectedRegion(node *html.Node) bool {
	for cur := node; cur != nil; cur = cur.Parent {
		if checkIsProtected(cur) {
			return true
		}
	}

	return false
}

// scanStatic collects all rendered math elements under `root` in document
// order, leaving protected subtrees untouched and unvisited.
func scanStatic(root *html.Node) []*MathNode {
	elems := html_util.CollectMatchingNodes(root, &html_util.NodeMatchArgs{
		Type: map[html.NodeType]bool{html.ElementNode: true},
		MatchFunc: func(node *html.Node, _ *html_util.NodeMatchArgs) bool {
			return checkIsMathElem(node)
		},
		SkipFunc: checkIsProtected,
	})

	nodes := make([]*MathNode, 0, len(elems))
	for i, elem := range elems {
		nodes = append(nodes, newMathNode(i, elem))
	}

	return nodes
}

// scanLive collects rendered math from a clone of an already parsed live
// tree. Serializing a large rendered document back to text and re-parsing
// it can silently reorder elements, scanning the tree itself keeps true
// document order by construction. The clone is exclusively owned by the
// running pipeline call.
func scanLive(doc *goquery.Document) (*html.Node, []*MathNode) {
	cloneRoot := html_util.CloneTree(doc.Get(0))
	cloneDoc := goquery.NewDocumentFromNode(cloneRoot)

	var nodes []*MathNode
	cloneDoc.Find(liveScanSelector).Each(func(_ int, sel *goquery.Selection) {
		elem := sel.Get(0)
		if !checkIsMathElem(elem) || checkInProtectedRegion(elem) {
			return
		}

		// a selection query descends into matched elements, the tree walk
		// used by static scanning does not. Math nested inside other math
		// is replaced as part of its outermost element in both modes.
		if checkHasMathAncestor(elem) {
			return
		}

		nodes = append(nodes, newMathNode(len(nodes), elem))
	})

	return cloneRoot, nodes
}

func newMathNode(id int, elem *html.Node) *MathNode {
	node := &MathNode{
		ID:   id,
		elem: elem,
	}

	if elem.DataAtom == atom.Script {
		typ, _ := html_util.GetNodeAttrVal(elem, "type", "")
		node.Display = strings.Contains(typ, common.ScriptModeDisplay)
		node.Annotation = strings.TrimSpace(strings.Join(html_util.ExtractText(elem), ""))
	} else {
		display, _ := html_util.GetNodeAttrVal(elem, common.AttrDisplay, "")
		node.Display = display == "true"

		node.Annotation, _ = html_util.GetNodeAttrVal(elem, common.AttrAnnotation, "")
		if node.Annotation == "" {
			node.Annotation = findEmbeddedAnnotation(elem)
		}

		node.Semantic = html_util.FindHTMLTag(elem, common.TagMath)
	}

	node.EnvHint, _ = html_util.GetNodeAttrVal(elem, common.AttrEnvHint, "")

	return node
}

// findEmbeddedAnnotation digs original TeX source out of a MathML
// `annotation` element carried inside the rendered subtree.
func findEmbeddedAnnotation(elem *html.Node) string {
	anno := html_util.FindHTMLTag(elem, common.TagAnnotation)
	if anno == nil {
		return ""
	}

	if encoding, ok := html_util.GetNodeAttrVal(anno, "encoding", ""); ok && encoding != common.AnnotationEncodingTeX {
		return ""
	}

	return strings.TrimSpace(strings.Join(html_util.ExtractText(anno), ""))
}
