package reconstruct

import (
	"strconv"
	"strings"

	"github.com/SirZenith/retex/common/html_util"
	"github.com/SirZenith/retex/format/common"
	"github.com/SirZenith/retex/format/latex"
	"github.com/SirZenith/retex/format/mathml"
	"golang.org/x/net/html"
)

// ReconstructionRecord pairs one scanned math node with its computed
// replacement text before commit. SourcePos is the index in scan order and
// is diagnostic only, commit order derives from tree positions alone.
type ReconstructionRecord struct {
	NodeID          int
	ReplacementText string
	SourcePos       int
}

// reconstructNode produces wrapped LaTeX source for a single math node.
// The annotation is the high fidelity path, semantic conversion only runs
// when no annotation survived rendering.
func reconstructNode(node *MathNode) string {
	source := node.Annotation
	if source == "" && node.Semantic != nil {
		source = mathml.Convert(node.Semantic)
	}

	return latex.Resolve(strings.TrimSpace(source), node.Display, node.EnvHint)
}

// markNodes is the first phase of replacement. It computes every node's
// replacement payload and attaches it as node metadata without touching
// tree structure, and tags each node's structural parent with a stable
// marker id for diagnostics. Entity escaping happens here, commit never
// needs to re-derive escaping context.
func (p *Pipeline) markNodes(nodes []*MathNode, escapePayload bool) []ReconstructionRecord {
	records := make([]ReconstructionRecord, 0, len(nodes))

	for i, node := range nodes {
		if p.opts.Observe != nil {
			p.opts.Observe(node)
		}

		payload := reconstructNode(node)
		if escapePayload {
			payload = latex.EntityEscape(payload)
		}

		html_util.SetNodeAttr(node.elem, common.MetaAttrReplacement, payload)

		if parent := node.elem.Parent; parent != nil && parent.Type == html.ElementNode {
			if _, ok := html_util.GetNodeAttrVal(parent, common.MetaAttrParentMark, ""); !ok {
				html_util.SetNodeAttr(parent, common.MetaAttrParentMark, strconv.Itoa(node.ID))
			}
		}

		records = append(records, ReconstructionRecord{
			NodeID:          node.ID,
			ReplacementText: payload,
			SourcePos:       i,
		})
	}

	return records
}

// commitReplacements is the second phase. It re-queries all marked nodes
// and replaces their rendered subtrees with the stored payloads, walking
// the list last-to-first: replacing a later node can never perturb the
// tree position of an earlier one that has not been touched yet. Returns
// the number of committed replacements.
func commitReplacements(root *html.Node) int {
	marked := html_util.CollectMatchingNodes(root, &html_util.NodeMatchArgs{
		Type: map[html.NodeType]bool{html.ElementNode: true},
		Attr: map[string]bool{common.MetaAttrReplacement: true},
	})

	for i := len(marked) - 1; i >= 0; i-- {
		elem := marked[i]
		payload, _ := html_util.GetNodeAttrVal(elem, common.MetaAttrReplacement, "")
		html_util.ReplaceWithRaw(elem, payload)
	}

	return len(marked)
}
