// Package reconstruct turns documents containing rendered mathematics back
// into documents carrying plain LaTeX source. Rendering keeps the original
// TeX around as node metadata, the pipeline recovers it, re-wraps it in the
// right delimiter or environment, and swaps every rendered subtree for the
// recovered source while preserving strict document order.
package reconstruct

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/SirZenith/retex/format/latex"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
)

type Options struct {
	// Live is an already rendered and parsed document tree. When present
	// the pipeline scans a clone of it instead of re-parsing content text.
	// Serialize-then-reparse can silently reorder elements on large
	// documents, scanning the live tree keeps true document order.
	Live *goquery.Document

	// HTMLOutput marks the destination as HTML-bearing text. Replacement
	// payloads get their `&`, `<`, `>` entity escaped during the mark
	// phase.
	HTMLOutput bool

	// Observe, when non-nil, is called for every scanned math node right
	// before its replacement is computed. Useful for progress reporting
	// and diagnostics.
	Observe func(*MathNode)
}

// Pipeline owns one reconstruction run at a time. It holds no document
// reference between calls, every Process call borrows its input for the
// duration of the call only.
type Pipeline struct {
	opts Options
}

func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// Process reconstructs LaTeX source for every rendered math node in
// `content` and returns the transformed document text. On any
// unrecoverable failure the original input is returned unchanged, callers
// never observe a partially replaced document.
func (p *Pipeline) Process(content string) (result string) {
	result = content
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("reconstruction aborted: %v", r)
			result = content
		}
	}()

	root, err := p.run(content, p.opts.HTMLOutput)
	if err != nil {
		log.Warnf("reconstruction failed: %s", err)
		return content
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		log.Warnf("failed to serialize document: %s", err)
		return content
	}

	return latex.CleanInvalidNesting(buf.String())
}

// ProcessToLatex runs the same reconstruction and then converts the whole
// document body into LaTeX instead of serializing it back to HTML. Math
// payloads stay unescaped, the destination is plain TeX.
func (p *Pipeline) ProcessToLatex(content string) (result string) {
	result = content
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("reconstruction aborted: %v", r)
			result = content
		}
	}()

	root, err := p.run(content, false)
	if err != nil {
		log.Warnf("reconstruction failed: %s", err)
		return content
	}

	fragments := latex.ConvertTree(root, latex.GetStandardConverter())
	output := strings.Join(fragments, "")

	return latex.CleanInvalidNesting(output)
}

// run executes scan, mark and commit on a working tree and returns that
// tree. The returned tree is either a fresh parse of `content` or a clone
// of the live document, never the live document itself.
func (p *Pipeline) run(content string, escapePayload bool) (*html.Node, error) {
	ValidateSyntaxBalance(content)
	content = CleanContent(content)

	var root *html.Node
	var nodes []*MathNode
	if p.opts.Live != nil {
		root, nodes = scanLive(p.opts.Live)
	} else {
		parsed, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		root = parsed
		nodes = scanStatic(root)
	}

	records := p.markNodes(nodes, escapePayload)
	committed := commitReplacements(root)
	if committed != len(records) {
		return nil, fmt.Errorf("committed %d of %d marked replacements", committed, len(records))
	}

	stripArtifacts(root)

	return root, nil
}
