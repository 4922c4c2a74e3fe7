package mathml_test

import (
	"strings"
	"testing"

	"github.com/SirZenith/retex/common/html_util"
	"github.com/SirZenith/retex/format/mathml"
	"golang.org/x/net/html"
)

func parseMath(t *testing.T, fragment string) *html.Node {
	t.Helper()

	root, err := html.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	if err != nil {
		t.Fatalf("failed to parse fixture: %s", err)
	}

	node := html_util.FindHTMLTag(root, "math")
	if node == nil {
		t.Fatalf("no math element in fixture %q", fragment)
	}

	return node
}

func TestConvert(t *testing.T) {
	cases := []struct {
		fragment string
		want     string
	}{
		{"<math><mfrac><mi>a</mi><mi>b</mi></mfrac></math>", `\frac{a}{b}`},
		{"<math><msup><mi>x</mi><mn>2</mn></msup></math>", "x^{2}"},
		{"<math><msub><mi>x</mi><mi>i</mi></msub></math>", "x_{i}"},
		{"<math><msqrt><mi>x</mi></msqrt></math>", `\sqrt{x}`},
		{"<math><mroot><mi>x</mi><mn>3</mn></mroot></math>", `\sqrt[3]{x}`},
		{"<math><mrow><mi>a</mi><mo>+</mo><mn>1</mn></mrow></math>", "a+1"},
		{"<math><mi>a</mi><mo>⁢</mo><mi>b</mi></math>", "ab"},
		{"<math><mo>∅</mo></math>", `\emptyset`},
		{"<math><mtext>if</mtext></math>", `\text{if}`},
		{"<math><mi>x</mi><mspace></mspace><mi>y</mi></math>", "x y"},
	}

	for _, c := range cases {
		node := parseMath(t, c.fragment)
		if got := mathml.Convert(node); got != c.want {
			t.Errorf("Convert(%s):\n\tgot  %q\n\twant %q", c.fragment, got, c.want)
		}
	}
}

func TestConvertNested(t *testing.T) {
	node := parseMath(t, "<math><mfrac><mrow><mi>a</mi><mo>+</mo><mn>1</mn></mrow><msqrt><mi>b</mi></msqrt></mfrac></math>")

	want := `\frac{a+1}{\sqrt{b}}`
	if got := mathml.Convert(node); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConvertUnknownKind(t *testing.T) {
	node := parseMath(t, "<math><munder><mi>x</mi><mo>-</mo></munder></math>")

	// unknown kinds degrade to raw text instead of failing the document
	want := "x-"
	if got := mathml.Convert(node); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConvertSkipsAnnotation(t *testing.T) {
	node := parseMath(t, `<math><semantics><mrow><mi>x</mi></mrow><annotation encoding="application/x-tex">x</annotation></semantics></math>`)

	if got := mathml.Convert(node); got != "x" {
		t.Errorf("annotation element should not leak into output, got %q", got)
	}
}

func TestKindOf(t *testing.T) {
	node := parseMath(t, "<math><mfrac><mi>a</mi><mi>b</mi></mfrac></math>")

	if got := mathml.KindOf(node); got != mathml.KindRow {
		t.Errorf("math element should map to row kind, got %v", got)
	}

	frac := node.FirstChild
	if got := mathml.KindOf(frac); got != mathml.KindFrac {
		t.Errorf("mfrac should map to fraction kind, got %v", got)
	}
}
