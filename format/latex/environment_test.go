package latex_test

import (
	"testing"

	"github.com/SirZenith/retex/format/latex"
)

func TestResolveDelimiters(t *testing.T) {
	cases := []struct {
		source  string
		display bool
		hint    string
		want    string
	}{
		{"x+1", false, "", `\(x+1\)`},
		{"E=mc^2", true, "", `\[E=mc^2\]`},
		{`a&=b\\c&=d`, true, "", "\\begin{align*}\n" + `a&=b\\c&=d` + "\n\\end{align*}"},
		{`x=1\\y=2`, true, "", "\\begin{gather*}\n" + `x=1\\y=2` + "\n\\end{gather*}"},
		{"E=mc^2", true, "equation", "\\begin{equation}\nE=mc^2\n\\end{equation}"},
		{"a=b", true, "align*", "\\begin{align*}\na=b\n\\end{align*}"},
	}

	for _, c := range cases {
		got := latex.Resolve(c.source, c.display, c.hint)
		if got != c.want {
			t.Errorf("Resolve(%q, %v, %q):\n\tgot  %q\n\twant %q", c.source, c.display, c.hint, got, c.want)
		}
	}
}

func TestResolveIdempotence(t *testing.T) {
	wrapped := latex.Resolve(`a&=b\\c&=d`, true, "")
	again := latex.Resolve(wrapped, true, "")
	if again != wrapped {
		t.Errorf("resolving wrapped source changed it:\n\tgot  %q\n\twant %q", again, wrapped)
	}
}

func TestResolveMalformedHint(t *testing.T) {
	got := latex.Resolve("x+1", false, `{"name":"align"}`)
	if got != `\(x+1\)` {
		t.Errorf("malformed hint should fall back to heuristic, got %q", got)
	}
}

func TestCheckEnvHintIsName(t *testing.T) {
	valid := []string{"equation", "align", "align*", "gather*", "multline"}
	for _, hint := range valid {
		if !latex.CheckEnvHintIsName(hint) {
			t.Errorf("%q should be accepted as environment name", hint)
		}
	}

	invalid := []string{"", "[object Object]", `{"env":"align"}`, `\begin{align}`, "align *"}
	for _, hint := range invalid {
		if latex.CheckEnvHintIsName(hint) {
			t.Errorf("%q should be rejected as environment name", hint)
		}
	}
}
