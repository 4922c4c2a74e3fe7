package latex_test

import (
	"testing"

	"github.com/SirZenith/retex/format/latex"
)

func TestDetectInvalidNesting(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{`\begin{equation}\begin{align}x&=y\end{align}\end{equation}`, true},
		{"\\begin{equation}\n\\begin{gather*}\nx=y\n\\end{gather*}\n\\end{equation}", true},
		{`\begin{equation}x=y\end{equation}`, false},
		{`\begin{align}x&=y\end{align}`, false},
		{`\begin{equation}\begin{align}x\end{gather}\end{equation}`, false},
		{"plain text", false},
	}

	for _, c := range cases {
		if got := latex.DetectInvalidNesting(c.text); got != c.want {
			t.Errorf("DetectInvalidNesting(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestCleanInvalidNesting(t *testing.T) {
	text := `\begin{equation}\begin{align}x&=y\end{align}\end{equation}`
	want := `\begin{align}x&=y\end{align}`

	got := latex.CleanInvalidNesting(text)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCleanInvalidNestingNoOp(t *testing.T) {
	text := `some prose with \begin{align}x&=y\end{align} inside`
	if got := latex.CleanInvalidNesting(text); got != text {
		t.Errorf("valid text should pass unchanged, got %q", got)
	}
}

func TestCleanInvalidNestingIdempotence(t *testing.T) {
	cases := []string{
		`\begin{equation}\begin{align}x&=y\end{align}\end{equation}`,
		`\begin{equation}\begin{equation}\begin{align}x&=y\end{align}\end{equation}\end{equation}`,
		`\begin{gather}x=y\end{gather}`,
		"",
	}

	for _, text := range cases {
		once := latex.CleanInvalidNesting(text)
		twice := latex.CleanInvalidNesting(once)
		if once != twice {
			t.Errorf("cleaning %q is not idempotent:\n\tonce  %q\n\ttwice %q", text, once, twice)
		}
	}
}

func TestCleanInvalidNestingMismatchedPair(t *testing.T) {
	text := `\begin{equation}\begin{align}x\end{gather}\end{equation}`
	if got := latex.CleanInvalidNesting(text); got != text {
		t.Errorf("mismatched pair should stay untouched, got %q", got)
	}
}
