package ui

import "testing"

func TestEnsureNewline(t *testing.T) {
	cases := map[string]string{
		"":            "\n",
		"done":        "done\n",
		"done\n":      "done\n",
		"two\nlines":  "two\nlines\n",
		"kept\nend\n": "kept\nend\n",
	}
	for in, want := range cases {
		if got := EnsureNewline(in); got != want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatter_NoColorDecorations(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := Code.Sprint("keybak backup encrypt"); got != "`keybak backup encrypt`" {
		t.Errorf("Expected backticks without color, got: %q", got)
	}
	if got := Highlight.Sprint("tri-key"); got != "'tri-key'" {
		t.Errorf("Expected single quotes without color, got: %q", got)
	}
	if got := Muted.Sprint("optional"); got != "(optional)" {
		t.Errorf("Expected parentheses without color, got: %q", got)
	}
	if got := Success.Sprint("✓"); got != "✓" {
		t.Errorf("Expected bare text without color, got: %q", got)
	}
}

func TestFormatter_SprintfNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := Highlight.Sprintf("%s backup", "vault"); got != "'vault backup'" {
		t.Errorf("Expected formatted text with decorations, got: %q", got)
	}
}
