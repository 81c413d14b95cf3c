package format

import (
	"strings"
	"testing"
)

func TestEscapeReservedSet(t *testing.T) {
	in := `\_*[]()~>#+-=|{}.!`
	got := Escape(in)
	for i, r := range in {
		_ = i
		want := `\` + string(r)
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q to contain %q", got, want)
		}
	}
	// each reserved char escaped exactly once
	if len(got) != 2*len(in) {
		t.Fatalf("expected every character escaped once, got %q", got)
	}
}

func TestEscapeLeavesPlainTextAlone(t *testing.T) {
	in := "крафтовий лимонад 0,5л"
	if got := Escape(in); got != in {
		t.Fatalf("plain text changed: %q -> %q", in, got)
	}
}

func TestEscapeMixed(t *testing.T) {
	got := Escape("0.5L!")
	want := `0\.5L\!`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestApplyComposesLeftToRight(t *testing.T) {
	got := Apply("a.b", Escape, Bold)
	want := `*a\.b*`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// Opposite order escapes the bold markers too.
	got = Apply("a.b", Bold, Escape)
	want = `\*a\.b\*`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStyleWrappers(t *testing.T) {
	cases := []struct {
		name string
		f    Formatter
		want string
	}{
		{"bold", Bold, "*x*"},
		{"italic", Italic, "_x_"},
		{"underline", Underline, "__x__"},
		{"strikethrough", Strikethrough, "~x~"},
		{"spoiler", Spoiler, "||x||"},
	}
	for _, tc := range cases {
		if got := tc.f("x"); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
