package greeter

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGreet(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		args GreetArgs
		want string
	}{
		{"formal", GreetArgs{Name: "Programmatic User", Politeness: Formal}, "Esteemed greetings to you, Programmatic User. It is a pleasure."},
		{"informal", GreetArgs{Name: "Bob", Politeness: Informal}, "Hey Bob! What's up?"},
		{"default is informal", GreetArgs{Name: "Bob"}, "Hey Bob! What's up?"},
		{"name verbatim", GreetArgs{Name: `  "Zoë" `}, `Hey   "Zoë" ! What's up?`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Greet(tc.args)
			if err != nil {
				t.Fatalf("Greet: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Greet = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGreet_EmptyName(t *testing.T) {
	t.Parallel()
	if _, err := Greet(GreetArgs{Politeness: Formal}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestParsePoliteness(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]Politeness{"formal": Formal, "informal": Informal, "": Informal} {
		got, err := ParsePoliteness(in)
		if err != nil || got != want {
			t.Fatalf("ParsePoliteness(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, in := range []string{"Formal", "casual", "polite"} {
		if _, err := ParsePoliteness(in); !errors.Is(err, ErrInvalidPoliteness) {
			t.Fatalf("ParsePoliteness(%q): expected ErrInvalidPoliteness, got %v", in, err)
		}
	}

	var p Politeness
	if err := p.UnmarshalText([]byte("formal")); err != nil || p != Formal {
		t.Fatalf("UnmarshalText: %v, %v", p, err)
	}
	if b, _ := Formal.MarshalText(); string(b) != "formal" {
		t.Fatalf("MarshalText = %q", b)
	}
}

func TestAbout(t *testing.T) {
	t.Parallel()
	if got, want := About(DefaultInfo()), "GreeterServer MCP Server v1.0.0. Supports greeting people."; got != want {
		t.Fatalf("About = %q, want %q", got, want)
	}
	if got, want := About(Info{Name: "X", Version: "2.1"}), "X MCP Server v2.1. Supports greeting people."; got != want {
		t.Fatalf("About = %q, want %q", got, want)
	}
}

func TestSuggestGreeting(t *testing.T) {
	t.Parallel()
	const reply = "Okay, I can do that. Should I use a formal or informal tone? (If you don't specify, I'll use informal)."

	got := SuggestGreeting(SuggestArgs{})
	want := []Message{
		{Role: "user", Text: `Please greet "Alice" for me.`},
		{Role: "assistant", Text: reply},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("default suggestion mismatch (-want +got):\n%s", diff)
	}

	got = SuggestGreeting(SuggestArgs{NameSuggestion: "Example"})
	want[0].Text = `Please greet "Example" for me.`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("explicit suggestion mismatch (-want +got):\n%s", diff)
	}
}
