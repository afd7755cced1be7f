package mcpservice

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type reviewArgs struct {
	Language string `json:"language" jsonschema:"description=Programming language"`
	Focus    string `json:"focus,omitempty" jsonschema:"default=correctness"`
}

func reviewPrompt() StaticPrompt {
	return TypedPrompt("review", func(_ context.Context, _ *mcp.GetPromptRequest, a reviewArgs) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: "Review this " + a.Language + " code for " + a.Focus + "."},
		}}}, nil
	}, WithPromptDescription("Ask for a code review"))
}

func TestTypedPrompt_Arguments(t *testing.T) {
	t.Parallel()
	p := reviewPrompt()
	if p.Descriptor.Description != "Ask for a code review" {
		t.Fatalf("description = %q", p.Descriptor.Description)
	}
	type arg struct {
		Name, Description string
		Required          bool
	}
	var got []arg
	for _, a := range p.Descriptor.Arguments {
		got = append(got, arg{a.Name, a.Description, a.Required})
	}
	want := []arg{
		{"language", "Programming language", true},
		{"focus", "", false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("arguments mismatch (-want +got):\n%s", diff)
	}
}

func TestTypedPrompt_PanicsOnNonStringArgument(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for a non-string argument")
		}
	}()
	type bad struct {
		N int `json:"n"`
	}
	TypedPrompt("bad", func(context.Context, *mcp.GetPromptRequest, bad) (*mcp.GetPromptResult, error) {
		return nil, nil
	})
}

func TestPromptsContainer_Get(t *testing.T) {
	t.Parallel()
	pc := NewPromptsContainer(reviewPrompt())
	if pc.Add(reviewPrompt()) {
		t.Fatalf("duplicate add should be rejected")
	}
	cs := connect(t, NewServer(WithPromptsCapability(pc)))

	get := func(args map[string]string) (string, error) {
		res, err := cs.GetPrompt(t.Context(), &mcp.GetPromptParams{Name: "review", Arguments: args})
		if err != nil {
			return "", err
		}
		return res.Messages[0].Content.(*mcp.TextContent).Text, nil
	}

	text, err := get(map[string]string{"language": "Go"})
	if err != nil || text != "Review this Go code for correctness." {
		t.Fatalf("defaults not applied: %q, %v", text, err)
	}
	text, err = get(map[string]string{"language": "Go", "focus": "style"})
	if err != nil || text != "Review this Go code for style." {
		t.Fatalf("explicit argument ignored: %q, %v", text, err)
	}
	if _, err := get(nil); err == nil || !strings.Contains(err.Error(), "language") {
		t.Fatalf("expected a missing argument error, got %v", err)
	}
	if _, err := get(map[string]string{"language": "Go", "tone": "harsh"}); err == nil {
		t.Fatalf("expected unknown arguments to be rejected")
	}

	if !pc.Remove("review") {
		t.Fatalf("remove failed")
	}
	if _, err := get(map[string]string{"language": "Go"}); err == nil {
		t.Fatalf("expected an error for a removed prompt")
	}
}
