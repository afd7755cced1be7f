package mcpservice

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StaticPrompt pairs a prompt descriptor with a handler that can materialize it.
type StaticPrompt struct {
	Descriptor *mcp.Prompt
	Handler    mcp.PromptHandler
}

// PromptOption configures TypedPrompt behavior.
type PromptOption func(*mcp.Prompt)

// WithPromptDescription sets the prompt description used in listings.
func WithPromptDescription(desc string) PromptOption {
	return func(p *mcp.Prompt) { p.Description = desc }
}

// TypedPrompt constructs a StaticPrompt from a typed args struct A. Prompt
// arguments are derived from the struct's top-level string fields; fields
// without omitempty are required. Defaults from `jsonschema:"default=..."`
// tags fill in omitted arguments before decoding.
//
// TypedPrompt panics if A has a non-string field.
func TypedPrompt[A any](name string, fn func(ctx context.Context, req *mcp.GetPromptRequest, args A) (*mcp.GetPromptResult, error), opts ...PromptOption) StaticPrompt {
	s := reflectSchema[A](false)
	desc := &mcp.Prompt{Name: name}
	defaults := map[string]any{}
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Type != "string" {
			panic(fmt.Sprintf("prompt %q: argument %q must be a string, got %q", name, pair.Key, pair.Value.Type))
		}
		desc.Arguments = append(desc.Arguments, &mcp.PromptArgument{
			Name:        pair.Key,
			Description: pair.Value.Description,
			Required:    slices.Contains(s.Required, pair.Key),
		})
		if pair.Value.Default != nil {
			defaults[pair.Key] = pair.Value.Default
		}
	}
	for _, opt := range opts {
		opt(desc)
	}

	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		raw := make(map[string]any, len(desc.Arguments))
		for k, v := range defaults {
			raw[k] = v
		}
		for k, v := range req.Params.Arguments {
			raw[k] = v
		}
		for _, a := range desc.Arguments {
			if _, ok := raw[a.Name]; a.Required && !ok {
				return nil, fmt.Errorf("prompt %q: missing required argument %q", name, a.Name)
			}
		}
		var args A
		if err := decodeArgs(raw, &args); err != nil {
			return nil, fmt.Errorf("prompt %q: %w", name, err)
		}
		return fn(ctx, req, args)
	}
	return StaticPrompt{Descriptor: desc, Handler: handler}
}

func decodeArgs(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		TagName:     "json",
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// PromptsContainer owns a mutable, threadsafe set of prompts.
type PromptsContainer struct {
	mu      sync.RWMutex
	prompts []StaticPrompt
	bound   *mcp.Server
}

// NewPromptsContainer constructs a new PromptsContainer with the given definitions.
func NewPromptsContainer(defs ...StaticPrompt) *PromptsContainer {
	pc := &PromptsContainer{}
	for _, d := range defs {
		pc.Add(d)
	}
	return pc
}

// Snapshot returns a copy of the current prompt descriptors.
func (pc *PromptsContainer) Snapshot() []*mcp.Prompt {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	out := make([]*mcp.Prompt, 0, len(pc.prompts))
	for _, p := range pc.prompts {
		out = append(out, p.Descriptor)
	}
	return out
}

// Add registers a new prompt if its name is not taken. Returns true if added.
func (pc *PromptsContainer) Add(def StaticPrompt) bool {
	if def.Descriptor == nil || def.Descriptor.Name == "" || def.Handler == nil {
		return false
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()
	for _, p := range pc.prompts {
		if p.Descriptor.Name == def.Descriptor.Name {
			return false
		}
	}
	pc.prompts = append(pc.prompts, def)
	if pc.bound != nil {
		pc.bound.AddPrompt(def.Descriptor, def.Handler)
	}
	return true
}

// Remove removes a prompt by name. Returns true if removed.
func (pc *PromptsContainer) Remove(name string) bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	i := slices.IndexFunc(pc.prompts, func(p StaticPrompt) bool { return p.Descriptor.Name == name })
	if i < 0 {
		return false
	}
	pc.prompts = slices.Delete(pc.prompts, i, i+1)
	if pc.bound != nil {
		pc.bound.RemovePrompts(name)
	}
	return true
}

func (pc *PromptsContainer) bind(srv *mcp.Server) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.bound = srv
	for _, p := range pc.prompts {
		srv.AddPrompt(p.Descriptor, p.Handler)
	}
}
