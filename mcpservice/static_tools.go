package mcpservice

import (
	"context"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StaticTool pairs an MCP tool descriptor with its handler. Handler is the
// low-level form and requires Descriptor.InputSchema to be set; tools built
// with TypedTool carry their own typed binding instead.
type StaticTool struct {
	Descriptor *mcp.Tool
	Handler    mcp.ToolHandler

	install func(*mcp.Server)
}

func (t StaticTool) installInto(srv *mcp.Server) {
	if t.install != nil {
		t.install(srv)
		return
	}
	srv.AddTool(t.Descriptor, t.Handler)
}

// ToolOption configures TypedTool behavior.
type ToolOption func(*toolConfig)

type toolConfig struct {
	description               string
	allowAdditionalProperties bool // default false (strict)
}

// WithToolDescription sets the tool description used in listings.
func WithToolDescription(desc string) ToolOption {
	return func(c *toolConfig) { c.description = desc }
}

// WithToolAllowAdditionalProperties controls whether unknown fields are allowed.
// When false (default), the generated schema sets additionalProperties=false
// and the runtime rejects calls carrying unknown fields.
func WithToolAllowAdditionalProperties(allow bool) ToolOption {
	return func(c *toolConfig) { c.allowAdditionalProperties = allow }
}

// TypedTool constructs a StaticTool from a typed args struct A. It:
//   - reflects a JSON Schema from A using invopop/jsonschema
//   - builds the tool descriptor with the provided name and options
//   - registers fn so the runtime validates, applies schema defaults and
//     decodes arguments into A before fn runs
//
// TypedTool panics if A does not reflect to an object schema.
func TypedTool[A any](name string, fn func(ctx context.Context, req *mcp.CallToolRequest, args A) (*mcp.CallToolResult, error), opts ...ToolOption) StaticTool {
	cfg := toolConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	input, err := reflectInputSchema[A](cfg.allowAdditionalProperties)
	if err != nil {
		panic(fmt.Sprintf("tool %q: %v", name, err))
	}
	desc := &mcp.Tool{
		Name:        name,
		Description: cfg.description,
		InputSchema: input,
	}
	handler := func(ctx context.Context, req *mcp.CallToolRequest, args A) (*mcp.CallToolResult, any, error) {
		res, err := fn(ctx, req, args)
		return res, nil, err
	}
	return StaticTool{
		Descriptor: desc,
		install:    func(srv *mcp.Server) { mcp.AddTool(srv, desc, handler) },
	}
}

// ToolsContainer owns a mutable, threadsafe set of tools. Once bound to a
// server, additions and removals are applied to the live server, which
// notifies connected clients of the list change.
type ToolsContainer struct {
	mu    sync.RWMutex
	tools []StaticTool
	bound *mcp.Server
}

// NewToolsContainer constructs a new ToolsContainer with the given tool
// definitions. On duplicate names the last definition wins.
func NewToolsContainer(defs ...StaticTool) *ToolsContainer {
	tc := &ToolsContainer{}
	for _, d := range defs {
		tc.replaceLocked(d)
	}
	return tc
}

func (tc *ToolsContainer) replaceLocked(def StaticTool) {
	for i, t := range tc.tools {
		if t.Descriptor.Name == def.Descriptor.Name {
			tc.tools[i] = def
			return
		}
	}
	tc.tools = append(tc.tools, def)
}

// Snapshot returns a copy of the current tool descriptors.
func (tc *ToolsContainer) Snapshot() []*mcp.Tool {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	out := make([]*mcp.Tool, 0, len(tc.tools))
	for _, t := range tc.tools {
		out = append(out, t.Descriptor)
	}
	return out
}

// Add registers a new tool if it doesn't duplicate an existing name.
// Returns true if added.
func (tc *ToolsContainer) Add(def StaticTool) bool {
	if def.Descriptor == nil || def.Descriptor.Name == "" {
		return false
	}
	tc.mu.Lock()
	defer tc.mu.Unlock()
	for _, t := range tc.tools {
		if t.Descriptor.Name == def.Descriptor.Name {
			return false
		}
	}
	tc.tools = append(tc.tools, def)
	if tc.bound != nil {
		def.installInto(tc.bound)
	}
	return true
}

// Remove removes a tool by name. Returns true if removed.
func (tc *ToolsContainer) Remove(name string) bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	n := 0
	removed := false
	for _, t := range tc.tools {
		if t.Descriptor.Name == name {
			removed = true
			continue
		}
		tc.tools[n] = t
		n++
	}
	tc.tools = tc.tools[:n]
	if removed && tc.bound != nil {
		tc.bound.RemoveTools(name)
	}
	return removed
}

func (tc *ToolsContainer) bind(srv *mcp.Server) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.bound = srv
	for _, t := range tc.tools {
		t.installInto(srv)
	}
}

// TextResult is a small helper to build a text CallToolResult.
func TextResult(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: s}}}
}

// Errorf returns an error CallToolResult with a single text block and IsError=true.
func Errorf(format string, a ...any) *mcp.CallToolResult {
	msg := fmt.Sprintf(format, a...)
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: msg}}, IsError: true}
}
