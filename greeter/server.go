package greeter

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ggoodman/mcp-greeter-go/mcpservice"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Capability identifiers.
const (
	ToolGreet         = "greet"
	ResourceAboutURI  = "info://greeter/about"
	ResourceAboutName = "server-info"
	PromptSuggest     = "suggest-greeting"
)

const instructions = "Call the greet tool to greet someone by name, formally or informally. " +
	"Read info://greeter/about for the server identity. " +
	"Get the suggest-greeting prompt for an example conversation."

// Option configures New.
type Option func(*options)

type options struct {
	log        *slog.Logger
	middleware []mcp.Middleware
}

// WithLogger sets the logger handlers write diagnostics to.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMiddleware adds receiving middleware to the server.
func WithMiddleware(mw ...mcp.Middleware) Option {
	return func(o *options) { o.middleware = append(o.middleware, mw...) }
}

// New builds the greeter server for info.
func New(info Info, opts ...Option) *mcpservice.Server {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log

	tools := mcpservice.NewToolsContainer(
		mcpservice.TypedTool(ToolGreet, func(ctx context.Context, _ *mcp.CallToolRequest, args GreetArgs) (*mcp.CallToolResult, error) {
			log.InfoContext(ctx, "executing greet tool",
				slog.String("name", args.Name),
				slog.String("politeness", args.Politeness.String()))
			text, err := Greet(args)
			if errors.Is(err, ErrEmptyName) {
				return mcpservice.Errorf("greet: %v", err), nil
			}
			if err != nil {
				return nil, err
			}
			return mcpservice.TextResult(text), nil
		}, mcpservice.WithToolDescription("Generates a personalized greeting.")),
	)

	resources := mcpservice.NewResourcesContainer(
		mcpservice.TextResource(ResourceAboutURI, About(info),
			mcpservice.WithName(ResourceAboutName),
			mcpservice.WithDescription("Identity of this greeter server."),
			mcpservice.WithMimeType("text/plain")),
	)
	resources.OnRead(func(ctx context.Context, uri string) {
		log.InfoContext(ctx, "reading resource", slog.String("uri", uri))
	})

	prompts := mcpservice.NewPromptsContainer(
		mcpservice.TypedPrompt(PromptSuggest, func(ctx context.Context, _ *mcp.GetPromptRequest, args SuggestArgs) (*mcp.GetPromptResult, error) {
			log.InfoContext(ctx, "generating suggest-greeting prompt")
			msgs := SuggestGreeting(args)
			out := make([]*mcp.PromptMessage, 0, len(msgs))
			for _, m := range msgs {
				out = append(out, &mcp.PromptMessage{Role: mcp.Role(m.Role), Content: &mcp.TextContent{Text: m.Text}})
			}
			return &mcp.GetPromptResult{Messages: out}, nil
		}, mcpservice.WithPromptDescription("Suggests how to use the greet tool.")),
	)

	return mcpservice.NewServer(
		mcpservice.WithServerInfo(mcpservice.StaticServerInfo(info.Name, info.Version)),
		mcpservice.WithInstructions(instructions),
		mcpservice.WithToolsCapability(tools),
		mcpservice.WithResourcesCapability(resources),
		mcpservice.WithPromptsCapability(prompts),
		mcpservice.WithMiddleware(o.middleware...),
		mcpservice.WithLogger(log),
	)
}
