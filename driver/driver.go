package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Session is the subset of a client session the driver uses.
// *mcp.ClientSession implements it.
type Session interface {
	CallTool(ctx context.Context, params *mcp.CallToolParams) (*mcp.CallToolResult, error)
	ReadResource(ctx context.Context, params *mcp.ReadResourceParams) (*mcp.ReadResourceResult, error)
	GetPrompt(ctx context.Context, params *mcp.GetPromptParams) (*mcp.GetPromptResult, error)
	Close() error
}

// Connector opens a Session.
type Connector func(ctx context.Context) (Session, error)

// Demo holds the fixed inputs of a run.
type Demo struct {
	Name           string
	Politeness     string
	ResourceURI    string
	NameSuggestion string
}

// DefaultDemo returns the inputs used by the greeter-client command.
func DefaultDemo() Demo {
	return Demo{
		Name:           "Programmatic User",
		Politeness:     "formal",
		ResourceURI:    "info://greeter/about",
		NameSuggestion: "Example",
	}
}

// Option configures a Driver.
type Option func(*Driver)

// WithOutput sets where results are printed. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(d *Driver) {
		if w != nil {
			d.out = w
		}
	}
}

// WithLogger sets the logger for failures and diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// WithDemo overrides the demo inputs.
func WithDemo(demo Demo) Option {
	return func(d *Driver) { d.demo = demo }
}

// Driver runs the demo sequence against one server.
type Driver struct {
	connect Connector
	out     io.Writer
	log     *slog.Logger
	demo    Demo
}

// New constructs a Driver that opens its session with connect.
func New(connect Connector, opts ...Option) *Driver {
	d := &Driver{
		connect: connect,
		out:     os.Stdout,
		log:     slog.Default(),
		demo:    DefaultDemo(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run connects and performs the greet, read and prompt steps in order. The
// first failing step ends the run and its error is returned; the session is
// closed once whether or not the steps succeed.
func (d *Driver) Run(ctx context.Context) error {
	log := d.log.With(slog.String("run_id", uuid.NewString()))

	d.printf("Client: Connecting to server...\n")
	sess, err := d.connect(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Client: An error occurred", slog.String("step", "connect"), slog.String("err", err.Error()))
		return fmt.Errorf("connect: %w", err)
	}
	d.printf("Client: Successfully connected!\n")

	defer func() {
		d.printf("\nClient: Closing connection...\n")
		if cerr := sess.Close(); cerr != nil {
			log.WarnContext(ctx, "Client: close failed", slog.String("err", cerr.Error()))
		}
		d.printf("Client: Connection closed.\n")
	}()

	steps := []struct {
		name string
		fn   func(context.Context, Session) error
	}{
		{"greet", d.greet},
		{"read-resource", d.readResource},
		{"get-prompt", d.getPrompt},
	}
	for _, s := range steps {
		if err := s.fn(ctx, sess); err != nil {
			log.ErrorContext(ctx, "Client: An error occurred", slog.String("step", s.name), slog.String("err", err.Error()))
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func (d *Driver) greet(ctx context.Context, sess Session) error {
	d.printf("\nClient: Calling 'greet' tool...\n")
	res, err := sess.CallTool(ctx, &mcp.CallToolParams{
		Name:      "greet",
		Arguments: map[string]any{"name": d.demo.Name, "politeness": d.demo.Politeness},
	})
	if err != nil {
		return err
	}
	text := firstText(res.Content)
	if res.IsError {
		return fmt.Errorf("tool reported an error: %s", text)
	}
	d.printf("Client: 'greet' tool result: %s\n", text)
	return nil
}

func (d *Driver) readResource(ctx context.Context, sess Session) error {
	d.printf("\nClient: Reading 'server-info' resource...\n")
	res, err := sess.ReadResource(ctx, &mcp.ReadResourceParams{URI: d.demo.ResourceURI})
	if err != nil {
		return err
	}
	var text string
	if len(res.Contents) > 0 && res.Contents[0] != nil {
		text = res.Contents[0].Text
	}
	d.printf("Client: 'server-info' resource content: %s\n", text)
	return nil
}

func (d *Driver) getPrompt(ctx context.Context, sess Session) error {
	d.printf("\nClient: Getting 'suggest-greeting' prompt...\n")
	res, err := sess.GetPrompt(ctx, &mcp.GetPromptParams{
		Name:      "suggest-greeting",
		Arguments: map[string]string{"name_suggestion": d.demo.NameSuggestion},
	})
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(res.Messages, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prompt messages: %w", err)
	}
	d.printf("Client: 'suggest-greeting' prompt messages: %s\n", b)
	return nil
}

func (d *Driver) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(d.out, format, a...)
}

func firstText(content []mcp.Content) string {
	if len(content) == 0 {
		return ""
	}
	if tc, ok := content[0].(*mcp.TextContent); ok {
		return tc.Text
	}
	return ""
}
