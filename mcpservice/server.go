package mcpservice

import (
	"context"
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerOption configures a Server.
type ServerOption func(*Server)

// Server collects the static capabilities of an MCP server and binds them to
// a go-sdk server on first use. A Server may serve any number of sessions;
// containers mutated after binding update the live server.
type Server struct {
	info         mcp.Implementation
	instructions string

	tools     *ToolsContainer
	resources *ResourcesContainer
	prompts   *PromptsContainer

	middleware []mcp.Middleware
	log        *slog.Logger

	once sync.Once
	sdk  *mcp.Server
}

// NewServer builds a Server using functional options.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StaticServerInfo is a small helper for the common name/version pair.
func StaticServerInfo(name, version string) mcp.Implementation {
	return mcp.Implementation{Name: name, Version: version}
}

// WithServerInfo sets the implementation info returned during initialize.
func WithServerInfo(info mcp.Implementation) ServerOption {
	return func(s *Server) { s.info = info }
}

// WithInstructions sets static human-readable instructions returned during initialize.
func WithInstructions(instr string) ServerOption {
	return func(s *Server) { s.instructions = instr }
}

// WithToolsCapability wires a tools container. The capability is advertised
// even when the container is empty.
func WithToolsCapability(tc *ToolsContainer) ServerOption {
	return func(s *Server) { s.tools = tc }
}

// WithResourcesCapability wires a resources container.
func WithResourcesCapability(rc *ResourcesContainer) ServerOption {
	return func(s *Server) { s.resources = rc }
}

// WithPromptsCapability wires a prompts container.
func WithPromptsCapability(pc *PromptsContainer) ServerOption {
	return func(s *Server) { s.prompts = pc }
}

// WithMiddleware appends receiving middleware. The first middleware is the
// outermost.
func WithMiddleware(mw ...mcp.Middleware) ServerOption {
	return func(s *Server) { s.middleware = append(s.middleware, mw...) }
}

// WithLogger overrides the logger used for server lifecycle diagnostics.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// Info returns the configured implementation info.
func (s *Server) Info() mcp.Implementation { return s.info }

// Instructions returns the configured instructions.
func (s *Server) Instructions() string { return s.instructions }

// SDK returns the go-sdk server backing s, building it on first call.
func (s *Server) SDK() *mcp.Server {
	s.once.Do(s.build)
	return s.sdk
}

func (s *Server) build() {
	info := s.info
	srv := mcp.NewServer(&info, &mcp.ServerOptions{
		Instructions: s.instructions,
		HasTools:     s.tools != nil,
		HasResources: s.resources != nil,
		HasPrompts:   s.prompts != nil,
	})
	if len(s.middleware) > 0 {
		srv.AddReceivingMiddleware(s.middleware...)
	}
	if s.tools != nil {
		s.tools.bind(srv)
	}
	if s.resources != nil {
		s.resources.bind(srv)
	}
	if s.prompts != nil {
		s.prompts.bind(srv)
	}
	s.log.Debug("mcp server built",
		slog.String("name", info.Name),
		slog.String("version", info.Version),
		slog.Bool("tools", s.tools != nil),
		slog.Bool("resources", s.resources != nil),
		slog.Bool("prompts", s.prompts != nil),
	)
	s.sdk = srv
}

// Connect starts a session over t without blocking. The caller owns the
// returned session.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.SDK().Connect(ctx, t, nil)
}

// Run serves a single session over t until the peer disconnects or ctx is done.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	return s.SDK().Run(ctx, t)
}
