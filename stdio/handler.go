package stdio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ggoodman/mcp-greeter-go/mcpservice"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler serves one MCP connection over a reader/writer pair.
type Handler struct {
	srv          *mcpservice.Server
	r            io.Reader
	w            io.Writer
	l            *slog.Logger
	userProvider UserProvider
}

// Option customizes a Handler. Nil arguments leave the default in place.
type Option func(*Handler)

// WithIO sets both the input and output streams.
func WithIO(r io.Reader, w io.Writer) Option {
	return func(h *Handler) {
		WithReader(r)(h)
		WithWriter(w)(h)
	}
}

// WithReader overrides the input stream (default os.Stdin).
func WithReader(r io.Reader) Option {
	return func(h *Handler) {
		if r != nil {
			h.r = r
		}
	}
}

// WithWriter overrides the output stream (default os.Stdout).
func WithWriter(w io.Writer) Option {
	return func(h *Handler) {
		if w != nil {
			h.w = w
		}
	}
}

// WithLogger overrides the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.l = l
		}
	}
}

// WithUserProvider overrides how the peer's user ID is resolved for logs.
func WithUserProvider(up UserProvider) Option {
	return func(h *Handler) {
		if up != nil {
			h.userProvider = up
		}
	}
}

// NewHandler constructs a stdio Handler for srv.
func NewHandler(srv *mcpservice.Server, opts ...Option) *Handler {
	h := &Handler{
		srv:          srv,
		r:            os.Stdin,
		w:            os.Stdout,
		l:            slog.Default(),
		userProvider: OSUserProvider{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Serve runs the connection until the peer closes the input stream or ctx is
// done. Both are a normal shutdown and yield a nil error; a broken stream is
// logged and treated the same way. Only a failure to establish the session is
// returned.
func (h *Handler) Serve(ctx context.Context) error {
	userID, err := h.userProvider.CurrentUserID()
	if err != nil {
		h.l.WarnContext(ctx, "stdio.user.unresolved", slog.String("err", err.Error()))
		userID = "unknown"
	}
	log := h.l.With(slog.String("conn_id", uuid.NewString()), slog.String("user_id", userID))
	log.InfoContext(ctx, "stdio.serve.start")

	t := &mcp.IOTransport{Reader: readCloser(h.r), Writer: writeCloser(h.w)}
	ss, err := h.srv.Connect(ctx, t)
	if err != nil {
		return fmt.Errorf("stdio: connect: %w", err)
	}
	log.InfoContext(ctx, "connected via stdio and ready")

	done := make(chan error, 1)
	go func() { done <- ss.Wait() }()

	select {
	case <-ctx.Done():
		_ = ss.Close()
		log.Info("stdio.serve.stopped", slog.String("reason", context.Cause(ctx).Error()))
		return nil
	case err := <-done:
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
			log.Warn("stdio.serve.read_error", slog.String("err", err.Error()))
		}
		log.Info("stdio.serve.peer_closed")
		return nil
	}
}

func readCloser(r io.Reader) io.ReadCloser {
	if rc, ok := r.(io.ReadCloser); ok {
		return rc
	}
	return io.NopCloser(r)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func writeCloser(w io.Writer) io.WriteCloser {
	if wc, ok := w.(io.WriteCloser); ok {
		return wc
	}
	return nopWriteCloser{w}
}
