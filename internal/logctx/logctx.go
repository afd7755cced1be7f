package logctx

import (
	"context"
	"log/slog"
)

// Handler decorates records with the request-scoped data stored in the
// context by the server middleware.
type Handler struct {
	slog.Handler
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if msg, ok := ctx.Value(rpcMsg{}).(*RPCMessage); ok {
		attrs := []any{slog.String("method", msg.Method)}
		// stdio sessions have no id
		if msg.SessionID != "" {
			attrs = append(attrs, slog.String("session", msg.SessionID))
		}
		r.AddAttrs(slog.Group("rpc", attrs...))
	}

	if td, ok := ctx.Value(toolCallDataKey{}).(*ToolCallData); ok {
		r.AddAttrs(slog.Group("tool",
			slog.String("name", td.ToolName),
		))
	}

	return h.Handler.Handle(ctx, r)
}

func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h Handler) WithGroup(name string) slog.Handler {
	return Handler{Handler: h.Handler.WithGroup(name)}
}

type rpcMsg struct{}

type RPCMessage struct {
	Method    string
	SessionID string
}

func WithRPCMessage(ctx context.Context, msg *RPCMessage) context.Context {
	return context.WithValue(ctx, rpcMsg{}, msg)
}

// RPCMessageFrom returns the message stored by WithRPCMessage, if any.
func RPCMessageFrom(ctx context.Context) (*RPCMessage, bool) {
	msg, ok := ctx.Value(rpcMsg{}).(*RPCMessage)
	return msg, ok
}

type toolCallDataKey struct{}

type ToolCallData struct {
	ToolName string
}

func WithToolCallData(ctx context.Context, data *ToolCallData) context.Context {
	return context.WithValue(ctx, toolCallDataKey{}, data)
}
