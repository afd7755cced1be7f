package mcpservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrInvalidLoggingLevel indicates the provided level is not one of the
// protocol-defined logging levels.
var ErrInvalidLoggingLevel = errors.New("invalid logging level")

// SlogLevel maps an MCP logging level to the closest slog level. Notice maps
// to info; critical and above map to error.
func SlogLevel(level mcp.LoggingLevel) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "notice":
		return slog.LevelInfo, nil
	case "warning":
		return slog.LevelWarn, nil
	case "error", "critical", "alert", "emergency":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLoggingLevel, level)
	}
}

// LevelSync returns receiving middleware that applies a client's
// logging/setLevel request to lv, so the process's own diagnostics follow the
// verbosity the client asked for. Invalid levels are rejected before the
// request reaches the server.
func LevelSync(lv *slog.LevelVar) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if lv == nil {
				return next(ctx, method, req)
			}
			r, ok := req.(*mcp.ServerRequest[*mcp.SetLoggingLevelParams])
			if !ok || r.Params == nil {
				return next(ctx, method, req)
			}
			lvl, err := SlogLevel(r.Params.Level)
			if err != nil {
				return nil, err
			}
			res, err := next(ctx, method, req)
			if err == nil {
				lv.Set(lvl)
			}
			return res, err
		}
	}
}
