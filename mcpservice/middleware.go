package mcpservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/ggoodman/mcp-greeter-go/internal/logctx"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Logging returns receiving middleware that annotates the request context for
// logctx.Handler and logs every request's outcome. Failures are logged at
// error level, everything else at debug.
func Logging(log *slog.Logger) mcp.Middleware {
	if log == nil {
		log = slog.Default()
	}
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			ctx = logctx.WithRPCMessage(ctx, &logctx.RPCMessage{
				Method:    method,
				SessionID: sessionID(req),
			})
			if tool := toolName(req); tool != "" {
				ctx = logctx.WithToolCallData(ctx, &logctx.ToolCallData{ToolName: tool})
			}

			start := time.Now()
			res, err := next(ctx, method, req)
			dur := time.Since(start)

			switch {
			case err != nil:
				log.ErrorContext(ctx, "mcp request failed", slog.Duration("duration", dur), slog.String("err", err.Error()))
			case isToolError(res):
				log.WarnContext(ctx, "mcp tool returned an error result", slog.Duration("duration", dur))
			default:
				log.DebugContext(ctx, "mcp request handled", slog.Duration("duration", dur))
			}
			return res, err
		}
	}
}

func sessionID(req mcp.Request) string {
	if req == nil {
		return ""
	}
	if ss, ok := req.GetSession().(*mcp.ServerSession); ok && ss != nil {
		return ss.ID()
	}
	return ""
}

func toolName(req mcp.Request) string {
	if ctr, ok := req.(*mcp.CallToolRequest); ok && ctr.Params != nil {
		return ctr.Params.Name
	}
	return ""
}

func isToolError(res mcp.Result) bool {
	ctr, ok := res.(*mcp.CallToolResult)
	return ok && ctr != nil && ctr.IsError
}
