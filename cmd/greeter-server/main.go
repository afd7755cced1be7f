// Command greeter-server serves the greeter over stdin/stdout. Diagnostics go
// to stderr.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ggoodman/mcp-greeter-go/internal/serve"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := serve.Stdio(ctx, os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		slog.Error("Fatal error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
