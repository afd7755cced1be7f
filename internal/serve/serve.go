// Package serve runs the greeter server process: configuration, logging,
// middleware and the stdio session.
package serve

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ggoodman/mcp-greeter-go/greeter"
	"github.com/ggoodman/mcp-greeter-go/internal/config"
	"github.com/ggoodman/mcp-greeter-go/mcpservice"
	"github.com/ggoodman/mcp-greeter-go/stdio"
)

// Stdio serves the greeter over stdin/stdout until stdin is closed or ctx is
// done, logging to stderr. Configuration comes from the environment; an
// invalid configuration is returned before anything is served.
func Stdio(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, level, err := cfg.NewLeveledLogger(stderr)
	if err != nil {
		return err
	}

	info := greeter.DefaultInfo()
	log.Info(fmt.Sprintf("Starting %s MCP Server v%s...", info.Name, info.Version))

	srv := greeter.New(info,
		greeter.WithLogger(log),
		greeter.WithMiddleware(
			mcpservice.Logging(log),
			mcpservice.LevelSync(level),
			mcpservice.Telemetry(mcpservice.WithServiceName(info.Name)),
		),
	)
	err = stdio.NewHandler(srv, stdio.WithIO(stdin, stdout), stdio.WithLogger(log)).Serve(ctx)
	if err != nil {
		return err
	}
	log.Info("server stopped", slog.String("name", info.Name))
	return nil
}
