// Command greeter-client launches greeter-server as a subprocess and calls
// each of its capabilities once.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ggoodman/mcp-greeter-go/driver"
	"github.com/ggoodman/mcp-greeter-go/internal/config"
)

func main() {
	serverFlag := flag.String("server", "", "path to the greeter-server executable (default: next to this binary)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client: invalid configuration: %v\n", err)
		os.Exit(2)
	}
	log, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client: invalid configuration: %v\n", err)
		os.Exit(2)
	}
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	override := *serverFlag
	if override == "" {
		override = cfg.ServerPath
	}
	path, err := driver.ResolveServerPath(override)
	if err != nil {
		log.Error("Client: An error occurred", slog.String("err", err.Error()))
		return
	}
	fmt.Printf("Client: Attempting to launch server from: %s\n", path)

	d := driver.New(driver.CommandConnector(driver.Config{ServerPath: path}), driver.WithLogger(log))
	if err := d.Run(ctx); err != nil {
		// Run has already reported the failing step.
		log.Debug("Client: demo finished with an error", slog.String("err", err.Error()))
	}
}
