package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Client identity sent at initialize.
const (
	ClientName    = "MyGreeterClientScript"
	ClientVersion = "1.0.0"
)

// ServerBinary is the file name of the server executable.
const ServerBinary = "greeter-server"

// ErrServerNotFound is returned when no server executable can be located.
var ErrServerNotFound = errors.New("greeter server executable not found")

// ResolveServerPath returns override when set. Otherwise it looks for
// ServerBinary next to the running executable and then on $PATH.
func ResolveServerPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	name := ServerBinary
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), name)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, nil
		}
	}
	if p, err := exec.LookPath(name); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("%w: %s", ErrServerNotFound, name)
}

// Config describes how to launch the server subprocess.
type Config struct {
	ServerPath string
	// Env is appended to the current environment.
	Env []string
	// Stderr receives the server's diagnostics. Defaults to os.Stderr.
	Stderr io.Writer
}

// Launch starts the server described by cfg and completes the MCP handshake
// with it. Closing the returned session terminates the subprocess.
func Launch(ctx context.Context, cfg Config) (Session, error) {
	if cfg.ServerPath == "" {
		return nil, fmt.Errorf("launch: %w", ErrServerNotFound)
	}
	cmd := exec.Command(cfg.ServerPath)
	cmd.Stderr = cfg.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if len(cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), cfg.Env...)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: ClientName, Version: ClientVersion}, nil)
	cs, err := client.Connect(ctx, &mcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return nil, fmt.Errorf("launch %s: %w", cfg.ServerPath, err)
	}
	return cs, nil
}

// CommandConnector returns a Connector that launches the server per cfg.
func CommandConnector(cfg Config) Connector {
	return func(ctx context.Context) (Session, error) {
		return Launch(ctx, cfg)
	}
}
