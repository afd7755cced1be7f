package mcpservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/ggoodman/mcp-greeter-go/internal/logctx"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestLogging_AnnotatesRequests(t *testing.T) {
	t.Parallel()
	var buf lockedBuffer
	log := slog.New(logctx.Handler{Handler: slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})})

	tools := NewToolsContainer(TypedTool("echo", func(ctx context.Context, _ *mcp.CallToolRequest, a echoArgs) (*mcp.CallToolResult, error) {
		log.InfoContext(ctx, "inside handler")
		if a.Message == "fail" {
			return Errorf("nope"), nil
		}
		return TextResult(a.Message), nil
	}))
	cs := connect(t, NewServer(WithToolsCapability(tools), WithMiddleware(Logging(log))))

	for _, msg := range []string{"ok", "fail"} {
		if _, err := cs.CallTool(t.Context(), &mcp.CallToolParams{Name: "echo", Arguments: map[string]any{"message": msg}}); err != nil {
			t.Fatalf("CallTool: %v", err)
		}
	}

	type record struct {
		Msg string `json:"msg"`
		RPC struct {
			Method string `json:"method"`
		} `json:"rpc"`
		Tool struct {
			Name string `json:"name"`
		} `json:"tool"`
	}
	seen := map[string]int{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var r record
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		if r.RPC.Method != "tools/call" {
			continue
		}
		if r.Tool.Name != "echo" {
			t.Fatalf("record %q missing tool name: %s", r.Msg, line)
		}
		seen[r.Msg]++
	}
	if seen["inside handler"] != 2 || seen["mcp request handled"] != 1 || seen["mcp tool returned an error result"] != 1 {
		t.Fatalf("unexpected tools/call records: %v\n%s", seen, buf.String())
	}
}

func TestLogging_RecordsFailures(t *testing.T) {
	t.Parallel()
	var buf lockedBuffer
	log := slog.New(logctx.Handler{Handler: slog.NewTextHandler(&buf, nil)})
	cs := connect(t, NewServer(WithResourcesCapability(NewResourcesContainer()), WithMiddleware(Logging(log))))

	if _, err := cs.ReadResource(t.Context(), &mcp.ReadResourceParams{URI: "res://missing"}); err == nil {
		t.Fatalf("expected an error")
	}
	out := buf.String()
	if !strings.Contains(out, "mcp request failed") || !strings.Contains(out, "rpc.method=resources/read") {
		t.Fatalf("failure not logged:\n%s", out)
	}
	if strings.Contains(out, "rpc.session=") {
		t.Fatalf("in-memory sessions have no id; the attribute should be omitted:\n%s", out)
	}
}
