// Package mcpservice provides building blocks for declaring MCP server
// capabilities in a composable way: static tools, resources and prompts held
// in small threadsafe containers, plus request middleware. Protocol handling
// (framing, lifecycle, routing, capability negotiation and input schema
// validation) is delegated to the go-sdk server the containers are bound to.
//
// Quick start:
//
//	type EchoArgs struct {
//	    Message string `json:"message" jsonschema:"minLength=1,description=Text to echo"`
//	}
//	tools := mcpservice.NewToolsContainer(
//	    mcpservice.TypedTool("echo", func(ctx context.Context, _ *mcp.CallToolRequest, a EchoArgs) (*mcp.CallToolResult, error) {
//	        return mcpservice.TextResult("you said: " + a.Message), nil
//	    }, mcpservice.WithToolDescription("Echo a message back to the caller")),
//	)
//	resources := mcpservice.NewResourcesContainer(
//	    mcpservice.TextResource("res://hello.txt", "hello", mcpservice.WithMimeType("text/plain")),
//	)
//
//	srv := mcpservice.NewServer(
//	    mcpservice.WithServerInfo(mcpservice.StaticServerInfo("example", "1.0.0")),
//	    mcpservice.WithToolsCapability(tools),
//	    mcpservice.WithResourcesCapability(resources),
//	    mcpservice.WithMiddleware(mcpservice.Logging(slog.Default())),
//	)
//	_ = srv.Run(ctx, &mcp.StdioTransport{})
//
// Tool input schemas and prompt arguments are reflected from the Go argument
// types with invopop/jsonschema, so `json` and `jsonschema` struct tags drive
// what clients see and what the runtime accepts.
package mcpservice
