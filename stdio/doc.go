// Package stdio serves an mcpservice.Server to a single client over a pair of
// byte streams, normally the process's stdin and stdout. It is intended for
// servers embedded as subprocesses by a local client.
//
// Characteristics
//
//	Connection model : 1 process <-> 1 client
//	Auth             : OS user (lightweight implicit principal)
//	Framing          : newline-delimited JSON-RPC
//	Lifetime         : until the peer closes its end or ctx is done
//
// Options allow supplying alternate io.Reader / io.Writer or a custom logger.
// Nothing but protocol messages is ever written to the output stream; route
// diagnostics to stderr.
//
// Example:
//
//	srv := mcpservice.NewServer(
//	    mcpservice.WithServerInfo(mcpservice.StaticServerInfo("my-stdio-server", "0.1.0")),
//	    // mcpservice.WithToolsCapability(...), etc.
//	)
//	h := stdio.NewHandler(srv)
//	if err := h.Serve(ctx); err != nil { log.Fatal(err) }
package stdio
