// Package driver is the demo client: it launches the greeter server as a
// subprocess, connects over stdio and exercises each capability once,
// printing what comes back.
package driver
