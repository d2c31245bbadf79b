// Command ccond inspects, builds and verifies crypto-conditions.
//
// Usage:
//
//	ccond [flags] <command> [args]
//
// Commands:
//
//	decode-condition    Print the fields of a binary or URI condition
//	decode-fulfillment  Print a fulfillment and the condition it derives
//	uri                 Convert a condition URI to its binary encoding
//	verify              Check a fulfillment against a condition and message
//	fulfill-preimage    Build a PREIMAGE-SHA-256 fulfillment
//	legacy              Validate legacy cf:/cc: string pairs
//	vectors             Run the conformance fixtures in a directory
//
// Flags may also be set through CCOND_* environment variables, for example
// CCOND_ENCODING=base64.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(DefaultConfig(), stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}
