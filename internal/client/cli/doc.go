// Package cli provides the interactive gallery command-line client.
//
// It wires configuration, the gRPC client and a REPL. Drawings are stored
// on the server as data URLs; the CLI builds them from image files on save
// and can decode them back into files on show. A background watcher pings
// the server and shows whether it is reachable in the prompt.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
