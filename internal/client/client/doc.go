// Package client talks to the gallery gRPC service on behalf of the CLI.
//
// GRPCClient keeps the session token returned by Login and attaches it to
// every later call as the access_token metadata entry. Status codes coming
// back from the server are mapped to the sentinel errors in
// internal/common, plus ErrUnavailable for transport failures, so callers
// can match them with errors.Is.
package client
