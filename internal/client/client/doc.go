// Package client talks to the jourin backend.
//
// Client is the transport-agnostic contract used by the client services;
// GRPCClient implements it over the JSON-coded gRPC service in package api.
// GRPCClient attaches the access token to every call and, when the server
// reports an expired token, refreshes the pair once and retries.
//
// Transport failures are mapped to the sentinel errors ErrUnavailable and
// ErrUnauthorized so callers can branch with errors.Is.
package client
