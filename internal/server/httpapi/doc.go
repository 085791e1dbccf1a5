// Package httpapi serves the journal over JSON/HTTP for browser clients.
// Routes mirror the gRPC service and authenticate with a Bearer access
// token issued by the same UserService.
package httpapi
