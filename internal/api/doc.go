// Package api is the wire contract between the jourin client and server.
//
// Message types are ordinary Go structs carried as protobuf
// google.protobuf.Struct payloads (see structCodec). The service descriptor
// is written by hand (RegisterJournalServer) and clients call through
// NewJournalClient, which selects the codec with grpc.CallContentSubtype.
//
// EntryRecord is the backend's representation of a journal entry: flat
// snake_case columns, a dynamic-field bag and a title bag. Clients fold it
// back into journal.Entry.
package api
