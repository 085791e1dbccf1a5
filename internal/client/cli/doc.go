// Package cli provides the interactive jourin command-line client.
//
// It wires configuration, local storage, the journal services and a REPL
// that works anonymously or logged in. Logging in online moves history and
// streak to the server; when the server is unreachable the CLI falls back
// to the cached offline credentials and keeps everything on the device.
//
// Key features:
//   - write / field / title: fill in the reflection questions
//   - goal / template: personalise the generated prompt
//   - generate / history / regen / weekly: produce prompts
//   - streak: consecutive-day counter
//   - export [file]: download link for the full history, or the file itself (online only)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
