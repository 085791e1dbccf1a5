package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Forget(ctx context.Context) error
	Write(ctx context.Context, args []string) error
	Fields(ctx context.Context, args []string) error
	Title(ctx context.Context, args []string) error
	Goal(ctx context.Context, args []string) error
	Template(ctx context.Context, args []string) error
	Generate(ctx context.Context) error
	History(ctx context.Context) error
	Regenerate(ctx context.Context, args []string) error
	Weekly(ctx context.Context) error
	Streak(ctx context.Context) error
	Export(ctx context.Context, args []string) error
}

const (
	journalHelp   = "write [key...], field [add|rm|order], title <key>, goal [set|clear], template [set|clear], generate, history, regen <n>, weekly, streak"
	anonymousHelp = "Available commands: " + journalHelp + ", register, login, forget, exit"
	loggedInHelp  = "Available commands: " + journalHelp + ", export [file], logout, forget, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit" and
// dispatches them to a. The journal works the same with or without a login;
// only export needs an online session.
//
// Handler errors are not fatal: handlers report to the user themselves and
// the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("jourin %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(loggedInHelp)
			} else {
				printlnFn(anonymousHelp)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "forget":
			_ = a.Forget(ctx)

		case "w", "write":
			_ = a.Write(ctx, args)
		case "field", "fields":
			_ = a.Fields(ctx, args)
		case "title":
			_ = a.Title(ctx, args)
		case "goal":
			_ = a.Goal(ctx, args)
		case "template":
			_ = a.Template(ctx, args)
		case "g", "generate":
			_ = a.Generate(ctx)
		case "h", "history":
			_ = a.History(ctx)
		case "regen":
			_ = a.Regenerate(ctx, args)
		case "weekly":
			_ = a.Weekly(ctx)
		case "streak":
			_ = a.Streak(ctx)

		case "export":
			if !a.isLoggedIn() {
				printlnFn("Log in to export your journal.")
				continue
			}
			_ = a.Export(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
