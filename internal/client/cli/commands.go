package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/jourin/internal/client/services"
	"github.com/dmitrijs2005/jourin/internal/filex"
	"github.com/dmitrijs2005/jourin/internal/journal"
	"github.com/dmitrijs2005/jourin/internal/netx"
	"github.com/dmitrijs2005/jourin/internal/streak"
	"github.com/dmitrijs2005/jourin/internal/weekly"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	streakColor = color.New(color.FgHiYellow, color.Bold)
	errColor    = color.New(color.FgRed)
)

const previewWidth = 60

// downloadFn fetches presigned export links; tests swap it for a stub.
var downloadFn = netx.DownloadPresignedURL

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// Write walks the draft fields in display order (or only the given keys) and
// reads a new answer for each. An empty answer keeps the current value, a
// single "-" clears it.
func (a *App) Write(ctx context.Context, args []string) error {
	keys := args
	if len(keys) == 0 {
		var err error
		if keys, err = a.ws.Order(ctx); err != nil {
			return err
		}
	}

	draft, err := a.ws.Draft(ctx)
	if err != nil {
		return err
	}
	titles, err := a.ws.Titles(ctx)
	if err != nil {
		return err
	}

	for _, key := range keys {
		titleColor.Fprintln(a.out, journal.TitleFor(draft, titles, key))
		if cur := draft.Value(key); cur != "" {
			a.printf("current: %s\n", cur)
		}

		answer, err := askAnswer(a.reader, "Your answer (empty keeps, '-' clears)", a.out)
		if err != nil {
			return err
		}
		switch answer {
		case "":
			continue
		case "-":
			answer = ""
		}

		if err := a.ws.SetValue(ctx, key, answer); err != nil {
			errColor.Fprintf(a.out, "%v\n", err)
			return err
		}
	}
	return nil
}

// Fields lists the draft fields or, with a subcommand, edits them:
//
//	field add <title>   add a custom question
//	field rm <key>      remove a custom question
//	field order         reorder all fields
func (a *App) Fields(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.listFields(ctx)
	}

	switch args[0] {
	case "add":
		title := strings.Join(args[1:], " ")
		if title == "" {
			var err error
			if title, err = getSimpleText(a.reader, "Question title", a.out); err != nil {
				return err
			}
		}
		key, err := a.ws.AddField(ctx, title)
		if err != nil {
			return err
		}
		a.printf("Added %s.\n", key)
		return nil

	case "rm":
		if len(args) < 2 {
			a.printf("Usage: field rm <key>\n")
			return nil
		}
		if err := a.ws.RemoveField(ctx, args[1]); err != nil {
			errColor.Fprintf(a.out, "%v\n", err)
			return err
		}
		a.printf("Removed %s.\n", args[1])
		return nil

	case "order":
		keys, err := askKeys(a.reader, "Field keys in display order", a.out)
		if err != nil {
			return err
		}
		return a.ws.SetOrder(ctx, keys)
	}

	a.printf("Usage: field [add <title> | rm <key> | order]\n")
	return nil
}

func (a *App) listFields(ctx context.Context) error {
	keys, err := a.ws.Order(ctx)
	if err != nil {
		return err
	}
	draft, err := a.ws.Draft(ctx)
	if err != nil {
		return err
	}
	titles, err := a.ws.Titles(ctx)
	if err != nil {
		return err
	}

	tbl := uitable.New()
	tbl.MaxColWidth = previewWidth
	tbl.Wrap = true
	tbl.AddRow("KEY", "QUESTION", "ANSWER")
	for _, k := range keys {
		tbl.AddRow(k, journal.TitleFor(draft, titles, k), draft.Value(k))
	}
	fmt.Fprintln(a.out, tbl)
	return nil
}

// Title renames a question: title <key> <text>.
func (a *App) Title(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Usage: title <key> [text]\n")
		return nil
	}

	key, text := args[0], strings.Join(args[1:], " ")
	if text == "" {
		var err error
		if text, err = getSimpleText(a.reader, "New title for "+key, a.out); err != nil {
			return err
		}
	}
	return a.ws.SetTitle(ctx, key, text)
}

// Goal shows the goal; "goal set" replaces it and "goal clear" drops it.
func (a *App) Goal(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "set":
			goal, err := getSimpleText(a.reader, "Your goal", a.out)
			if err != nil {
				return err
			}
			return a.ws.SetGoal(ctx, goal)
		case "clear":
			return a.ws.SetGoal(ctx, "")
		}
	}

	goal, err := a.ws.Goal(ctx)
	if err != nil {
		return err
	}
	if goal == "" {
		a.printf("No goal set.\n")
		return nil
	}
	a.printf("Goal: %s\n", goal)
	return nil
}

// Template shows the saved prompt template; "template set" reads a new one
// and "template clear" restores the built-in template.
func (a *App) Template(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "set":
			body, err := askAnswer(a.reader, "Prompt template ({{journalEntries}}, {{goalSection}} or field keys)", a.out)
			if err != nil {
				return err
			}
			return a.ws.SetTemplate(ctx, body)
		case "clear":
			return a.ws.SetTemplate(ctx, "")
		}
	}

	body, err := a.ws.Template(ctx)
	if err != nil {
		return err
	}
	if body == "" {
		a.printf("Using the built-in template.\n")
		return nil
	}
	fmt.Fprintln(a.out, body)
	return nil
}

// Generate turns the draft into a prompt.
func (a *App) Generate(ctx context.Context) error {
	res, err := a.journal.Generate(ctx)
	if err != nil {
		var verr *journal.ValidationError
		if errors.As(err, &verr) {
			errColor.Fprintln(a.out, verr.Message)
			return err
		}
		a.log.Error(ctx, "prompt generation failed", "error", err)
		return err
	}

	titleColor.Fprintln(a.out, "Your prompt:")
	fmt.Fprintln(a.out, res.Prompt)
	return nil
}

// History prints stored entries, newest first, numbered for regen.
func (a *App) History(ctx context.Context) error {
	entries, err := a.journal.History(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		a.printf("No entries yet.\n")
		return nil
	}
	titles, err := a.ws.Titles(ctx)
	if err != nil {
		return err
	}

	tbl := uitable.New()
	tbl.MaxColWidth = previewWidth
	tbl.AddRow("#", "DATE", "ENTRY")
	for i, e := range entries {
		preview := ""
		if fields := journal.ResolveFields(e, titles); len(fields) > 0 {
			preview = fields[0].Value
		}
		date := time.UnixMilli(e.Timestamp).Local().Format("2006-01-02 15:04")
		tbl.AddRow(i+1, date, preview)
	}
	fmt.Fprintln(a.out, tbl)
	return nil
}

// Regenerate re-renders history entry n (1-based, as shown by history).
func (a *App) Regenerate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Usage: regen <n>\n")
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		a.printf("Usage: regen <n>\n")
		return nil
	}

	entries, err := a.journal.History(ctx)
	if err != nil {
		return err
	}
	if n < 1 || n > len(entries) {
		a.printf("No entry #%d.\n", n)
		return nil
	}

	text, err := a.journal.Regenerate(ctx, entries[n-1])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, text)
	return nil
}

// Weekly prints the summary prompt for the current week.
func (a *App) Weekly(ctx context.Context) error {
	text, err := a.journal.WeeklySummary(ctx, a.now())
	if err != nil {
		return err
	}
	if text == weekly.NoEntries {
		a.printf("%s\n", text)
		return nil
	}
	titleColor.Fprintln(a.out, "Your weekly prompt:")
	fmt.Fprintln(a.out, text)
	return nil
}

func (a *App) Streak(ctx context.Context) error {
	rec, err := a.journal.Streak(ctx)
	if err != nil {
		return err
	}
	a.printStreak(rec)
	return nil
}

// Export asks the server for a time-limited link to the full history. With
// a file argument the export is downloaded there instead of printing the link.
func (a *App) Export(ctx context.Context, args []string) error {
	url, err := a.journal.Export(ctx)
	if errors.Is(err, services.ErrExportRequiresLogin) {
		a.printf("Log in online to export your journal.\n")
		return err
	}
	if err != nil {
		return err
	}
	if len(args) == 0 {
		a.printf("Download your journal: %s\n", url)
		return nil
	}

	var buf bytes.Buffer
	if _, err := downloadFn(ctx, url, &buf); err != nil {
		a.log.Error(ctx, "export download failed", "error", err)
		errColor.Fprintf(a.out, "%v\n", err)
		return err
	}
	if err := filex.WriteFilePrivate(args[0], buf.Bytes()); err != nil {
		errColor.Fprintf(a.out, "%v\n", err)
		return err
	}
	a.printf("Saved %d bytes to %s.\n", buf.Len(), args[0])
	return nil
}

func (a *App) onStreakChanged(_ context.Context, rec streak.Record) {
	a.printStreak(rec)
}

func (a *App) printStreak(rec streak.Record) {
	if rec.Count == 0 {
		a.printf("No active streak. Write today to start one.\n")
		return
	}
	streakColor.Fprintf(a.out, "🔥 %d-day streak (last entry %s)\n", rec.Count, rec.LastActivityDate)
}
