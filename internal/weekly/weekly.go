// Package weekly summarizes the journal entries of one calendar week.
// Weeks run Sunday through Saturday in the location of the reference time.
package weekly

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/jourin/internal/journal"
)

// NoEntries is returned by Summarize when the week is empty.
const NoEntries = "No journal entries found for this week."

// StartOfWeek returns Sunday 00:00:00.000 of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// EndOfWeek returns Saturday 23:59:59.999 of the week containing t.
func EndOfWeek(t time.Time) time.Time {
	y, m, d := StartOfWeek(t).AddDate(0, 0, 6).Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Filter returns the entries whose timestamp lies in [start, end], keeping
// their order.
func Filter(entries []journal.Entry, start, end time.Time) []journal.Entry {
	from, to := start.UnixMilli(), end.UnixMilli()
	var out []journal.Entry
	for _, e := range entries {
		if e.Timestamp >= from && e.Timestamp <= to {
			out = append(out, e)
		}
	}
	return out
}

// Summarize renders the entries of [start, end] as "title: value" lines,
// one block per entry, blocks separated by a blank line.
func Summarize(entries []journal.Entry, titles journal.Titles, start, end time.Time) string {
	var blocks []string
	for _, e := range Filter(entries, start, end) {
		lines := make([]string, 0, 4)
		for _, f := range journal.ResolveFields(e, titles) {
			lines = append(lines, f.Title+": "+f.Value)
		}
		if len(lines) > 0 {
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
	}
	if len(blocks) == 0 {
		return NoEntries
	}
	return strings.Join(blocks, "\n\n")
}
