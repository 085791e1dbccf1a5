// Package streak tracks consecutive posting days.
//
// A Record is read through Peek, which lazily zeroes a streak whose last
// activity is more than one calendar day old, and changed only through
// Advance, which runs once per successful post. Dates are UTC calendar dates
// in YYYY-MM-DD form; time of day never matters.
package streak

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for LastActivityDate.
const DateLayout = "2006-01-02"

// Record is the streak value object.
type Record struct {
	Count int `json:"currentStreak"`
	// LastActivityDate is empty when there has never been any activity.
	LastActivityDate string `json:"lastPostDate"`
}

type recordJSON struct {
	Count            int     `json:"currentStreak"`
	LastActivityDate *string `json:"lastPostDate"`
}

// MarshalJSON writes a missing date as null, the shape fireUpData has
// always had.
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{Count: r.Count}
	if r.LastActivityDate != "" {
		date := r.LastActivityDate
		out.LastActivityDate = &date
	}
	return json.Marshal(out)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Record{Count: in.Count}
	if in.LastActivityDate != nil {
		r.LastActivityDate = *in.LastActivityDate
	}
	return nil
}

// Store persists the single streak record of one user.
type Store interface {
	// Load returns ok=false when nothing has been stored yet.
	Load(ctx context.Context) (rec Record, ok bool, err error)
	Save(ctx context.Context, rec Record) error
}

// Notifier is told about every record written by Advance.
type Notifier interface {
	StreakChanged(ctx context.Context, rec Record)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, rec Record)

func (f NotifierFunc) StreakChanged(ctx context.Context, rec Record) { f(ctx, rec) }

// Today formats t as a UTC calendar date.
func Today(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b string) (int, error) {
	from, err := time.ParseInLocation(DateLayout, a, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", a, err)
	}
	to, err := time.ParseInLocation(DateLayout, b, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", b, err)
	}
	return int(to.Sub(from).Hours() / 24), nil
}

// Tracker applies the streak rules on top of a Store.
type Tracker struct {
	store    Store
	notifier Notifier
}

// NewTracker builds a Tracker. notifier may be nil.
func NewTracker(store Store, notifier Notifier) *Tracker {
	return &Tracker{store: store, notifier: notifier}
}

// Peek returns the current record as of today. A record whose last activity
// is more than a day old comes back (and is stored) with Count 0; its date is
// kept. Calling Peek repeatedly is idempotent.
func (t *Tracker) Peek(ctx context.Context, today string) (Record, error) {
	rec, ok, err := t.store.Load(ctx)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, nil
	}
	if rec.LastActivityDate == "" {
		return Record{}, nil
	}

	days, err := DaysBetween(rec.LastActivityDate, today)
	if err != nil {
		return Record{}, err
	}
	if days > 1 && rec.Count != 0 {
		rec.Count = 0
		if err := t.store.Save(ctx, rec); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

// Advance records activity on today and returns the new record. A second
// call on the same day changes nothing and emits no notification.
func (t *Tracker) Advance(ctx context.Context, today string) (Record, error) {
	if _, err := time.Parse(DateLayout, today); err != nil {
		return Record{}, fmt.Errorf("invalid date %q: %w", today, err)
	}

	rec, err := t.Peek(ctx, today)
	if err != nil {
		return Record{}, err
	}
	if rec.LastActivityDate == today {
		return rec, nil
	}

	next := Record{Count: 1, LastActivityDate: today}
	if rec.LastActivityDate != "" {
		days, err := DaysBetween(rec.LastActivityDate, today)
		if err != nil {
			return Record{}, err
		}
		if days == 1 {
			next.Count = rec.Count + 1
		}
	}

	if err := t.store.Save(ctx, next); err != nil {
		return Record{}, err
	}
	if t.notifier != nil {
		t.notifier.StreakChanged(ctx, next)
	}
	return next, nil
}
