package services

import (
	"context"

	"github.com/dmitrijs2005/jourin/internal/streak"
)

// StreakCounter is the streak read and write path for one user.
// *streak.Tracker implements it for local storage.
type StreakCounter interface {
	Peek(ctx context.Context, today string) (streak.Record, error)
	Advance(ctx context.Context, today string) (streak.Record, error)
}

type StreakClient interface {
	GetStreak(ctx context.Context, today string) (streak.Record, error)
	AdvanceStreak(ctx context.Context, today string) (streak.Record, error)
}

// RemoteStreak runs the streak on the server for the logged-in user and
// forwards every change to notifier.
type RemoteStreak struct {
	client   StreakClient
	notifier streak.Notifier
}

func NewRemoteStreak(c StreakClient, notifier streak.Notifier) *RemoteStreak {
	return &RemoteStreak{client: c, notifier: notifier}
}

func (r *RemoteStreak) Peek(ctx context.Context, today string) (streak.Record, error) {
	return r.client.GetStreak(ctx, today)
}

func (r *RemoteStreak) Advance(ctx context.Context, today string) (streak.Record, error) {
	rec, err := r.client.AdvanceStreak(ctx, today)
	if err != nil {
		return streak.Record{}, err
	}
	if r.notifier != nil {
		r.notifier.StreakChanged(ctx, rec)
	}
	return rec, nil
}
