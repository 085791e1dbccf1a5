package store

import (
	"context"

	"github.com/dmitrijs2005/jourin/internal/client/kv"
	"github.com/dmitrijs2005/jourin/internal/logging"
	"github.com/dmitrijs2005/jourin/internal/streak"
)

const StreakKey = "fireUpData"

// StreakStore keeps the anonymous user's streak record in local storage.
type StreakStore struct {
	kv  kv.Store
	log logging.Logger
}

func NewStreakStore(s kv.Store, log logging.Logger) *StreakStore {
	return &StreakStore{kv: s, log: log.With("module", "local_streak")}
}

func (s *StreakStore) Load(ctx context.Context) (streak.Record, bool, error) {
	var rec streak.Record
	ok, err := kv.LoadJSON(ctx, s.kv, s.log, StreakKey, &rec)
	if err != nil || !ok {
		return streak.Record{}, false, err
	}
	return rec, true, nil
}

func (s *StreakStore) Save(ctx context.Context, rec streak.Record) error {
	return kv.SetJSON(ctx, s.kv, StreakKey, rec)
}
