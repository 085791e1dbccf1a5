package streak

import (
	"context"
	"sync"
)

// Broadcaster fans change notifications out to any number of subscribers,
// e.g. the CLI prompt banner.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]NotifierFunc
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]NotifierFunc)}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Broadcaster) Subscribe(fn NotifierFunc) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

func (b *Broadcaster) StreakChanged(ctx context.Context, rec Record) {
	b.mu.Lock()
	subs := make([]NotifierFunc, 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(ctx, rec)
	}
}
