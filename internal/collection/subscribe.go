package collection

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lazyvibe/storefront/internal/model"
)

// Change describes a collection after a mutation.
type Change struct {
	// Kind is the mutated collection.
	Kind model.Kind
	// Version increases with every mutation across the store. Listeners may
	// drop a change older than one they have already seen.
	Version uint64
	// Items is a copy of the collection after the mutation.
	Items []model.Item
	// Count and Total are derived from Items.
	Count int
	Total decimal.Decimal
	// Err is the persistence failure, if the write did not succeed.
	Err error
}

// Listener receives changes. It runs on the goroutine that made the mutation,
// after the store lock is released, and must not block.
type Listener func(Change)

// Subscribe registers fn for every future change and returns a function that
// removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	id := uuid.NewString()
	s.subMu.Lock()
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(change Change) {
	s.subMu.RLock()
	listeners := make([]Listener, 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.subMu.RUnlock()

	for _, fn := range listeners {
		fn(change)
	}
}
