// Package collection keeps the cart and comparison lists: deduplicated item
// snapshots written through to durable storage on every change.
package collection

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lazyvibe/storefront/internal/model"
	"github.com/lazyvibe/storefront/internal/store"
)

// list is the in-memory state of one kind.
type list struct {
	items  []model.Item
	loaded bool
}

func (l *list) indexOf(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Store mediates every read and mutation of the collections it owns.
type Store struct {
	mu      sync.Mutex
	kv      store.KeyValue
	logger  *zap.Logger
	defs    map[model.Kind]Definition
	kinds   []model.Kind
	lists   map[model.Kind]*list
	version uint64

	subMu sync.RWMutex
	subs  map[string]Listener
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefinition registers a kind, replacing any default with the same kind.
func WithDefinition(def Definition) Option {
	return func(s *Store) {
		s.register(def)
	}
}

// New creates a store over kv with the cart and comparison kinds registered.
func New(kv store.KeyValue, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("collection store requires a key/value backend")
	}
	s := &Store{
		kv:     kv,
		logger: zap.NewNop(),
		defs:   make(map[model.Kind]Definition),
		lists:  make(map[model.Kind]*list),
		subs:   make(map[string]Listener),
	}
	for _, def := range DefaultDefinitions() {
		s.register(def)
	}
	for _, opt := range opts {
		opt(s)
	}

	keys := make(map[string]model.Kind, len(s.defs))
	for _, kind := range s.kinds {
		def := s.defs[kind]
		if def.Kind == "" || def.Key == "" {
			return nil, fmt.Errorf("collection kind %q: kind and key are required", def.Kind)
		}
		if other, ok := keys[def.Key]; ok {
			return nil, fmt.Errorf("collection kinds %q and %q share storage key %q", other, kind, def.Key)
		}
		keys[def.Key] = kind
	}
	return s, nil
}

func (s *Store) register(def Definition) {
	if _, ok := s.defs[def.Kind]; !ok {
		s.kinds = append(s.kinds, def.Kind)
	}
	s.defs[def.Kind] = def
	delete(s.lists, def.Kind)
}

// Kinds returns the registered kinds in registration order.
func (s *Store) Kinds() []model.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Kind, len(s.kinds))
	copy(out, s.kinds)
	return out
}

// Definition returns the definition registered for kind.
func (s *Store) Definition(kind model.Kind) (Definition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	def, ok := s.defs[kind]
	return def, ok
}

// acquire returns the definition and loaded list for kind. Caller holds s.mu.
func (s *Store) acquire(kind model.Kind) (Definition, *list, error) {
	def, ok := s.defs[kind]
	if !ok {
		return Definition{}, nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	l, ok := s.lists[kind]
	if !ok {
		l = &list{}
		s.lists[kind] = l
	}
	if !l.loaded {
		l.items = s.load(def)
		l.loaded = true
	}
	return def, l, nil
}

// load reads the envelope for def. Any failure yields an empty collection.
func (s *Store) load(def Definition) []model.Item {
	raw, ok, err := s.kv.Get(def.Key)
	if err != nil {
		s.logger.Warn("collection storage unreadable, starting empty",
			zap.String("kind", def.Kind.String()),
			zap.Error(&DeserializationError{Key: def.Key, Err: err}))
		return []model.Item{}
	}
	if !ok {
		return []model.Item{}
	}

	items, err := decodeEnvelope(raw, def.Policy)
	if err != nil {
		s.logger.Warn("collection envelope discarded, starting empty",
			zap.String("kind", def.Kind.String()),
			zap.Error(&DeserializationError{Key: def.Key, Err: err}))
		return []model.Item{}
	}
	s.logger.Debug("collection loaded",
		zap.String("kind", def.Kind.String()),
		zap.Int("count", len(items)))
	return items
}

// decodeEnvelope parses a stored JSON array of items. Entries that fail
// validation reject the whole envelope; repeated identifiers keep the first.
func decodeEnvelope(raw string, p Policy) ([]model.Item, error) {
	var decoded []model.Item
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}

	items := make([]model.Item, 0, len(decoded))
	seen := make(map[string]bool, len(decoded))
	for i, it := range decoded {
		if err := validate(it); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		it.ID = strings.TrimSpace(it.ID)
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		items = append(items, normalize(it, p))
	}
	return items, nil
}

// validate checks the constraints every stored item must meet.
func validate(item model.Item) error {
	if strings.TrimSpace(item.ID) == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if item.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if item.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if d := item.DiscountPercentage; d != nil && (d.IsNegative() || d.GreaterThan(hundred)) {
		return &ValidationError{Field: "discountPercentage", Reason: "must be between 0 and 100"}
	}
	return nil
}

// normalize fills in the price snapshot for priced policies.
func normalize(item model.Item, p Policy) model.Item {
	if !p.Priced {
		return item
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	item.DiscountedPrice = DiscountedPrice(item)
	item.TotalPrice = ItemTotal(item)
	return item
}

// mutate runs fn against the loaded list for kind, then persists and notifies
// when fn reports a change.
func (s *Store) mutate(kind model.Kind, fn func(def Definition, l *list) (bool, error)) (bool, error) {
	s.mu.Lock()
	def, l, err := s.acquire(kind)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	changed, err := fn(def, l)
	if err != nil || !changed {
		s.mu.Unlock()
		return false, err
	}

	perr := s.persist(def, l.items)
	s.version++
	change := Change{
		Kind:    kind,
		Version: s.version,
		Items:   cloneItems(l.items),
		Count:   Count(l.items, def.Policy),
		Total:   Total(l.items, def.Policy),
		Err:     perr,
	}
	s.mu.Unlock()

	s.notify(change)
	return true, perr
}

// persist writes the full collection. Caller holds s.mu.
func (s *Store) persist(def Definition, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return &PersistenceError{Kind: def.Kind, Key: def.Key, Err: err}
	}
	if err := s.kv.Set(def.Key, string(data)); err != nil {
		s.logger.Error("collection write failed, keeping in-memory state",
			zap.String("kind", def.Kind.String()),
			zap.String("key", def.Key),
			zap.Error(err))
		return &PersistenceError{Kind: def.Kind, Key: def.Key, Err: err}
	}
	return nil
}

// Initialize loads kind from storage if it has not been loaded yet and returns
// its items.
func (s *Store) Initialize(kind model.Kind) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, l, err := s.acquire(kind)
	if err != nil {
		return nil, err
	}
	return cloneItems(l.items), nil
}

// Add inserts item into kind. An identifier already present is handled by the
// kind's policy. changed reports whether the collection was modified.
func (s *Store) Add(kind model.Kind, item model.Item) (bool, error) {
	return s.mutate(kind, func(def Definition, l *list) (bool, error) {
		if err := validate(item); err != nil {
			return false, err
		}
		item = item.Clone()
		item.ID = strings.TrimSpace(item.ID)
		item = normalize(item, def.Policy)
		idx := l.indexOf(item.ID)
		if idx < 0 {
			l.items = append(l.items, item)
			s.logger.Debug("item added",
				zap.String("kind", kind.String()),
				zap.String("item_id", item.ID))
			return true, nil
		}

		switch def.Policy.OnDuplicate {
		case ReplaceQuantity:
			if sameSnapshot(l.items[idx], item) {
				return false, nil
			}
			// The newer snapshot wins, display fields included. Position is kept.
			l.items[idx] = item
			s.logger.Debug("item replaced",
				zap.String("kind", kind.String()),
				zap.String("item_id", item.ID),
				zap.Int("quantity", item.Quantity))
			return true, nil
		default:
			return false, nil
		}
	})
}

// sameSnapshot reports whether re-adding b over a would change nothing a
// reader can observe.
func sameSnapshot(a, b model.Item) bool {
	if a.Quantity != b.Quantity || !a.Price.Equal(b.Price) {
		return false
	}
	if !EffectiveDiscount(a).Equal(EffectiveDiscount(b)) ||
		(a.DiscountPercentage == nil) != (b.DiscountPercentage == nil) {
		return false
	}
	return a.Name == b.Name &&
		a.Brand == b.Brand &&
		a.Type == b.Type &&
		a.Category == b.Category &&
		maps.Equal(a.Specifications, b.Specifications) &&
		slices.Equal(a.Images, b.Images)
}

// UpdateQuantity sets the quantity of an item in a kind counted by quantity.
// A quantity below 1 removes the item. An absent identifier is a no-op.
func (s *Store) UpdateQuantity(kind model.Kind, id string, quantity int) (bool, error) {
	id = strings.TrimSpace(id)
	return s.mutate(kind, func(def Definition, l *list) (bool, error) {
		if !def.Policy.CountByQuantity {
			return false, &ValidationError{Field: "quantity", Reason: fmt.Sprintf("not tracked for %s", kind)}
		}
		idx := l.indexOf(id)
		if idx < 0 {
			return false, nil
		}
		if quantity < 1 {
			l.items = append(l.items[:idx], l.items[idx+1:]...)
			return true, nil
		}
		if l.items[idx].Quantity == quantity {
			return false, nil
		}
		l.items[idx].Quantity = quantity
		l.items[idx] = normalize(l.items[idx], def.Policy)
		return true, nil
	})
}

// Remove deletes the item with id from kind. An absent identifier is a no-op.
func (s *Store) Remove(kind model.Kind, id string) (bool, error) {
	id = strings.TrimSpace(id)
	return s.mutate(kind, func(_ Definition, l *list) (bool, error) {
		idx := l.indexOf(id)
		if idx < 0 {
			return false, nil
		}
		l.items = append(l.items[:idx], l.items[idx+1:]...)
		return true, nil
	})
}

// Clear empties kind and writes an empty envelope.
func (s *Store) Clear(kind model.Kind) error {
	_, err := s.mutate(kind, func(_ Definition, l *list) (bool, error) {
		l.items = []model.Item{}
		return true, nil
	})
	return err
}

// List returns a copy of the items in kind in insertion order.
// Unknown kinds yield nil.
func (s *Store) List(kind model.Kind) []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, l, err := s.acquire(kind)
	if err != nil {
		return nil
	}
	return cloneItems(l.items)
}

// Has reports whether kind contains id.
func (s *Store) Has(kind model.Kind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, l, err := s.acquire(kind)
	if err != nil {
		return false
	}
	return l.indexOf(strings.TrimSpace(id)) >= 0
}

// Count returns the number of entries in kind, or units for kinds counted by quantity.
func (s *Store) Count(kind model.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	def, l, err := s.acquire(kind)
	if err != nil {
		return 0
	}
	return Count(l.items, def.Policy)
}

// Total returns the summed item totals of kind. Unpriced kinds total zero.
func (s *Store) Total(kind model.Kind) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	def, l, err := s.acquire(kind)
	if err != nil {
		return decimal.Zero
	}
	return Total(l.items, def.Policy)
}

func cloneItems(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}
