package collection

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazyvibe/storefront/internal/model"
	"github.com/lazyvibe/storefront/internal/store"
)

func newTestStore(t *testing.T, kv store.KeyValue) *Store {
	t.Helper()
	s, err := New(kv)
	require.NoError(t, err)
	return s
}

func ids(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestComparison_AddDistinctPreservesOrder(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore(0))

	changed, err := s.Add(model.KindComparison, model.Item{ID: "A", Price: dec("1000")})
	require.NoError(t, err)
	assert.True(t, changed)
	_, err = s.Add(model.KindComparison, model.Item{ID: "B", Price: dec("2000")})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, ids(s.List(model.KindComparison)))
	assert.Equal(t, 2, s.Count(model.KindComparison))
	assert.True(t, s.Total(model.KindComparison).IsZero())
}

func TestComparison_ManyDistinctIdentifiers(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore(0))

	var want []string
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("p-%02d", i)
		want = append(want, id)
		_, err := s.Add(model.KindComparison, model.Item{ID: id})
		require.NoError(t, err)
	}

	assert.Equal(t, want, ids(s.List(model.KindComparison)))
	assert.Equal(t, len(want), s.Count(model.KindComparison))
}

func TestComparison_AddDuplicateIsIdempotent(t *testing.T) {
	kv := store.NewMemoryStore(0)
	s := newTestStore(t, kv)

	_, err := s.Add(model.KindComparison, model.Item{ID: "A", Name: "first", Price: dec("1000")})
	require.NoError(t, err)
	before := s.List(model.KindComparison)
	writes := kv.Writes()

	changed, err := s.Add(model.KindComparison, model.Item{ID: "A", Name: "second", Price: dec("5")})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, s.List(model.KindComparison))
	assert.Equal(t, writes, kv.Writes(), "rejected duplicate must not write")
}

func TestCart_TotalUsesDefaultDiscount(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore(0))

	_, err := s.Add(model.KindCart, model.Item{ID: "A", Price: dec("1000"), Quantity: 2})
	require.NoError(t, err)

	assert.True(t, dec("1900").Equal(s.Total(model.KindCart)), "got %s", s.Total(model.KindCart))

	items := s.List(model.KindCart)
	require.Len(t, items, 1)
	assert.True(t, dec("950").Equal(items[0].DiscountedPrice))
	assert.True(t, dec("1900").Equal(items[0].TotalPrice))
}

func TestCart_DuplicateReplacesQuantity(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore(0))

	_, err := s.Add(model.KindCart, model.Item{ID: "A", Price: dec("100"), Quantity: 3})
	require.NoError(t, err)
	_, err = s.Add(model.KindCart, model.Item{ID: "B", Price: dec("10"), Quantity: 1})
	require.NoError(t, err)

	changed, err := s.Add(model.KindCart, model.Item{ID: "A", Price: dec("100"), Quantity: 1})
	require.NoError(t, err)
	assert.True(t, changed)

	items := s.List(model.KindCart)
	assert.Equal(t, []string{"A", "B"}, ids(items), "replace keeps position")
	assert.Equal(t, 1, items[0].Quantity, "last write wins, not additive")
	assert.Equal(t, 2, s.Count(model.KindCart))
	assert.True(t, dec("104.5").Equal(s.Total(model.KindCart)), "got %s", s.Total(model.KindCart))
}

func TestCart_SameSnapshotIsNoop(t *testing.T) {
	kv := store.NewMemoryStore(0)
	s := newTestStore(t, kv)

	_, err := s.Add(model.KindCart, model.Item{ID: "A", Price: dec("100"), Quantity: 2})
	require.NoError(t, err)
	writes := kv.Writes()

	changed, err := s.Add(model.KindCart, model.Item{ID: "A", Price: dec("100"), Quantity: 2})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, writes, kv.Writes())
}

func TestCart_DuplicateRefreshesDisplayFields(t *testing.T) {
	kv := store.NewMemoryStore(0)
	s := newTestStore(t, kv)

	_, err := s.Add(model.KindCart, model.Item{
		ID: "A", Name: "X1 Gen 11", Price: dec("100"), Quantity: 2,
		Specifications: map[string]string{"ram": "16GB"},
		Images:         []string{"old.png"},
	})
	require.NoError(t, err)
	writes := kv.Writes()

	changed, err := s.Add(model.KindCart, model.Item{
		ID: "A", Name: "X1 Gen 12", Price: dec("100"), Quantity: 2,
		Specifications: map[string]string{"ram": "32GB"},
		Images:         []string{"new.png"},
	})
	require.NoError(t, err)
	assert.True(t, changed, "same price and quantity but new metadata is a change")
	assert.Equal(t, writes+1, kv.Writes())

	items := s.List(model.KindCart)
	require.Len(t, items, 1)
	assert.Equal(t, "X1 Gen 12", items[0].Name)
	assert.Equal(t, "32GB", items[0].Specifications["ram"])
	assert.Equal(t, []string{"new.png"}, items[0].Images)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, dec("190").Equal(items[0].TotalPrice), "got %s", items[0].TotalPrice)
}

func TestCart_ZeroQuantityStoredAsOne(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore(0))

	_, err := s.Add(model.KindCart, model.Item{ID: "A", Price: dec("10")})
	require.NoError(t, err)

	assert.Equal(t, 1, s.Count(model.KindCart))
}

func TestAdd_ValidationRejectsWithoutWrite(t *testing.T) {
	tests := []struct {
		name  string
		item  model.Item
		field string
	}{
		{name: "empty id", item: model.Item{ID: ""}, field: "id"},
		{name: "blank id", item: model.Item{ID: "   "}, field: "id"},
		{name: "negative price", item: model.Item{ID: "A", Price: dec("-1")}, field: "price"},
		{name: "negative quantity", item: model.Item{ID: "A", Quantity: -2}, field: "quantity"},
		{name: "discount over 100", item: model.Item{ID: "A", DiscountPercentage: decPtr("120")}, field: "discountPercentage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := store.NewMemoryStore(0)
			s := newTestStore(t, kv)

			changed, err := s.Add(model.KindCart, tt.item)
			assert.False(t, changed)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Empty(t, s.List(model.KindCart))
			assert.Equal(t, 0, kv.Writes())
		})
	}
}

func TestAdd_UnknownKind(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore(0))

	_, err := s.Add(model.Kind("wishlist"), model.Item{ID: "A"})
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Nil(t, s.List(model.Kind("wishlist")))
}

func TestAdd_TrimsIdentifier(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore(0))

	_, err := s.Add(model.KindComparison, model.Item{ID: " A "})
	require.NoError(t, err)

	assert.True(t, s.Has(model.KindComparison, "A"))
	changed, err := s.Add(model.KindComparison, model.Item{ID: "A"})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	kv := store.NewMemoryStore(0)
	s := newTestStore(t, kv)

	_, err := s.Add(model.KindComparison, model.Item{ID: "A"})
	require.NoError(t, err)
	before := s.List(model.KindComparison)
	writes := kv.Writes()

	changed, err := s.Remove(model.KindComparison, "missing")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, s.List(model.KindComparison))
	assert.Equal(t, writes, kv.Writes())
}

func TestRemove_Present(t *testing.T) {
	kv := store.NewMemoryStore(0)
	s := newTestStore(t, kv)

	for _, id := range []string{"A", "B", "C"} {
		_, err := s.Add(model.KindComparison, model.Item{ID: id})
		require.NoError(t, err)
	}

	changed, err := s.Remove(model.KindComparison, "B")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"A", "C"}, ids(s.List(model.KindComparison)))

	raw, ok, err := kv.Get("comparison")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"id":"A"`)
	assert.NotContains(t, raw, `"id":"B"`)
}

func TestClear_WritesEmptyArrayAndSurvivesReload(t *testing.T) {
	kv := store.NewMemoryStore(0)
	s := newTestStore(t, kv)

	_, err := s.Add(model.KindComparison, model.Item{ID: "A"})
	require.NoError(t, err)
	require.NoError(t, s.Clear(model.KindComparison))

	assert.Empty(t, s.List(model.KindComparison))
	raw, ok, err := kv.Get("comparison")
	require.NoError(t, err)
	assert.True(t, ok, "clear keeps the key")
	assert.Equal(t, "[]", raw)

	reloaded := newTestStore(t, kv)
	items, err := reloaded.Initialize(model.KindComparison)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestInitialize_RoundTrip(t *testing.T) {
	kv := store.NewMemoryStore(0)
	s := newTestStore(t, kv)

	first := model.Item{
		ID:             "A",
		Name:           "ThinkPad X1",
		Price:          dec("1000"),
		Quantity:       2,
		Specifications: map[string]string{"cpu": "i7"},
		Images:         []string{"a1.png", "a2.png"},
	}
	second := model.Item{ID: "B", Name: "MacBook Air", Price: dec("1500.50"), Quantity: 1, DiscountPercentage: decPtr("10")}
	_, err := s.Add(model.KindCart, first)
	require.NoError(t, err)
	_, err = s.Add(model.KindCart, second)
	require.NoError(t, err)
	want := s.List(model.KindCart)

	got, err := newTestStore(t, kv).Initialize(model.KindCart)
	require.NoError(t, err)

	require.Equal(t, ids(want), ids(got))
	for i := range want {
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.Equal(t, want[i].Specifications, got[i].Specifications)
		assert.Equal(t, want[i].Images, got[i].Images)
		assert.True(t, want[i].Price.Equal(got[i].Price))
		assert.True(t, want[i].TotalPrice.Equal(got[i].TotalPrice))
	}
}

func TestInitialize_CorruptEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "not valid json"},
		{name: "object root", raw: `{"id":"A"}`},
		{name: "string root", raw: `"A"`},
		{name: "entry without id", raw: `[{"id":"A"},{"model_name":"x"}]`},
		{name: "negative price", raw: `[{"id":"A","price":-3}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := store.NewMemoryStore(0)
			require.NoError(t, kv.Set("comparison", tt.raw))
			s := newTestStore(t, kv)

			items, err := s.Initialize(model.KindComparison)
			require.NoError(t, err)
			assert.Empty(t, items)
		})
	}
}

func TestInitialize_NullIsEmpty(t *testing.T) {
	kv := store.NewMemoryStore(0)
	require.NoError(t, kv.Set("cart", "null"))

	items, err := newTestStore(t, kv).Initialize(model.KindCart)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestInitialize_DuplicateEntriesKeepFirst(t *testing.T) {
	kv := store.NewMemoryStore(0)
	require.NoError(t, kv.Set("comparison", `[{"id":"A","model_name":"one"},{"id":"B"},{"id":"A","model_name":"two"}]`))

	items, err := newTestStore(t, kv).Initialize(model.KindComparison)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, ids(items))
	assert.Equal(t, "one", items[0].Name)
}

func TestInitialize_UnreadableStorage(t *testing.T) {
	kv := store.NewMemoryStore(0)
	require.NoError(t, kv.Close())

	items, err := newTestStore(t, kv).Initialize(model.KindCart)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPersistenceFailure_KeepsMutationInMemory(t *testing.T) {
	kv := store.NewMemoryStore(0)
	s := newTestStore(t, kv)
	boom := errors.New("quota")
	kv.FailWrites(boom)

	changed, err := s.Add(model.KindComparison, model.Item{ID: "A"})
	assert.True(t, changed)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, model.KindComparison, perr.Kind)
	assert.Equal(t, "comparison", perr.Key)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"A"}, ids(s.List(model.KindComparison)))
}

func TestPersistenceFailure_QuotaExceeded(t *testing.T) {
	kv := store.NewMemoryStore(40)
	s := newTestStore(t, kv)

	_, err := s.Add(model.KindComparison, model.Item{ID: "A", Name: "a name long enough to blow the quota"})
	assert.ErrorIs(t, err, store.ErrQuotaExceeded)
	assert.Equal(t, 1, s.Count(model.KindComparison))
}

func TestUpdateQuantity(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore(0))
	_, err := s.Add(model.KindCart, model.Item{ID: "A", Price: dec("100"), Quantity: 1})
	require.NoError(t, err)

	changed, err := s.UpdateQuantity(model.KindCart, "A", 4)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 4, s.Count(model.KindCart))
	assert.True(t, dec("380").Equal(s.List(model.KindCart)[0].TotalPrice))

	changed, err = s.UpdateQuantity(model.KindCart, "missing", 2)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = s.UpdateQuantity(model.KindCart, "A", 0)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, s.List(model.KindCart))
}

func TestUpdateQuantity_RejectedForComparison(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore(0))
	_, err := s.Add(model.KindComparison, model.Item{ID: "A"})
	require.NoError(t, err)

	_, err = s.UpdateQuantity(model.KindComparison, "A", 3)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestList_ReturnsDefensiveCopy(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore(0))
	_, err := s.Add(model.KindComparison, model.Item{
		ID:             "A",
		Specifications: map[string]string{"cpu": "i7"},
		Images:         []string{"a.png"},
	})
	require.NoError(t, err)

	items := s.List(model.KindComparison)
	items[0].ID = "mutated"
	items[0].Specifications["cpu"] = "mutated"
	items[0].Images[0] = "mutated"

	again := s.List(model.KindComparison)
	assert.Equal(t, "A", again[0].ID)
	assert.Equal(t, "i7", again[0].Specifications["cpu"])
	assert.Equal(t, "a.png", again[0].Images[0])
}

func TestAdd_CallerMutationDoesNotLeak(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore(0))
	specs := map[string]string{"cpu": "i7"}

	_, err := s.Add(model.KindComparison, model.Item{ID: "A", Specifications: specs})
	require.NoError(t, err)
	specs["cpu"] = "changed"

	assert.Equal(t, "i7", s.List(model.KindComparison)[0].Specifications["cpu"])
}

func TestKindsUseDisjointKeys(t *testing.T) {
	kv := store.NewMemoryStore(0)
	s := newTestStore(t, kv)

	_, err := s.Add(model.KindCart, model.Item{ID: "A", Price: dec("1")})
	require.NoError(t, err)

	assert.Empty(t, s.List(model.KindComparison))
	_, ok, err := kv.Get("comparison")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNew_RejectsSharedKeys(t *testing.T) {
	_, err := New(store.NewMemoryStore(0), WithDefinition(Definition{
		Kind:   "wishlist",
		Key:    "cart",
		Policy: ComparisonPolicy,
	}))
	assert.Error(t, err)
}

func TestWithDefinition_CustomKind(t *testing.T) {
	s, err := New(store.NewMemoryStore(0), WithDefinition(Definition{
		Kind:   "wishlist",
		Key:    "wishlist",
		Policy: ComparisonPolicy,
	}))
	require.NoError(t, err)

	_, err = s.Add("wishlist", model.Item{ID: "A"})
	require.NoError(t, err)
	assert.Equal(t, []model.Kind{model.KindCart, model.KindComparison, "wishlist"}, s.Kinds())
	assert.Equal(t, 1, s.Count("wishlist"))
}

func TestSubscribe_ReceivesChanges(t *testing.T) {
	kv := store.NewMemoryStore(0)
	s := newTestStore(t, kv)

	var got []Change
	unsubscribe := s.Subscribe(func(c Change) {
		got = append(got, c)
	})

	_, err := s.Add(model.KindCart, model.Item{ID: "A", Price: dec("1000"), Quantity: 2})
	require.NoError(t, err)
	_, err = s.Add(model.KindComparison, model.Item{ID: "A"})
	require.NoError(t, err)
	_, err = s.Add(model.KindComparison, model.Item{ID: "A"})
	require.NoError(t, err)

	require.Len(t, got, 2, "no-op adds do not notify")
	assert.Equal(t, model.KindCart, got[0].Kind)
	assert.Equal(t, 2, got[0].Count)
	assert.True(t, dec("1900").Equal(got[0].Total))
	assert.Equal(t, model.KindComparison, got[1].Kind)
	assert.Greater(t, got[1].Version, got[0].Version)

	kv.FailWrites(errors.New("disk"))
	require.Error(t, s.Clear(model.KindComparison))
	require.Len(t, got, 3)
	assert.Error(t, got[2].Err)
	assert.Empty(t, got[2].Items)

	unsubscribe()
	kv.FailWrites(nil)
	_, err = s.Remove(model.KindCart, "A")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSubscribe_ListenerMayReadStore(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore(0))

	var count int
	s.Subscribe(func(c Change) {
		count = s.Count(c.Kind)
	})

	_, err := s.Add(model.KindComparison, model.Item{ID: "A"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestConcurrentAddsKeepUniqueness(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore(0))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, _ = s.Add(model.KindComparison, model.Item{ID: fmt.Sprintf("p-%d", j)})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, s.Count(model.KindComparison))
}
