package collection

import "github.com/lazyvibe/storefront/internal/model"

// DuplicateRule decides what Add does with an identifier already present.
type DuplicateRule int

const (
	// RejectDuplicate leaves the collection unchanged.
	RejectDuplicate DuplicateRule = iota
	// ReplaceQuantity overwrites the existing entry's quantity and price snapshot.
	ReplaceQuantity
)

// Policy is the per-kind merge and aggregation behavior.
type Policy struct {
	// OnDuplicate is applied when Add targets an existing identifier.
	OnDuplicate DuplicateRule
	// CountByQuantity makes Count sum quantities instead of counting entries.
	CountByQuantity bool
	// Priced enables price snapshots and the Total aggregate.
	Priced bool
}

// CartPolicy replaces on duplicate, counts units and aggregates prices.
var CartPolicy = Policy{
	OnDuplicate:     ReplaceQuantity,
	CountByQuantity: true,
	Priced:          true,
}

// ComparisonPolicy rejects duplicates and has no price aggregation.
var ComparisonPolicy = Policy{
	OnDuplicate: RejectDuplicate,
}

// Definition binds a kind to its storage key and policy.
type Definition struct {
	Kind   model.Kind
	Key    string
	Policy Policy
}

// DefaultDefinitions returns the cart and comparison definitions.
func DefaultDefinitions() []Definition {
	return []Definition{
		{Kind: model.KindCart, Key: "cart", Policy: CartPolicy},
		{Kind: model.KindComparison, Key: "comparison", Policy: ComparisonPolicy},
	}
}
