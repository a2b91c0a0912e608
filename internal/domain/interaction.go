package domain

// InteractionKind classifies one user/item signal in the training export.
// Values include InteractionLike, InteractionDislike, and InteractionOrder.
type InteractionKind string

const (
	InteractionLike    InteractionKind = "like"
	InteractionDislike InteractionKind = "dislike"
	InteractionOrder   InteractionKind = "order"
)

// InteractionRecord is one flattened row of the training export.
// Records are immutable once exported; the same (user, food) pair may appear
// multiple times with different kinds, and duplicates are preserved.
type InteractionRecord struct {
	UserID      uint
	FoodID      uint
	Kind        InteractionKind
	Ingredients string
}
