package component

// ItemKind separates score items from hazards.
type ItemKind uint8

const (
	KindGood ItemKind = iota
	KindBad
)

func (k ItemKind) String() string {
	if k == KindBad {
		return "bad"
	}
	return "good"
}

// ItemState is the lifecycle of a spawned item. Every item leaves Active
// exactly once.
type ItemState uint8

const (
	ItemActive ItemState = iota
	ItemConsumedGood
	ItemConsumedBad
	ItemPassed
)

func (s ItemState) String() string {
	switch s {
	case ItemActive:
		return "active"
	case ItemConsumedGood:
		return "consumed-good"
	case ItemConsumedBad:
		return "consumed-bad"
	case ItemPassed:
		return "passed"
	}
	return "unknown"
}

// Terminal reports whether the item has left the Active state.
func (s ItemState) Terminal() bool { return s != ItemActive }

// Item is a scoring object moving toward the viewer on one lane.
type Item struct {
	Kind     ItemKind
	Category string // saving, investment, card, scam, loan
	Name     string // label shown on the item
	Color    uint32 // 0xRRGGBB
	Lane     int
	State    ItemState
}
