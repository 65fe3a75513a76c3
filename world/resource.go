package world

import "fmt"

// ResourceKind classifies what a resource restores when consumed.
type ResourceKind uint8

const (
	Plant ResourceKind = iota // Restores Hunger for herbivores and omnivores
	Spring                    // Restores Thirst
	Prey                      // Restores Hunger for carnivores and omnivores
)

// String returns the resource kind's name.
func (k ResourceKind) String() string {
	switch k {
	case Plant:
		return "Plant"
	case Spring:
		return "Spring"
	case Prey:
		return "Prey"
	default:
		return fmt.Sprintf("ResourceKind(%d)", uint8(k))
	}
}

// Resource is a consumable sitting on a tile.
type Resource struct {
	Kind     ResourceKind
	Quantity float32 // Vital points gained per use
	UsesLeft int
}

// Consume draws one use from the resource. A depleted resource yields
// zero gain and stays at zero uses; it never goes negative.
func (r *Resource) Consume() (gain float32, ok bool) {
	if r.UsesLeft <= 0 {
		return 0, false
	}
	r.UsesLeft--
	return r.Quantity, true
}

// Depleted reports whether the resource has no uses left.
func (r *Resource) Depleted() bool {
	return r.UsesLeft <= 0
}
