// Package traits defines animal categories and named traits.
package traits

import (
	"fmt"
	"math/rand"
)

// Trait identifies one of the five named integer traits.
type Trait uint8

const (
	Strength Trait = iota
	Agility
	Endurance
	Perception
	Ferocity

	// Count is the number of traits; keep it last.
	Count
)

// String returns the trait's name.
func (t Trait) String() string {
	switch t {
	case Strength:
		return "Strength"
	case Agility:
		return "Agility"
	case Endurance:
		return "Endurance"
	case Perception:
		return "Perception"
	case Ferocity:
		return "Ferocity"
	default:
		return fmt.Sprintf("Trait(%d)", uint8(t))
	}
}

// Parse returns the trait with the given name.
func Parse(name string) (Trait, error) {
	for t := Trait(0); t < Count; t++ {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("traits: unknown trait %q", name)
}

// Category determines an animal's diet and its primary trait.
type Category uint8

const (
	Herbivore Category = iota
	Carnivore
	Omnivore
)

// String returns the category's name.
func (c Category) String() string {
	switch c {
	case Herbivore:
		return "Herbivore"
	case Carnivore:
		return "Carnivore"
	case Omnivore:
		return "Omnivore"
	default:
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
}

// Primary returns the category's primary trait. The primary trait rolls
// in the primary range at creation and is floored at the configured minimum.
func (c Category) Primary() Trait {
	switch c {
	case Carnivore:
		return Strength
	case Omnivore:
		return Endurance
	default:
		return Agility
	}
}

// Set holds the five base trait values of an animal.
type Set [Count]int

// Roll generates a trait set for the given category. The primary trait
// rolls in [primaryMin, primaryMax] and is floored at floor; the rest roll
// in [stdMin, stdMax].
func Roll(rng *rand.Rand, cat Category, stdMin, stdMax, primaryMin, primaryMax, floor int) Set {
	var s Set
	for t := Trait(0); t < Count; t++ {
		s[t] = stdMin + rng.Intn(stdMax-stdMin+1)
	}
	primary := cat.Primary()
	s[primary] = primaryMin + rng.Intn(primaryMax-primaryMin+1)
	if s[primary] < floor {
		s[primary] = floor
	}
	return s
}

// Get returns the base value of a trait.
func (s Set) Get(t Trait) int {
	return s[t]
}

// Validate checks every trait against the allowed ranges.
func (s Set) Validate(cat Category, stdMin, stdMax, primaryMin, primaryMax int) error {
	primary := cat.Primary()
	for t := Trait(0); t < Count; t++ {
		lo, hi := stdMin, stdMax
		if t == primary {
			lo, hi = primaryMin, primaryMax
		}
		if s[t] < lo || s[t] > hi {
			return fmt.Errorf("traits: %s value %d outside [%d, %d]", t, s[t], lo, hi)
		}
	}
	return nil
}
