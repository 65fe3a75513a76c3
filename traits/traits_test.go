package traits

import (
	"math/rand"
	"testing"
)

func TestPrimary(t *testing.T) {
	cases := []struct {
		cat  Category
		want Trait
	}{
		{Herbivore, Agility},
		{Carnivore, Strength},
		{Omnivore, Endurance},
	}
	for _, c := range cases {
		if got := c.cat.Primary(); got != c.want {
			t.Errorf("%s.Primary() = %s, want %s", c.cat, got, c.want)
		}
	}
}

func TestRollRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		for _, cat := range []Category{Herbivore, Carnivore, Omnivore} {
			s := Roll(rng, cat, 10, 70, 30, 80, 40)
			primary := cat.Primary()
			for tr := Trait(0); tr < Count; tr++ {
				v := s.Get(tr)
				if tr == primary {
					if v < 40 || v > 80 {
						t.Fatalf("%s primary %s = %d, want [40, 80]", cat, tr, v)
					}
					continue
				}
				if v < 10 || v > 70 {
					t.Fatalf("%s %s = %d, want [10, 70]", cat, tr, v)
				}
			}
		}
	}
}

func TestRollFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// With floor above the primary max, every roll is clamped up.
	for i := 0; i < 50; i++ {
		s := Roll(rng, Carnivore, 10, 70, 30, 50, 60)
		if got := s.Get(Strength); got != 60 {
			t.Fatalf("floored primary = %d, want 60", got)
		}
	}
}

func TestValidate(t *testing.T) {
	s := Set{50, 45, 30, 20, 15}
	if err := s.Validate(Carnivore, 10, 70, 30, 80); err != nil {
		t.Errorf("valid set rejected: %v", err)
	}

	bad := Set{5, 45, 30, 20, 15}
	if err := bad.Validate(Carnivore, 10, 70, 30, 80); err == nil {
		t.Error("out-of-range Strength accepted")
	}
}

func TestParse(t *testing.T) {
	for tr := Trait(0); tr < Count; tr++ {
		got, err := Parse(tr.String())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tr.String(), err)
		}
		if got != tr {
			t.Errorf("Parse(%q) = %v, want %v", tr.String(), got, tr)
		}
	}
	if _, err := Parse("Luck"); err == nil {
		t.Error("Parse accepted an unknown trait name")
	}
}
