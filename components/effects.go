package components

import (
	"fmt"

	"github.com/pthm-cable/menagerie/traits"
)

// EffectKind identifies a timed status effect. The set is closed; each
// kind maps conditions evaluated in the cleanup phase to trait modifiers.
type EffectKind uint8

const (
	WellFed    EffectKind = iota // High Hunger: Strength buff
	Exhausted                    // Low Energy: Agility debuff
	Adrenaline                   // Low Health: Agility buff
)

// String returns the effect kind's name.
func (k EffectKind) String() string {
	switch k {
	case WellFed:
		return "WellFed"
	case Exhausted:
		return "Exhausted"
	case Adrenaline:
		return "Adrenaline"
	default:
		return fmt.Sprintf("EffectKind(%d)", uint8(k))
	}
}

// Effect is a timed additive trait modifier. Duration is in ticks and
// stays >= 1 while active; an effect at duration <= 0 is expired.
type Effect struct {
	Kind      EffectKind
	Duration  int
	Modifiers [traits.Count]int
}

// Tick decrements the remaining duration. Ticking an expired effect is
// a no-op; duration never goes negative.
func (e *Effect) Tick() {
	if e.Duration > 0 {
		e.Duration--
	}
}

// Expired reports whether the effect has run out.
func (e *Effect) Expired() bool {
	return e.Duration <= 0
}

// NewWellFed creates the high-Hunger Strength buff.
func NewWellFed(duration, bonus int) Effect {
	var m [traits.Count]int
	m[traits.Strength] = bonus
	return Effect{Kind: WellFed, Duration: duration, Modifiers: m}
}

// NewExhausted creates the low-Energy Agility debuff.
func NewExhausted(duration, penalty int) Effect {
	var m [traits.Count]int
	m[traits.Agility] = -penalty
	return Effect{Kind: Exhausted, Duration: duration, Modifiers: m}
}

// NewAdrenaline creates the low-Health Agility buff.
func NewAdrenaline(duration, bonus int) Effect {
	var m [traits.Count]int
	m[traits.Agility] = bonus
	return Effect{Kind: Adrenaline, Duration: duration, Modifiers: m}
}

// EffectList holds an animal's active effects. Only the cleanup phase
// mutates it.
type EffectList struct {
	Active []Effect
}

// Apply adds an effect, or refreshes the duration of an active effect
// of the same kind. Returns true when the effect was newly added.
func (l *EffectList) Apply(e Effect) (added bool) {
	for i := range l.Active {
		if l.Active[i].Kind == e.Kind {
			l.Active[i].Duration = e.Duration
			return false
		}
	}
	l.Active = append(l.Active, e)
	return true
}

// Has reports whether an effect of the given kind is active.
func (l *EffectList) Has(kind EffectKind) bool {
	for i := range l.Active {
		if l.Active[i].Kind == kind {
			return true
		}
	}
	return false
}

// TickAll decrements every active effect and drops the expired ones.
// Returns the number of effects removed.
func (l *EffectList) TickAll() (removed int) {
	kept := l.Active[:0]
	for i := range l.Active {
		l.Active[i].Tick()
		if l.Active[i].Expired() {
			removed++
			continue
		}
		kept = append(kept, l.Active[i])
	}
	l.Active = kept
	return removed
}

// ModifierSum returns the summed modifiers of all active effects for a
// trait.
func (l *EffectList) ModifierSum(t traits.Trait) int {
	sum := 0
	for i := range l.Active {
		sum += l.Active[i].Modifiers[t]
	}
	return sum
}
