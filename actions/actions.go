// Package actions defines the closed set of actions an animal can take.
package actions

import "fmt"

// Type identifies an action. The order matches the brain's output layer;
// the softmax index of an output is its Type value.
type Type uint8

const (
	MoveNorth Type = iota
	MoveEast
	MoveSouth
	MoveWest
	Eat
	Drink
	Attack
	Rest

	// Count is the number of action types; keep it last.
	Count
)

// String returns the action's name.
func (t Type) String() string {
	switch t {
	case MoveNorth:
		return "MoveNorth"
	case MoveEast:
		return "MoveEast"
	case MoveSouth:
		return "MoveSouth"
	case MoveWest:
		return "MoveWest"
	case Eat:
		return "Eat"
	case Drink:
		return "Drink"
	case Attack:
		return "Attack"
	case Rest:
		return "Rest"
	default:
		return fmt.Sprintf("Action(%d)", uint8(t))
	}
}

// IsMovement reports whether the action moves the animal.
func (t Type) IsMovement() bool {
	return t <= MoveWest
}

// Delta returns the grid offset of a movement action. Non-movement
// actions return (0, 0). North is -Y.
func (t Type) Delta() (dx, dy int) {
	switch t {
	case MoveNorth:
		return 0, -1
	case MoveEast:
		return 1, 0
	case MoveSouth:
		return 0, 1
	case MoveWest:
		return -1, 0
	default:
		return 0, 0
	}
}

// CardinalDeltas lists the four neighbor offsets in N, E, S, W order.
// Sensor assembly and attack target selection both iterate in this order.
var CardinalDeltas = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
