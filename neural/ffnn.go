// Package neural provides the feedforward decision network for animals.
package neural

import (
	"fmt"
	"math"
	"math/rand"
)

// Network dimensions (compile-time constants for array sizing).
// NumInputs must match the sensor vector built in systems/sensors.go:
// 4 self vitals + 2 current-tile flags + 4 neighbors * 4 channels.
// NumOutputs must match actions.Count.
const (
	NumInputs  = 22
	NumHidden1 = 16
	NumHidden2 = 16
	NumOutputs = 8
)

// ParamCount is the length of the flattened parameter vector.
const ParamCount = NumHidden1*NumInputs + NumHidden1 +
	NumHidden2*NumHidden1 + NumHidden2 +
	NumOutputs*NumHidden2 + NumOutputs

// FFNN is a three-layer feedforward network: two ReLU hidden layers and
// a softmax output over the action set.
type FFNN struct {
	W1 [NumHidden1][NumInputs]float32
	B1 [NumHidden1]float32
	W2 [NumHidden2][NumHidden1]float32
	B2 [NumHidden2]float32
	W3 [NumOutputs][NumHidden2]float32
	B3 [NumOutputs]float32
}

// NewFFNN creates a randomly initialized network.
func NewFFNN(rng *rand.Rand) *FFNN {
	nn := &FFNN{}
	// Xavier initialization
	scale1 := float32(math.Sqrt(2.0 / float64(NumInputs)))
	scale2 := float32(math.Sqrt(2.0 / float64(NumHidden1)))
	scale3 := float32(math.Sqrt(2.0 / float64(NumHidden2)))

	for i := range nn.W1 {
		for j := range nn.W1[i] {
			nn.W1[i][j] = float32(rng.NormFloat64()) * scale1
		}
	}
	for i := range nn.W2 {
		for j := range nn.W2[i] {
			nn.W2[i][j] = float32(rng.NormFloat64()) * scale2
		}
	}
	for i := range nn.W3 {
		for j := range nn.W3[i] {
			nn.W3[i][j] = float32(rng.NormFloat64()) * scale3
		}
	}
	return nn
}

// Forward computes the action-probability distribution for a sensory
// vector. The input length must equal NumInputs.
func (nn *FFNN) Forward(inputs []float32) ([NumOutputs]float32, error) {
	var dist [NumOutputs]float32
	if len(inputs) != NumInputs {
		return dist, fmt.Errorf("neural: expected %d inputs, got %d", NumInputs, len(inputs))
	}

	var h1 [NumHidden1]float32
	for i := 0; i < NumHidden1; i++ {
		sum := nn.B1[i]
		for j := 0; j < NumInputs; j++ {
			sum += nn.W1[i][j] * inputs[j]
		}
		h1[i] = relu(sum)
	}

	var h2 [NumHidden2]float32
	for i := 0; i < NumHidden2; i++ {
		sum := nn.B2[i]
		for j := 0; j < NumHidden1; j++ {
			sum += nn.W2[i][j] * h1[j]
		}
		h2[i] = relu(sum)
	}

	var logits [NumOutputs]float32
	for i := 0; i < NumOutputs; i++ {
		sum := nn.B3[i]
		for j := 0; j < NumHidden2; j++ {
			sum += nn.W3[i][j] * h2[j]
		}
		logits[i] = sum
	}

	return softmax(logits), nil
}

// softmax normalizes logits with max-subtraction for numeric stability.
// If every exponential underflows to zero it falls back to a uniform
// distribution rather than dividing by zero.
func softmax(logits [NumOutputs]float32) [NumOutputs]float32 {
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}

	var dist [NumOutputs]float32
	var sum float32
	for i, l := range logits {
		e := float32(math.Exp(float64(l - maxLogit)))
		dist[i] = e
		sum += e
	}

	if sum == 0 {
		for i := range dist {
			dist[i] = 1.0 / NumOutputs
		}
		return dist
	}

	for i := range dist {
		dist[i] /= sum
	}
	return dist
}

// relu is the hidden-layer activation.
func relu(x float32) float32 {
	if x < 0 {
		return 0
	}
	return x
}

// Flatten serializes all parameters into one vector with a fixed total
// order: W1 row-major, B1, W2 row-major, B2, W3 row-major, B3. Both
// ends of the genetic pipeline depend on this order, since crossover
// cuts the vector positionally.
func (nn *FFNN) Flatten() []float32 {
	params := make([]float32, 0, ParamCount)
	for i := range nn.W1 {
		params = append(params, nn.W1[i][:]...)
	}
	params = append(params, nn.B1[:]...)
	for i := range nn.W2 {
		params = append(params, nn.W2[i][:]...)
	}
	params = append(params, nn.B2[:]...)
	for i := range nn.W3 {
		params = append(params, nn.W3[i][:]...)
	}
	params = append(params, nn.B3[:]...)
	return params
}

// Unflatten restores parameters from a flattened vector. A vector of
// the wrong length is an error, never truncated or padded.
func (nn *FFNN) Unflatten(params []float32) error {
	if len(params) != ParamCount {
		return fmt.Errorf("neural: expected %d parameters, got %d", ParamCount, len(params))
	}
	k := 0
	for i := range nn.W1 {
		k += copy(nn.W1[i][:], params[k:])
	}
	k += copy(nn.B1[:], params[k:])
	for i := range nn.W2 {
		k += copy(nn.W2[i][:], params[k:])
	}
	k += copy(nn.B2[:], params[k:])
	for i := range nn.W3 {
		k += copy(nn.W3[i][:], params[k:])
	}
	copy(nn.B3[:], params[k:])
	return nil
}

// FromParams builds a network from a flattened parameter vector.
func FromParams(params []float32) (*FFNN, error) {
	nn := &FFNN{}
	if err := nn.Unflatten(params); err != nil {
		return nil, err
	}
	return nn, nil
}

// Clone creates a deep copy of the network.
func (nn *FFNN) Clone() *FFNN {
	clone := *nn
	return &clone
}
