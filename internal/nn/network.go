// Package nn implements the small feed-forward networks used to approximate
// the metric fields: sigmoid hidden layers, linear output, parameters exposed
// as a flat vector for the optimizer.
package nn

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
)

// Layer is a fully-connected layer.
type Layer struct {
	Weights [][]float64 `json:"weights"` // [out][in]
	Biases  []float64   `json:"biases"`
}

// Network is a feed-forward network with sigmoid hidden layers and a linear
// output layer.
type Network struct {
	Layers []Layer `json:"layers"`
}

// New creates a network with Xavier initialization. sizes lists the neuron
// counts per layer, e.g. [1, 10, 1].
func New(sizes []int, rng *rand.Rand) *Network {
	n := &Network{Layers: make([]Layer, len(sizes)-1)}
	for i := 0; i < len(sizes)-1; i++ {
		in, out := sizes[i], sizes[i+1]
		scale := math.Sqrt(1.0 / float64(in))
		l := Layer{
			Weights: make([][]float64, out),
			Biases:  make([]float64, out),
		}
		for j := 0; j < out; j++ {
			l.Weights[j] = make([]float64, in)
			for k := 0; k < in; k++ {
				l.Weights[j][k] = rng.NormFloat64() * scale
			}
		}
		n.Layers[i] = l
	}
	return n
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Forward computes the network output for one input vector.
func (n *Network) Forward(input []float64) []float64 {
	x := input
	for li := range n.Layers {
		l := &n.Layers[li]
		out := make([]float64, len(l.Weights))
		for j := range l.Weights {
			sum := l.Biases[j]
			for k, w := range l.Weights[j] {
				sum += w * x[k]
			}
			if li < len(n.Layers)-1 {
				sum = sigmoid(sum)
			}
			out[j] = sum
		}
		x = out
	}
	return x
}

// Eval1 evaluates a scalar-to-scalar network.
func (n *Network) Eval1(r float64) float64 {
	return n.Forward([]float64{r})[0]
}

// NumParams returns the total number of trainable parameters.
func (n *Network) NumParams() int {
	total := 0
	for _, l := range n.Layers {
		for _, row := range l.Weights {
			total += len(row)
		}
		total += len(l.Biases)
	}
	return total
}

// Params flattens all weights and biases into a single vector.
func (n *Network) Params() []float64 {
	p := make([]float64, 0, n.NumParams())
	for _, l := range n.Layers {
		for _, row := range l.Weights {
			p = append(p, row...)
		}
		p = append(p, l.Biases...)
	}
	return p
}

// SetParams writes a flat parameter vector back into the layers.
func (n *Network) SetParams(p []float64) error {
	if len(p) != n.NumParams() {
		return fmt.Errorf("nn: parameter count %d does not match network size %d", len(p), n.NumParams())
	}
	idx := 0
	for li := range n.Layers {
		l := &n.Layers[li]
		for j := range l.Weights {
			copy(l.Weights[j], p[idx:idx+len(l.Weights[j])])
			idx += len(l.Weights[j])
		}
		copy(l.Biases, p[idx:idx+len(l.Biases)])
		idx += len(l.Biases)
	}
	return nil
}

// Save writes the network weights as JSON.
func (n *Network) Save(path string) error {
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads network weights from JSON.
func Load(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var n Network
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("nn: decode %s: %w", path, err)
	}
	return &n, nil
}
