package som

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"golang.org/x/exp/rand"
)

// Initializer populates a freshly-constructed SOM's neuron tensor. It runs
// exactly once, inside New, before any training update.
type Initializer interface {
	Init(s *SOM) error
}

// Zero fills the neuron tensor with 0, the default flat baseline.
type Zero struct{}

func (Zero) Init(s *SOM) error {
	for i := range s.Neurons {
		s.Neurons[i] = 0
	}
	return nil
}

// Random fills the neuron tensor with uniform [0,1) draws from a seeded
// PRNG; the same seed always yields a bit-identical tensor.
type Random struct {
	Seed int64
}

func (r Random) Init(s *SOM) error {
	u := distuv.Uniform{Min: 0, Max: 1, Src: rand.NewSource(uint64(r.Seed))}
	for i := range s.Neurons {
		s.Neurons[i] = float32(u.Rand())
	}
	return nil
}

// RandomPreferredDirection is Random followed by an identity-ridge prior:
// for every neuron and channel, the main diagonal of the NxN prototype is
// set to 1.
type RandomPreferredDirection struct {
	Seed int64
}

func (r RandomPreferredDirection) Init(s *SOM) error {
	if err := (Random{Seed: r.Seed}).Init(s); err != nil {
		return err
	}
	n := s.NeuronDim
	for i := 0; i < s.NumNeurons(); i++ {
		neuron := s.Neuron(i)
		for c := 0; c < s.Channels; c++ {
			base := c * n * n
			for d := 0; d < n; d++ {
				neuron[base+d*n+d] = 1
			}
		}
	}
	return nil
}

// FromFile loads the neuron tensor from an existing SOM file; the on-disk
// header must match the constructed geometry exactly, or loading fails
// with pinkfile.ErrDimensionMismatch (via SOM.Read).
type FromFile struct {
	Path string
}

func (f FromFile) Init(s *SOM) error {
	if f.Path == "" {
		return fmt.Errorf("%w: FromFile requires a non-empty path", ErrBadConfig)
	}
	return s.Read(f.Path)
}
