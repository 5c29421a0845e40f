// Package som implements the SOM container: neuron tensor storage,
// geometry, initialization, persistence and the neighborhood update. It is
// a pure data container; it does not know about configuration or
// training orchestration, both of which are the Trainer's responsibility.
package som

import (
	"fmt"

	"github.com/voievodin/rotsom/imagebank"
	"github.com/voievodin/rotsom/layout"
	"github.com/voievodin/rotsom/pinkfile"
)

// SOM owns the neuron tensor and update-counter tensor of a trained map.
// Tensor dimensions never change after construction.
type SOM struct {
	Geometry  layout.Geometry
	SomDims   []int32 // geometry-specific dims, as written to/read from a SOM file header
	Channels  int
	NeuronDim int

	// Neurons is the flat tensor of shape (NumNeurons, Channels, NeuronDim,
	// NeuronDim), neuron-major, channel-major, row-major.
	Neurons []float32
	// UpdateCounter[i] counts how many times neuron i has won a match; it
	// is non-decreasing and bounded by the number of training steps.
	UpdateCounter []int
}

// New constructs a SOM over geometry with the given channel count and
// neuron edge length, running init (if non-nil) to populate the neuron
// tensor. somDims records the geometry's size header fields for later
// persistence through the format codec.
func New(geometry layout.Geometry, somDims []int32, channels, neuronDim int, init Initializer) (*SOM, error) {
	if geometry == nil {
		return nil, fmt.Errorf("%w: geometry must not be nil", ErrBadConfig)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: channels must be positive, got %d", ErrBadConfig, channels)
	}
	if neuronDim <= 0 {
		return nil, fmt.Errorf("%w: neuronDim must be positive, got %d", ErrBadConfig, neuronDim)
	}

	numNeurons := geometry.NumNeurons()
	s := &SOM{
		Geometry:      geometry,
		SomDims:       somDims,
		Channels:      channels,
		NeuronDim:     neuronDim,
		Neurons:       make([]float32, numNeurons*channels*neuronDim*neuronDim),
		UpdateCounter: make([]int, numNeurons),
	}

	if init != nil {
		if err := init.Init(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NumNeurons returns the total neuron count.
func (s *SOM) NumNeurons() int { return s.Geometry.NumNeurons() }

// EntrySize returns the number of float32 per neuron (Channels*NeuronDim^2).
func (s *SOM) EntrySize() int { return s.Channels * s.NeuronDim * s.NeuronDim }

// Neuron returns the flat slice of neuron i.
func (s *SOM) Neuron(i int) []float32 {
	sz := s.EntrySize()
	return s.Neurons[i*sz : (i+1)*sz]
}

// UpdateNeighborhood pulls every neuron within maxUpdateDistance of
// bestNeuron toward its individually preferred bank orientation
// (bestRot[i]), weighted by neigh and damped by damping, and credits
// bestNeuron's update counter. maxUpdateDistance<=0 means unlimited.
//
//	neuron[k] <- neuron[k] - (neuron[k] - bank[bestRot[i], k]) * w
//
// w=1 makes the winning neuron bitwise equal to its bank entry; w=0 leaves
// a neuron unchanged. A caller must never observe a partially updated
// tensor (see the train package's concurrency note): this loop runs to
// completion or returns an error before touching any neuron.
func (s *SOM) UpdateNeighborhood(bank imagebank.Bank, bestNeuron int, bestRot []int, neigh layout.Neighborhood, damping, maxUpdateDistance float64) error {
	entrySize := s.EntrySize()
	if bank.EntrySize() != entrySize {
		return fmt.Errorf("%w: bank entry size %d != neuron entry size %d", ErrDimensionMismatch, bank.EntrySize(), entrySize)
	}
	if bestNeuron < 0 || bestNeuron >= s.NumNeurons() {
		return fmt.Errorf("%w: bestNeuron %d out of range [0,%d)", ErrDimensionMismatch, bestNeuron, s.NumNeurons())
	}
	if len(bestRot) != s.NumNeurons() {
		return fmt.Errorf("%w: bestRot has %d elements, want %d", ErrDimensionMismatch, len(bestRot), s.NumNeurons())
	}

	for i := 0; i < s.NumNeurons(); i++ {
		d := s.Geometry.Distance(bestNeuron, i)
		if maxUpdateDistance > 0 && d >= maxUpdateDistance {
			continue
		}
		w := neigh.Weight(d) * damping
		entry := bank.Entry(bestRot[i])
		neuron := s.Neuron(i)
		for k := range neuron {
			neuron[k] -= (neuron[k] - entry[k]) * float32(w)
		}
	}
	s.UpdateCounter[bestNeuron]++
	return nil
}

// Write serializes the SOM through the pinkfile codec.
func (s *SOM) Write(path string) error {
	header := pinkfile.SOMHeader{
		NumberOfChannels: int32(s.Channels),
		SomDims:          s.SomDims,
		NeuronDim:        int32(s.NeuronDim),
	}
	return pinkfile.WriteSOMFile(path, header, s.Neurons)
}

// Read loads neuron data from a SOM file into s, verifying the on-disk
// header matches this SOM's geometry exactly; a mismatch is fatal.
func (s *SOM) Read(path string) error {
	header := pinkfile.SOMHeader{
		NumberOfChannels: int32(s.Channels),
		SomDims:          s.SomDims,
		NeuronDim:        int32(s.NeuronDim),
	}
	data, err := pinkfile.ReadSOMFile(path, header, s.NumNeurons())
	if err != nil {
		return err
	}
	s.Neurons = data
	return nil
}
