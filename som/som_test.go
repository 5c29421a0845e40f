package som_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voievodin/rotsom/imagebank"
	"github.com/voievodin/rotsom/layout"
	"github.com/voievodin/rotsom/som"
)

func newTestSOM(t *testing.T, init som.Initializer) *som.SOM {
	t.Helper()
	geometry, err := layout.NewCartesian([]int{3, 3}, []bool{false, false})
	require.NoError(t, err)
	s, err := som.New(geometry, []int32{3, 3}, 1, 2, init)
	require.NoError(t, err)
	return s
}

func TestZeroInit(t *testing.T) {
	s := newTestSOM(t, som.Zero{})
	for _, v := range s.Neurons {
		require.Equal(t, float32(0), v)
	}
}

func TestRandomInitIsSeedDeterministic(t *testing.T) {
	a := newTestSOM(t, som.Random{Seed: 42})
	b := newTestSOM(t, som.Random{Seed: 42})
	require.Equal(t, a.Neurons, b.Neurons)

	c := newTestSOM(t, som.Random{Seed: 43})
	require.NotEqual(t, a.Neurons, c.Neurons)

	for _, v := range a.Neurons {
		require.GreaterOrEqual(t, v, float32(0))
		require.Less(t, v, float32(1))
	}
}

func TestRandomPreferredDirectionSetsDiagonal(t *testing.T) {
	s := newTestSOM(t, som.RandomPreferredDirection{Seed: 7})
	for i := 0; i < s.NumNeurons(); i++ {
		neuron := s.Neuron(i)
		for d := 0; d < s.NeuronDim; d++ {
			require.Equal(t, float32(1), neuron[d*s.NeuronDim+d])
		}
	}
}

func TestUpdateNeighborhoodAlphaZeroIsIdentity(t *testing.T) {
	s := newTestSOM(t, som.Random{Seed: 1})
	before := append([]float32(nil), s.Neurons...)

	neigh, err := layout.NewGaussian(1.0)
	require.NoError(t, err)
	bank := imagebank.Bank{Entries: 1, Channels: 1, N: 2, Data: []float32{9, 9, 9, 9}}
	bestRot := make([]int, s.NumNeurons())

	require.NoError(t, s.UpdateNeighborhood(bank, 4, bestRot, neigh, 0, -1))
	require.Equal(t, before, s.Neurons)
}

// unitAtWinner is a neighborhood stub whose weight is exactly 1 at the
// winning neuron's own distance (0) and 0 everywhere else, isolating the
// "alpha=1, w=1 for the winner" invariant from any particular neighborhood
// function's shape at d=0.
type unitAtWinner struct{}

func (unitAtWinner) Weight(d float64) float64 {
	if d == 0 {
		return 1
	}
	return 0
}

func TestUpdateNeighborhoodAlphaOneCopiesWinner(t *testing.T) {
	s := newTestSOM(t, som.Zero{})

	bank := imagebank.Bank{Entries: 1, Channels: 1, N: 2, Data: []float32{1, 2, 3, 4}}
	bestRot := make([]int, s.NumNeurons())

	require.NoError(t, s.UpdateNeighborhood(bank, 4, bestRot, unitAtWinner{}, 1, -1))
	require.Equal(t, []float32{1, 2, 3, 4}, s.Neuron(4))

	for i := 0; i < s.NumNeurons(); i++ {
		if i == 4 {
			continue
		}
		for _, v := range s.Neuron(i) {
			require.Equal(t, float32(0), v)
		}
	}
}

func TestUpdateNeighborhoodRespectsMaxUpdateDistance(t *testing.T) {
	s := newTestSOM(t, som.Zero{})
	neigh, err := layout.NewGaussian(1.0)
	require.NoError(t, err)

	bank := imagebank.Bank{Entries: 1, Channels: 1, N: 2, Data: []float32{1, 1, 1, 1}}
	bestRot := make([]int, s.NumNeurons())

	require.NoError(t, s.UpdateNeighborhood(bank, 0, bestRot, neigh, 1, 0.5))
	// only neuron 0 itself (distance 0 < 0.5) should have moved.
	for i := 1; i < s.NumNeurons(); i++ {
		for _, v := range s.Neuron(i) {
			require.Equal(t, float32(0), v)
		}
	}
	// with damping 1 and a zero start, neuron 0 moves to exactly w = Gaussian(0).
	for _, v := range s.Neuron(0) {
		require.Equal(t, float32(neigh.Weight(0)), v)
	}
}

func TestUpdateNeighborhoodIncrementsCounter(t *testing.T) {
	s := newTestSOM(t, som.Zero{})
	neigh, err := layout.NewGaussian(1.0)
	require.NoError(t, err)
	bank := imagebank.Bank{Entries: 1, Channels: 1, N: 2, Data: []float32{1, 1, 1, 1}}
	bestRot := make([]int, s.NumNeurons())

	require.NoError(t, s.UpdateNeighborhood(bank, 3, bestRot, neigh, 1, -1))
	require.NoError(t, s.UpdateNeighborhood(bank, 3, bestRot, neigh, 1, -1))
	require.Equal(t, 2, s.UpdateCounter[3])
	require.Equal(t, 0, s.UpdateCounter[0])
}

func TestNewRejectsBadConfig(t *testing.T) {
	geometry, err := layout.NewCartesian([]int{2}, []bool{false})
	require.NoError(t, err)

	_, err = som.New(geometry, []int32{2}, 0, 2, som.Zero{})
	require.ErrorIs(t, err, som.ErrBadConfig)

	_, err = som.New(geometry, []int32{2}, 1, 0, som.Zero{})
	require.ErrorIs(t, err, som.ErrBadConfig)
}

func TestSOMFileRoundTrip(t *testing.T) {
	s := newTestSOM(t, som.Random{Seed: 99})
	path := t.TempDir() + "/som.bin"
	require.NoError(t, s.Write(path))

	s2 := newTestSOM(t, som.Zero{})
	require.NoError(t, s2.Read(path))
	require.Equal(t, s.Neurons, s2.Neurons)
}
