package bestmatch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voievodin/rotsom/bestmatch"
	"github.com/voievodin/rotsom/imagebank"
)

func TestBestMatchPicksArgminAndSquaredDistance(t *testing.T) {
	// 2 neurons, bank of 3 entries, 1 channel, 1x1 "image".
	bank := imagebank.Bank{Entries: 3, Channels: 1, N: 1, Data: []float32{0, 1, 3}}
	neurons := []float32{2, 10} // neuron0=2, neuron1=10

	res, err := bestmatch.BestMatch(context.Background(), bank, neurons, 2, 1, 1, 1)
	require.NoError(t, err)

	// neuron0=2: dists to {0,1,3} = {4,1,1} -> min=1 at first occurrence index 1
	require.Equal(t, 1.0, res.MinDist[0])
	require.Equal(t, 1, res.BestRot[0])

	// neuron1=10: dists = {100,81,49} -> min=49 at index 2
	require.Equal(t, 49.0, res.MinDist[1])
	require.Equal(t, 2, res.BestRot[1])
}

func TestBestMatchTieBreaksToLowestIndex(t *testing.T) {
	bank := imagebank.Bank{Entries: 3, Channels: 1, N: 1, Data: []float32{5, 5, 5}}
	neurons := []float32{0}

	res, err := bestmatch.BestMatch(context.Background(), bank, neurons, 1, 1, 1, 4)
	require.NoError(t, err)
	require.Equal(t, 0, res.BestRot[0])
}

func TestBestMatchIsDeterministicAcrossWorkerCounts(t *testing.T) {
	channels, n := 2, 3
	numNeurons := 37
	entrySize := channels * n * n

	neurons := make([]float32, numNeurons*entrySize)
	for i := range neurons {
		neurons[i] = float32((i*7 + 3) % 11)
	}
	bankData := make([]float32, 5*entrySize)
	for i := range bankData {
		bankData[i] = float32((i*13 + 1) % 9)
	}
	bank := imagebank.Bank{Entries: 5, Channels: channels, N: n, Data: bankData}

	serial, err := bestmatch.BestMatch(context.Background(), bank, neurons, numNeurons, channels, n, 1)
	require.NoError(t, err)

	parallel, err := bestmatch.BestMatch(context.Background(), bank, neurons, numNeurons, channels, n, 8)
	require.NoError(t, err)

	require.Equal(t, serial.MinDist, parallel.MinDist)
	require.Equal(t, serial.BestRot, parallel.BestRot)
}

func TestBestMatchRejectsMismatchedNeuronTensor(t *testing.T) {
	bank := imagebank.Bank{Entries: 1, Channels: 1, N: 1, Data: []float32{0}}
	_, err := bestmatch.BestMatch(context.Background(), bank, []float32{1, 2}, 1, 1, 1, 1)
	require.ErrorIs(t, err, bestmatch.ErrBadInput)
}

func TestBestMatchRespectsCancelledContext(t *testing.T) {
	bank := imagebank.Bank{Entries: 1, Channels: 1, N: 1, Data: []float32{0}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bestmatch.BestMatch(ctx, bank, []float32{1}, 1, 1, 1, 1)
	require.ErrorIs(t, err, context.Canceled)
}
