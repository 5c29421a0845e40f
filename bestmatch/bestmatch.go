// Package bestmatch computes, for every neuron, the minimal squared
// Euclidean distance to any entry of a rotation bank and the bank index
// that achieved it.
package bestmatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/voievodin/rotsom/imagebank"
)

// Result holds the per-neuron minimal squared distance and the bank index
// (best rotation) that achieved it.
type Result struct {
	MinDist []float64
	BestRot []int
}

// BestMatch compares every neuron in the flat neuron tensor against every
// entry of bank, recording the minimal squared distance and its argmin bank
// index per neuron. Distances are squared sums, not Euclidean norms; take a
// square root at the call site if a true norm is needed.
//
// Ties break to the lowest bank index: workers partitions the neuron range
// into contiguous, independently processed chunks, each of which scans the
// bank sequentially in index order, so parallelism never changes which bank
// entry wins a tie nor the floating-point reduction order within a neuron.
func BestMatch(ctx context.Context, bank imagebank.Bank, neurons []float32, numNeurons, channels, n, workers int) (Result, error) {
	entrySize := channels * n * n
	if len(neurons) != numNeurons*entrySize {
		return Result{}, fmt.Errorf("%w: neuron tensor has %d elements, want %d (numNeurons=%d, entrySize=%d)",
			ErrBadInput, len(neurons), numNeurons*entrySize, numNeurons, entrySize)
	}
	if bank.EntrySize() != entrySize {
		return Result{}, fmt.Errorf("%w: bank entry size %d does not match neuron entry size %d",
			ErrBadInput, bank.EntrySize(), entrySize)
	}
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}

	result := Result{
		MinDist: make([]float64, numNeurons),
		BestRot: make([]int, numNeurons),
	}

	if workers < 1 {
		workers = 1
	}
	if workers > numNeurons {
		workers = numNeurons
	}
	chunk := (numNeurons + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := 0; lo < numNeurons; lo += chunk {
		hi := lo + chunk
		if hi > numNeurons {
			hi = numNeurons
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				neuron := neurons[i*entrySize : (i+1)*entrySize]
				bestDist := squaredDistance(neuron, bank.Entry(0))
				bestRot := 0
				for j := 1; j < bank.Entries; j++ {
					d := squaredDistance(neuron, bank.Entry(j))
					if d < bestDist {
						bestDist = d
						bestRot = j
					}
				}
				result.MinDist[i] = bestDist
				result.BestRot[i] = bestRot
			}
		}(lo, hi)
	}
	wg.Wait()

	return result, nil
}

func squaredDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		diff := float64(a[i]) - float64(b[i])
		sum += diff * diff
	}
	return sum
}
