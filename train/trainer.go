// Package train orchestrates the per-image generate -> match -> update
// training step and owns the timing accumulators of a training run. Each
// step allocates a fresh rotation bank and best-match result; no scratch
// buffers are kept between steps.
package train

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/voievodin/rotsom/bestmatch"
	"github.com/voievodin/rotsom/imagebank"
	"github.com/voievodin/rotsom/layout"
	"github.com/voievodin/rotsom/pinkfile"
	"github.com/voievodin/rotsom/som"
)

// ImageSource is the external image-iterator collaborator: Next yields one
// (Channels,H,W) image at a time and returns an error satisfying
// errors.Is(err, pinkfile.ErrNoImagesLeft) once the stream is exhausted.
// Any other error is fatal and aborts Run immediately.
type ImageSource interface {
	Next() (imagebank.Image, error)
}

// CheckpointWriter persists a SOM snapshot at a configured progress
// boundary. Any error it returns is fatal.
type CheckpointWriter interface {
	Write(s *som.SOM) error
}

// Config holds the subset of the recognised configuration options the
// Trainer itself consumes. It is owned and supplied by the caller, never
// read from disk by this package.
type Config struct {
	NumIter           int
	Rotations         int
	UseFlip           bool
	Interpolation     imagebank.Interpolation
	Damping           float64
	MaxUpdateDistance float64
	Workers           int
	// CheckpointEvery, if > 0, triggers a checkpoint write every N
	// training steps (across the whole run, not per epoch).
	CheckpointEvery int
}

func (c Config) flipFactor() int {
	if c.UseFlip {
		return 2
	}
	return 1
}

func (c Config) validate() error {
	if c.NumIter <= 0 {
		return fmt.Errorf("%w: numIter must be positive, got %d", ErrInvariantViolation, c.NumIter)
	}
	if c.Rotations <= 0 {
		return fmt.Errorf("%w: numberOfRotations must be positive, got %d", ErrInvariantViolation, c.Rotations)
	}
	return nil
}

// Trainer drives the SOM training loop: for every image, generate its
// rotation/flip bank, find the best-matching neuron, and pull its
// neighborhood toward the bank. The SOM is a pure data container; Trainer
// owns the configuration and the neighborhood/scratch state around it.
type Trainer struct {
	som          *som.SOM
	images       ImageSource
	cfg          Config
	neighborhood layout.Neighborhood
	checkpoint   CheckpointWriter
	logger       *slog.Logger

	state state
	steps int

	Transform time.Duration
	Distance  time.Duration
	Update    time.Duration
}

// New constructs a Trainer in the Fresh state over an already-initialized
// SOM (initialization happens once, inside som.New, before the Trainer
// ever sees it).
func New(s *som.SOM, images ImageSource, cfg Config, neighborhood layout.Neighborhood, checkpoint CheckpointWriter, logger *slog.Logger) (*Trainer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: som must not be nil", ErrInvariantViolation)
	}
	if images == nil {
		return nil, fmt.Errorf("%w: image source must not be nil", ErrInvariantViolation)
	}
	if neighborhood == nil {
		return nil, fmt.Errorf("%w: neighborhood functor must not be nil", ErrInvariantViolation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Trainer{
		som:          s,
		images:       images,
		cfg:          cfg,
		neighborhood: neighborhood,
		checkpoint:   checkpoint,
		logger:       logger,
		state:        Fresh,
	}, nil
}

// State reports the Trainer's current lifecycle state.
func (t *Trainer) State() state { return t.state }

// Run executes up to cfg.NumIter epochs over the image source, one
// training step per image: transform, then match, then update, each a
// complete barrier before the next begins. Exhaustion of the image source
// ends the current epoch early; the next epoch calls Next again, so a
// source that is not restarted between epochs makes every later epoch end
// at once (restarting it is the caller's responsibility). Run returns when
// ctx is cancelled or all epochs complete. Any other error
// from a stage is fatal and returned immediately; the SOM is guaranteed
// to reflect only whole, completed steps.
func (t *Trainer) Run(ctx context.Context) error {
	if err := t.advance(Running); err != nil {
		return err
	}
	defer func() {
		_ = t.advance(Finished)
	}()

	for epoch := 0; epoch < t.cfg.NumIter; epoch++ {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			img, err := t.images.Next()
			if err != nil {
				if errors.Is(err, pinkfile.ErrNoImagesLeft) {
					break
				}
				return fmt.Errorf("train: reading next image: %w", err)
			}

			if err := t.step(ctx, img); err != nil {
				return err
			}
			t.steps++

			if t.checkpoint != nil && t.cfg.CheckpointEvery > 0 && t.steps%t.cfg.CheckpointEvery == 0 {
				if err := t.checkpoint.Write(t.som); err != nil {
					return fmt.Errorf("train: writing checkpoint: %w", err)
				}
				t.logger.Info("checkpoint written", "step", t.steps, "epoch", epoch)
			}
		}
	}

	if t.checkpoint != nil {
		if err := t.checkpoint.Write(t.som); err != nil {
			return fmt.Errorf("train: writing final checkpoint: %w", err)
		}
	}
	t.logger.Info("training finished", "steps", t.steps)
	return nil
}

func (t *Trainer) step(ctx context.Context, img imagebank.Image) error {
	start := time.Now()
	bank, err := imagebank.GenerateBank(img, t.cfg.Rotations, t.cfg.flipFactor(), t.som.NeuronDim, t.cfg.Interpolation)
	if err != nil {
		return fmt.Errorf("train: generating bank: %w", err)
	}
	t.Transform += time.Since(start)

	start = time.Now()
	result, err := bestmatch.BestMatch(ctx, bank, t.som.Neurons, t.som.NumNeurons(), t.som.Channels, t.som.NeuronDim, t.cfg.Workers)
	if err != nil {
		return fmt.Errorf("train: computing best match: %w", err)
	}
	t.Distance += time.Since(start)

	best := argmin(result.MinDist)

	start = time.Now()
	if err := t.som.UpdateNeighborhood(bank, best, result.BestRot, t.neighborhood, t.cfg.Damping, t.cfg.MaxUpdateDistance); err != nil {
		return fmt.Errorf("train: updating neighborhood: %w", err)
	}
	t.Update += time.Since(start)

	return nil
}

// argmin returns the index of the smallest value, breaking ties to the
// lowest index.
func argmin(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] < values[best] {
			best = i
		}
	}
	return best
}
