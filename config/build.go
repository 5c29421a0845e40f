package config

import (
	"fmt"

	"github.com/voievodin/rotsom/imagebank"
	"github.com/voievodin/rotsom/layout"
	"github.com/voievodin/rotsom/som"
	"github.com/voievodin/rotsom/train"
)

// build turns a loaded Config into the concrete pieces train.New needs: a
// freshly initialized SOM, the neighborhood functor, the Trainer's own
// Config, and a checkpoint writer wired from IntermediateStorage. workers
// sets bestmatch's worker-pool size, which has no recognised option of its
// own. It exists to prove the recognised option surface actually produces
// a runnable trainer, not just a parsed struct; assembling a CLI around it
// is left to a future collaborator.
func build(cfg *Config, workers int) (*som.SOM, layout.Neighborhood, train.Config, *train.FileCheckpointWriter, error) {
	geometry, somDims, err := buildGeometry(cfg.Layout)
	if err != nil {
		return nil, nil, train.Config{}, nil, err
	}

	neighborhood, err := buildNeighborhood(cfg.Distribution)
	if err != nil {
		return nil, nil, train.Config{}, nil, err
	}

	init, err := buildInitializer(cfg.Init)
	if err != nil {
		return nil, nil, train.Config{}, nil, err
	}

	interp, err := buildInterpolation(cfg.Interpolation)
	if err != nil {
		return nil, nil, train.Config{}, nil, err
	}

	s, err := som.New(geometry, somDims, cfg.NumberOfChannels, cfg.NeuronDim, init)
	if err != nil {
		return nil, nil, train.Config{}, nil, fmt.Errorf("config: building som: %w", err)
	}

	mode, err := buildStorageMode(cfg.IntermediateStorage.Mode)
	if err != nil {
		return nil, nil, train.Config{}, nil, err
	}
	checkpoint := &train.FileCheckpointWriter{Path: cfg.ResultFilename, Mode: mode}

	trainCfg := train.Config{
		NumIter:           cfg.NumIter,
		Rotations:         cfg.Rotations.R,
		UseFlip:           cfg.Rotations.UseFlip,
		Interpolation:     interp,
		Damping:           cfg.Damping,
		MaxUpdateDistance: cfg.MaxUpdateDistance,
		Workers:           workers,
		CheckpointEvery:   checkpointEvery(cfg.IntermediateStorage),
	}

	return s, neighborhood, trainCfg, checkpoint, nil
}

func buildGeometry(cfg LayoutConfig) (layout.Geometry, []int32, error) {
	switch cfg.Kind {
	case "CARTESIAN":
		geometry, err := layout.NewCartesian(cfg.Dims, cfg.Periodic)
		if err != nil {
			return nil, nil, fmt.Errorf("config: building cartesian layout: %w", err)
		}
		somDims := make([]int32, len(cfg.Dims))
		for i, d := range cfg.Dims {
			somDims[i] = int32(d)
		}
		return geometry, somDims, nil
	case "HEXAGONAL":
		geometry, err := layout.NewHexagonal(cfg.HexSideLength)
		if err != nil {
			return nil, nil, fmt.Errorf("config: building hexagonal layout: %w", err)
		}
		return geometry, []int32{int32(cfg.HexSideLength)}, nil
	default:
		return nil, nil, fmt.Errorf("%w: unrecognised layout kind %q", ErrBadConfig, cfg.Kind)
	}
}

func buildNeighborhood(cfg DistributionConfig) (layout.Neighborhood, error) {
	switch cfg.Kind {
	case "GAUSSIAN":
		n, err := layout.NewGaussian(cfg.Sigma)
		if err != nil {
			return nil, fmt.Errorf("config: building gaussian neighborhood: %w", err)
		}
		return n, nil
	case "MEXICAN_HAT":
		n, err := layout.NewMexicanHat(cfg.Sigma)
		if err != nil {
			return nil, fmt.Errorf("config: building mexican hat neighborhood: %w", err)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: unrecognised distribution kind %q", ErrBadConfig, cfg.Kind)
	}
}

func buildInitializer(cfg InitConfig) (som.Initializer, error) {
	switch cfg.Kind {
	case "ZERO":
		return som.Zero{}, nil
	case "RANDOM":
		return som.Random{Seed: cfg.Seed}, nil
	case "RANDOM_WITH_PREFERRED_DIRECTION":
		return som.RandomPreferredDirection{Seed: cfg.Seed}, nil
	case "FILEINIT":
		return som.FromFile{Path: cfg.InitFilename}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognised init kind %q", ErrBadConfig, cfg.Kind)
	}
}

func buildInterpolation(kind string) (imagebank.Interpolation, error) {
	switch kind {
	case "NEAREST_NEIGHBOR":
		return imagebank.Nearest, nil
	case "BILINEAR":
		return imagebank.Bilinear, nil
	default:
		return 0, fmt.Errorf("%w: unrecognised interpolation %q", ErrBadConfig, kind)
	}
}

func buildStorageMode(mode string) (train.StorageMode, error) {
	switch mode {
	case "OFF":
		return train.StorageOff, nil
	case "OVERWRITE":
		return train.StorageOverwrite, nil
	case "KEEP":
		return train.StorageKeep, nil
	default:
		return 0, fmt.Errorf("%w: unrecognised intermediate storage mode %q", ErrBadConfig, mode)
	}
}

// checkpointEvery turns progressFactor into a step interval of
// int(1/progressFactor) steps (at least 1), so 0.1 checkpoints every 10
// steps; the interval does not depend on the number of images or epochs in
// the run. A non-positive factor or an OFF mode disables periodic
// checkpointing (0 means "none until the final, unconditional write").
func checkpointEvery(cfg IntermediateStorage) int {
	if cfg.Mode == "OFF" || cfg.ProgressFactor <= 0 {
		return 0
	}
	steps := int(1 / cfg.ProgressFactor)
	if steps < 1 {
		steps = 1
	}
	return steps
}
