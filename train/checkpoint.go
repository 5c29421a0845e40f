package train

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/voievodin/rotsom/som"
)

// StorageMode selects how FileCheckpointWriter names successive
// checkpoints.
type StorageMode int

const (
	// StorageOff disables checkpointing entirely; Write is a no-op.
	StorageOff StorageMode = iota
	// StorageOverwrite always writes to the same path, replacing the
	// previous checkpoint.
	StorageOverwrite
	// StorageKeep inserts an incrementing suffix before the extension of
	// every successive checkpoint, so none are lost.
	StorageKeep
)

// FileCheckpointWriter is the concrete, file-backed CheckpointWriter used
// outside of tests: it writes a SOM through the pinkfile codec at path,
// either overwriting it every time or keeping every generation under an
// incrementing suffix (path_1.bin, path_2.bin, ...).
type FileCheckpointWriter struct {
	Path string
	Mode StorageMode

	generation int
}

// Write persists s according to w.Mode. StorageOff makes Write a no-op,
// matching intermediateStorage=OFF disabling checkpoints entirely.
func (w *FileCheckpointWriter) Write(s *som.SOM) error {
	if w.Mode == StorageOff {
		return nil
	}
	path := w.Path
	if w.Mode == StorageKeep {
		w.generation++
		path = withSuffix(w.Path, w.generation)
	}
	if err := s.Write(path); err != nil {
		return fmt.Errorf("train: checkpoint write to %s: %w", path, err)
	}
	return nil
}

// Generations reports how many checkpoints have been written so far under
// StorageKeep; it is always 0 under StorageOverwrite or StorageOff.
func (w *FileCheckpointWriter) Generations() int { return w.generation }

// withSuffix inserts "_<n>" before path's extension.
func withSuffix(path string, n int) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_%d%s", base, n, ext)
}
