package pinkfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// SOMHeader is the fixed-shape header of the SOM-file format: channel
// count, one int32 per SOM-size axis (width, height, and depth for 3D
// Cartesian layouts; a single side length for hexagonal), and the neuron
// edge length written twice (neuronDim, neuronDim), all little-endian.
type SOMHeader struct {
	NumberOfChannels int32
	SomDims          []int32
	NeuronDim        int32
}

// WriteSOM writes header followed by data (neuron-major, then channel-major,
// row-major within a channel). len(data) must equal
// NumberOfChannels*numNeurons*NeuronDim*NeuronDim for some numNeurons; the
// caller is responsible for that invariant, WriteSOM only serializes.
func WriteSOM(w io.Writer, header SOMHeader, data []float32) error {
	if err := binary.Write(w, binary.LittleEndian, header.NumberOfChannels); err != nil {
		return fmt.Errorf("%w: writing channel count: %v", ErrIO, err)
	}
	for _, d := range header.SomDims {
		if err := binary.Write(w, binary.LittleEndian, d); err != nil {
			return fmt.Errorf("%w: writing som dimension: %v", ErrIO, err)
		}
	}
	if err := binary.Write(w, binary.LittleEndian, header.NeuronDim); err != nil {
		return fmt.Errorf("%w: writing neuron dim: %v", ErrIO, err)
	}
	if err := binary.Write(w, binary.LittleEndian, header.NeuronDim); err != nil {
		return fmt.Errorf("%w: writing neuron dim: %v", ErrIO, err)
	}
	if err := binary.Write(w, binary.LittleEndian, data); err != nil {
		return fmt.Errorf("%w: writing som payload: %v", ErrIO, err)
	}
	return nil
}

// WriteSOMFile creates (or truncates) path and writes header and data to it.
func WriteSOMFile(path string, header SOMHeader, data []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrIO, path, err)
	}
	defer f.Close()
	return WriteSOM(f, header, data)
}

// ReadSOM reads a SOM-file header and payload, verifying every header int32
// equals the corresponding field of expected; any mismatch is
// ErrDimensionMismatch. numNeurons*NeuronDim*NeuronDim*NumberOfChannels
// float32 values are read as the payload.
func ReadSOM(r io.Reader, expected SOMHeader, numNeurons int) ([]float32, error) {
	var channels int32
	if err := binary.Read(r, binary.LittleEndian, &channels); err != nil {
		return nil, fmt.Errorf("%w: reading channel count: %v", ErrIO, err)
	}
	if channels != expected.NumberOfChannels {
		return nil, fmt.Errorf("%w: channel count %d != configured %d", ErrDimensionMismatch, channels, expected.NumberOfChannels)
	}

	for i, want := range expected.SomDims {
		var got int32
		if err := binary.Read(r, binary.LittleEndian, &got); err != nil {
			return nil, fmt.Errorf("%w: reading som dimension %d: %v", ErrIO, i, err)
		}
		if got != want {
			return nil, fmt.Errorf("%w: som dimension %d is %d, configured %d", ErrDimensionMismatch, i, got, want)
		}
	}

	var neuronDimA, neuronDimB int32
	if err := binary.Read(r, binary.LittleEndian, &neuronDimA); err != nil {
		return nil, fmt.Errorf("%w: reading neuron dim: %v", ErrIO, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &neuronDimB); err != nil {
		return nil, fmt.Errorf("%w: reading neuron dim: %v", ErrIO, err)
	}
	if neuronDimA != expected.NeuronDim || neuronDimB != expected.NeuronDim {
		return nil, fmt.Errorf("%w: neuron dim (%d,%d) != configured %d", ErrDimensionMismatch, neuronDimA, neuronDimB, expected.NeuronDim)
	}

	n := int(channels) * numNeurons * int(expected.NeuronDim) * int(expected.NeuronDim)
	data := make([]float32, n)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("%w: reading som payload: %v", ErrIO, err)
	}
	return data, nil
}

// ReadSOMFile opens path and reads a SOM file, applying the same dimension
// checks as ReadSOM.
func ReadSOMFile(path string, expected SOMHeader, numNeurons int) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}
	defer f.Close()
	return ReadSOM(f, expected, numNeurons)
}
