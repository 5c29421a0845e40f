// Package pinkfile implements the binary image-stream and SOM-file formats
// shared with external tooling: little-endian int32 headers followed by a
// flat float32 payload.
package pinkfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/voievodin/rotsom/imagebank"
)

// ImageStreamHeader is the fixed header of the image-stream file format:
// numberOfImages, numberOfChannels, height, width, each a little-endian
// int32.
type ImageStreamHeader struct {
	NumberOfImages   int32
	NumberOfChannels int32
	Height           int32
	Width            int32
}

// ImageStreamReader yields one image at a time from a binary image-stream
// file, in channel-major row-major order, satisfying the ImageSource
// interface the Trainer consumes.
type ImageStreamReader struct {
	r      io.Reader
	closer io.Closer
	header ImageStreamHeader
	read   int32
}

// OpenImageStream opens path and reads its header. The caller must Close it
// when done.
func OpenImageStream(path string) (*ImageStreamReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}
	reader, err := NewImageStreamReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	reader.closer = f
	return reader, nil
}

// NewImageStreamReader reads the header from r and returns a reader ready
// to yield images via Next.
func NewImageStreamReader(r io.Reader) (*ImageStreamReader, error) {
	var header ImageStreamHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: reading image stream header: %v", ErrIO, err)
	}
	return &ImageStreamReader{r: r, header: header}, nil
}

// Header returns the parsed image-stream header.
func (s *ImageStreamReader) Header() ImageStreamHeader { return s.header }

// Next reads and returns the next image, or ErrNoImagesLeft once the
// declared image count has been consumed.
func (s *ImageStreamReader) Next() (imagebank.Image, error) {
	if s.read >= s.header.NumberOfImages {
		return imagebank.Image{}, ErrNoImagesLeft
	}
	n := int(s.header.NumberOfChannels) * int(s.header.Height) * int(s.header.Width)
	data := make([]float32, n)
	if err := binary.Read(s.r, binary.LittleEndian, data); err != nil {
		return imagebank.Image{}, fmt.Errorf("%w: reading image %d: %v", ErrIO, s.read, err)
	}
	s.read++
	return imagebank.Image{
		Channels: int(s.header.NumberOfChannels),
		H:        int(s.header.Height),
		W:        int(s.header.Width),
		Data:     data,
	}, nil
}

// Close releases the underlying file, if any.
func (s *ImageStreamReader) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// WriteImageStream writes a full image-stream file in one call: the header
// followed by numberOfImages*numberOfChannels*height*width float32 values.
func WriteImageStream(w io.Writer, numberOfChannels, height, width int, images [][]float32) error {
	header := ImageStreamHeader{
		NumberOfImages:   int32(len(images)),
		NumberOfChannels: int32(numberOfChannels),
		Height:           int32(height),
		Width:            int32(width),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("%w: writing image stream header: %v", ErrIO, err)
	}
	expected := numberOfChannels * height * width
	for i, img := range images {
		if len(img) != expected {
			return fmt.Errorf("%w: image %d has %d elements, want %d", ErrDimensionMismatch, i, len(img), expected)
		}
		if err := binary.Write(w, binary.LittleEndian, img); err != nil {
			return fmt.Errorf("%w: writing image %d: %v", ErrIO, i, err)
		}
	}
	return nil
}
