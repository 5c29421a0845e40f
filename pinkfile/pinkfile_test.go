package pinkfile_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voievodin/rotsom/pinkfile"
)

func TestSOMRoundTrip(t *testing.T) {
	header := pinkfile.SOMHeader{NumberOfChannels: 1, SomDims: []int32{3, 3}, NeuronDim: 2}
	numNeurons := 9
	data := make([]float32, 1*numNeurons*2*2)
	for i := range data {
		data[i] = float32(i) * 0.5
	}

	buf := &bytes.Buffer{}
	require.NoError(t, pinkfile.WriteSOM(buf, header, data))

	got, err := pinkfile.ReadSOM(bytes.NewReader(buf.Bytes()), header, numNeurons)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestSOMReadRejectsDimensionMismatch(t *testing.T) {
	header := pinkfile.SOMHeader{NumberOfChannels: 1, SomDims: []int32{3, 3}, NeuronDim: 2}
	data := make([]float32, 1*9*2*2)

	buf := &bytes.Buffer{}
	require.NoError(t, pinkfile.WriteSOM(buf, header, data))

	wrongHeader := pinkfile.SOMHeader{NumberOfChannels: 1, SomDims: []int32{4, 3}, NeuronDim: 2}
	_, err := pinkfile.ReadSOM(bytes.NewReader(buf.Bytes()), wrongHeader, 9)
	require.ErrorIs(t, err, pinkfile.ErrDimensionMismatch)
}

func TestImageStreamRoundTrip(t *testing.T) {
	images := [][]float32{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
	}
	buf := &bytes.Buffer{}
	require.NoError(t, pinkfile.WriteImageStream(buf, 1, 2, 2, images))

	reader, err := pinkfile.NewImageStreamReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	img1, err := reader.Next()
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2, 3, 4}, img1.Data)
	require.Equal(t, 1, img1.Channels)
	require.Equal(t, 2, img1.H)
	require.Equal(t, 2, img1.W)

	img2, err := reader.Next()
	require.NoError(t, err)
	require.Equal(t, []float32{5, 6, 7, 8}, img2.Data)

	_, err = reader.Next()
	require.ErrorIs(t, err, pinkfile.ErrNoImagesLeft)
}

func TestWriteImageStreamRejectsMismatchedImageSize(t *testing.T) {
	buf := &bytes.Buffer{}
	err := pinkfile.WriteImageStream(buf, 1, 2, 2, [][]float32{{1, 2, 3}})
	require.ErrorIs(t, err, pinkfile.ErrDimensionMismatch)
}
