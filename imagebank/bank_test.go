package imagebank_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voievodin/rotsom/imagebank"
)

func constantImage(channels, h, w int, v float32) imagebank.Image {
	data := make([]float32, channels*h*w)
	for i := range data {
		data[i] = v
	}
	return imagebank.Image{Channels: channels, H: h, W: w, Data: data}
}

func TestGenerateBankShape(t *testing.T) {
	img := constantImage(2, 6, 6, 1.0)
	bank, err := imagebank.GenerateBank(img, 4, 2, 4, imagebank.Nearest)
	require.NoError(t, err)
	require.Equal(t, 8, bank.Entries)
	require.Equal(t, 2, bank.Channels)
	require.Equal(t, 4, bank.N)
	require.Len(t, bank.Data, 8*2*4*4)
}

func TestGenerateBankConstantImageUnaffectedByRotationOrFlip(t *testing.T) {
	img := constantImage(1, 4, 4, 1.0)
	bank, err := imagebank.GenerateBank(img, 3, 2, 2, imagebank.Nearest)
	require.NoError(t, err)

	for j := 0; j < bank.Entries; j++ {
		entry := bank.Entry(j)
		for _, v := range entry {
			require.Equal(t, float32(1.0), v)
		}
	}
}

func TestGenerateBankRejectsNonSquareInput(t *testing.T) {
	img := imagebank.Image{Channels: 1, H: 4, W: 5, Data: make([]float32, 20)}
	_, err := imagebank.GenerateBank(img, 1, 1, 2, imagebank.Nearest)
	require.ErrorIs(t, err, imagebank.ErrBadInput)
}

func TestGenerateBankRejectsTooSmallInput(t *testing.T) {
	img := constantImage(1, 2, 2, 0)
	_, err := imagebank.GenerateBank(img, 1, 1, 4, imagebank.Nearest)
	require.ErrorIs(t, err, imagebank.ErrBadInput)
}

func TestGenerateBankRejectsUnknownInterpolation(t *testing.T) {
	img := constantImage(1, 4, 4, 0)
	_, err := imagebank.GenerateBank(img, 1, 1, 4, imagebank.Interpolation(99))
	require.ErrorIs(t, err, imagebank.ErrUnsupportedVariant)
}

func TestGenerateBankFlipMirrorsVertically(t *testing.T) {
	// distinct rows so the flip is observable.
	img := imagebank.Image{
		Channels: 1, H: 4, W: 4,
		Data: []float32{
			0, 0, 0, 0,
			1, 1, 1, 1,
			2, 2, 2, 2,
			3, 3, 3, 3,
		},
	}
	bank, err := imagebank.GenerateBank(img, 1, 2, 4, imagebank.Nearest)
	require.NoError(t, err)

	original := bank.Entry(0)
	flipped := bank.Entry(1)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			require.Equal(t, original[y*4+x], flipped[(3-y)*4+x])
		}
	}
}
