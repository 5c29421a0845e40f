package imagebank

import (
	"fmt"
	"math"
)

// GenerateBank produces the R*F bank of oriented N x N crops of input, one
// per (rotation angle, flip) combination, each channel resampled
// independently. Angles are theta_k = 2*pi*k/R for k=0..R-1. If f==2 the
// second R entries are the flipped (mirrored across the horizontal
// centerline) versions of the first R; flip never resamples.
func GenerateBank(input Image, r, f, n int, interp Interpolation) (Bank, error) {
	if input.H != input.W {
		return Bank{}, fmt.Errorf("%w: input must be square, got %dx%d", ErrBadInput, input.H, input.W)
	}
	if input.H < n {
		return Bank{}, fmt.Errorf("%w: input edge %d smaller than neuron dimension %d", ErrBadInput, input.H, n)
	}
	if f != 1 && f != 2 {
		return Bank{}, fmt.Errorf("%w: flip factor must be 1 or 2, got %d", ErrBadInput, f)
	}
	if r <= 0 {
		return Bank{}, fmt.Errorf("%w: rotation count must be positive, got %d", ErrBadInput, r)
	}

	marginW := (input.W - n) / 2
	marginH := (input.H - n) / 2

	bank := Bank{
		Entries:  r * f,
		Channels: input.Channels,
		N:        n,
		Data:     make([]float32, r*f*input.Channels*n*n),
	}

	for k := 0; k < r; k++ {
		alpha := 2 * math.Pi * float64(k) / float64(r)
		entry := bank.Entry(k)
		for c := 0; c < input.Channels; c++ {
			src := input.Data[c*input.H*input.W : (c+1)*input.H*input.W]
			var rotated []float32
			switch interp {
			case Nearest:
				rotated = rotateAndCropNearest(src, input.H, input.W, n, marginW, marginH, alpha)
			case Bilinear:
				rotated = rotateAndCropBilinear(src, input.H, input.W, n, marginW, marginH, alpha)
			default:
				return Bank{}, fmt.Errorf("%w: interpolation %v", ErrUnsupportedVariant, interp)
			}
			copy(entry[c*n*n:(c+1)*n*n], rotated)
		}
	}

	if f == 2 {
		for k := 0; k < r; k++ {
			src := bank.Entry(k)
			dst := bank.Entry(r + k)
			for c := 0; c < input.Channels; c++ {
				flipped := flipVertical(src[c*n*n:(c+1)*n*n], n)
				copy(dst[c*n*n:(c+1)*n*n], flipped)
			}
		}
	}

	return bank, nil
}
