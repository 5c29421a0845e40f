// Package imagebank generates the rotation/flip bank of oriented crops the
// SOM trainer matches against its neuron tensor.
package imagebank

// Image is a dense rank-3 tensor with semantic shape (Channels, H, W),
// stored channel-major, row-major: Data[c*H*W + y*W + x].
type Image struct {
	Channels int
	H, W     int
	Data     []float32
}

// At returns the value of channel c at column x, row y.
func (img Image) At(c, x, y int) float32 {
	return img.Data[c*img.H*img.W+y*img.W+x]
}

// Interpolation selects the resampling kernel used when rotating an image.
type Interpolation int

const (
	// Nearest is nearest-neighbor resampling with a +0.1 centring nudge
	// before truncation.
	Nearest Interpolation = iota
	// Bilinear is four-tap bilinear resampling with no out-of-bounds guard;
	// callers must ensure the crop margin is large enough that every tap
	// stays inside the source (H_in >= N + sqrt(2)*N/2 is sufficient).
	Bilinear
)

func (i Interpolation) String() string {
	switch i {
	case Nearest:
		return "nearest_neighbor"
	case Bilinear:
		return "bilinear"
	default:
		return "undefined"
	}
}

// Bank is the (R*F, Channels, N, N) tensor of oriented image crops: the
// first R entries are rotated originals, the next R (if F==2) are the
// rotated-then-flipped versions, each stored channel-major row-major like
// a neuron.
type Bank struct {
	Entries  int // R*F
	Channels int
	N        int
	Data     []float32
}

// EntrySize returns the number of float32 per bank entry (Channels*N*N).
func (b Bank) EntrySize() int {
	return b.Channels * b.N * b.N
}

// Entry returns the flat slice for bank entry j.
func (b Bank) Entry(j int) []float32 {
	sz := b.EntrySize()
	return b.Data[j*sz : (j+1)*sz]
}
