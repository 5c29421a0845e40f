package imagebank

import "math"

// rotateAndCropNearest renders one channel's N x N crop of a rotation by
// alpha radians of a (hIn x wIn) source channel, nearest-neighbor sampled.
// dest has length n*n, row-major (y*n+x). The +0.1 offset before
// truncation is a deliberate centring nudge; reproduce it exactly.
func rotateAndCropNearest(src []float32, hIn, wIn, n int, marginW, marginH int, alpha float64) []float32 {
	dest := make([]float32, n*n)
	cosA, sinA := math.Cos(alpha), math.Sin(alpha)
	x0 := float64(wIn-1) * 0.5
	y0 := float64(hIn-1) * 0.5

	for y2 := 0; y2 < n; y2++ {
		for x2 := 0; x2 < n; x2++ {
			fx := float64(x2+marginW) - x0
			fy := float64(y2+marginH) - y0

			x1 := fx*cosA + fy*sinA + x0 + 0.1
			if x1 < 0 || x1 >= float64(wIn) {
				dest[y2*n+x2] = 0
				continue
			}
			y1 := fy*cosA - fx*sinA + y0 + 0.1
			if y1 < 0 || y1 >= float64(hIn) {
				dest[y2*n+x2] = 0
				continue
			}
			dest[y2*n+x2] = src[int(y1)*wIn+int(x1)]
		}
	}
	return dest
}

// rotateAndCropBilinear is rotateAndCropNearest's bilinear counterpart: no
// out-of-bounds guard, four-tap blend. Callers must ensure the crop margin
// is large enough that the sample reach never leaves the source bounds
// (H_in >= N + sqrt(2)*N/2 is sufficient).
func rotateAndCropBilinear(src []float32, hIn, wIn, n int, marginW, marginH int, alpha float64) []float32 {
	dest := make([]float32, n*n)
	cosA, sinA := math.Cos(alpha), math.Sin(alpha)
	x0 := float64(wIn-1) * 0.5
	y0 := float64(hIn-1) * 0.5

	for y2 := 0; y2 < n; y2++ {
		for x2 := 0; x2 < n; x2++ {
			fx := float64(x2+marginW) - x0
			fy := float64(y2+marginH) - y0

			x1 := fx*cosA + fy*sinA + x0
			y1 := fy*cosA - fx*sinA + y0

			ix1 := int(math.Floor(x1))
			iy1 := int(math.Floor(y1))
			ix1b := ix1 + 1
			iy1b := iy1 + 1

			rx1 := x1 - float64(ix1)
			ry1 := y1 - float64(iy1)
			cx1 := 1.0 - rx1
			cy1 := 1.0 - ry1

			v := cx1*cy1*float64(src[iy1*wIn+ix1]) +
				cx1*ry1*float64(src[iy1b*wIn+ix1]) +
				rx1*cy1*float64(src[iy1*wIn+ix1b]) +
				rx1*ry1*float64(src[iy1b*wIn+ix1b])
			dest[y2*n+x2] = float32(v)
		}
	}
	return dest
}

// flipVertical mirrors an n x n single-channel image across its horizontal
// centerline (row order reversed); pure index reversal, no resampling.
func flipVertical(src []float32, n int) []float32 {
	dest := make([]float32, n*n)
	for y := 0; y < n; y++ {
		copy(dest[y*n:(y+1)*n], src[(n-1-y)*n:(n-y)*n])
	}
	return dest
}
