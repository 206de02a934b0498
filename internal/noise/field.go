package noise

import "image"

// GradientField renders a w x h gradient noise field into an 8-bit gray
// image. Coordinates are normalized by the image dimensions and scaled,
// so scale is the number of noise periods across the field. layer picks
// an independent octave from the same seed.
func GradientField(w, h int, scale float64, seed int64, layer int) *image.Gray {
	g := NewGradient(seed)
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nx := float64(x) / float64(w) * scale
			ny := float64(y) / float64(h) * scale
			img.Pix[y*img.Stride+x] = pack(g.At(nx, ny, float64(layer)))
		}
	}
	return img
}

// CellularField renders a w x h cellular noise field. When turbFreq is
// meaningful (> 0.001), sample coordinates are first distorted by a
// gradient noise field seeded one past the cellular seed, displaced by
// turbStrength; this is the turbulence pass that breaks up the regular
// cell structure.
func CellularField(w, h int, scale float64, seed int64, turbFreq, turbStrength float64) *image.Gray {
	c := NewCellular(seed)
	turb := NewGradient(seed + 1)
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nx := float64(x) / float64(w) * scale
			ny := float64(y) / float64(h) * scale
			if turbFreq > 0.001 {
				d := turb.At2(nx*turbFreq, ny*turbFreq)
				nx += d * turbStrength
				ny += d * turbStrength
			}
			img.Pix[y*img.Stride+x] = pack(c.At2(nx, ny))
		}
	}
	return img
}

// pack maps a [-1, 1] sample to an 8-bit gray value.
func pack(v float64) uint8 {
	s := (v + 1) / 2 * 255
	if s < 0 {
		s = 0
	}
	if s > 255 {
		s = 255
	}
	return uint8(s)
}
