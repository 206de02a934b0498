package imaging

import "image"

// Adjust applies the user image adjustments in their fixed order:
// grayscale, then contrast, then brightness. The input is modified in
// place and returned.
func Adjust(img *image.NRGBA, grayscale bool, contrast, brightness float64) *image.NRGBA {
	if grayscale {
		Grayscale(img)
	}
	if contrast != 1 {
		Contrast(img, contrast)
	}
	if brightness != 0 {
		Brightness(img, brightness)
	}
	return img
}

// Grayscale converts img to Rec. 709 luma in place.
func Grayscale(img *image.NRGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		r := float64(img.Pix[i])
		g := float64(img.Pix[i+1])
		b := float64(img.Pix[i+2])
		y := uint8(0.2126*r + 0.7152*g + 0.0722*b)
		img.Pix[i] = y
		img.Pix[i+1] = y
		img.Pix[i+2] = y
	}
}

// Contrast scales channel values around the midpoint: factor 1 is the
// identity, 0 flattens to gray, 2 doubles the spread.
func Contrast(img *image.NRGBA, factor float64) {
	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			img.Pix[i+c] = clampChannel((float64(img.Pix[i+c])-128)*factor + 128)
		}
	}
}

// Brightness shifts channels by amount in [-1, 1], scaled to +-100
// 8-bit steps at the extremes.
func Brightness(img *image.NRGBA, amount float64) {
	delta := amount * 100
	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			img.Pix[i+c] = clampChannel(float64(img.Pix[i+c]) + delta)
		}
	}
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
