// Package burn turns burn parameters into the grayscale opacity mask
// used to char the finished label.
package burn

import (
	"image"
	"math"
	"math/rand"

	"github.com/sydlexius/scplabel/internal/label"
	"github.com/sydlexius/scplabel/internal/noise"
)

// Mask generates the burn opacity mask for a w x h canvas. The noise
// fields are fully determined by p.Seed; the irregularity jitter is the
// one intentionally unseeded stage, so byte-identical output across runs
// holds only when p.Irregularity is zero.
func Mask(p label.BurnParams, w, h int) *image.Gray {
	var field *image.Gray
	switch p.Type {
	case label.BurnPatches:
		field = noise.CellularField(w, h, p.Scale, p.Seed,
			p.TurbulenceFreq, p.Detail*p.TurbulenceStrength)
	default:
		baseScale := p.Scale * p.ScaleMultiplier
		base := noise.GradientField(w, h, baseScale, p.Seed, 0)
		detailScale := baseScale * p.Detail * p.ScaleMultiplier
		detail := noise.GradientField(w, h, detailScale, p.Seed, 1)
		field = blend(base, detail, p.DetailBlend)
	}

	// Per-pixel response chain. The order is load-bearing: each stage
	// shapes the previous stage's output, not the raw noise.
	softnessExp := 1 + p.EdgeSoftness*4
	charExp := 1 - p.Char*0.9
	for i, v := range field.Pix {
		val := float64(v) / 255

		val = math.Pow(val, softnessExp)

		if p.Irregularity > 0 {
			val += (rand.Float64() - 0.5) * p.Irregularity //nolint:gosec // G404: cosmetic jitter, intentionally unseeded
			val = math.Min(1, math.Max(0, val))
		}

		val = math.Pow(val, charExp)

		val *= p.Amount

		field.Pix[i] = uint8(val * 255)
	}
	return field
}

// blend mixes two gray fields: base*(1-alpha) + overlay*alpha.
func blend(base, overlay *image.Gray, alpha float64) *image.Gray {
	out := image.NewGray(base.Rect)
	for i := range base.Pix {
		b := float64(base.Pix[i])
		o := float64(overlay.Pix[i])
		v := b*(1-alpha) + o*alpha
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		out.Pix[i] = uint8(v)
	}
	return out
}
