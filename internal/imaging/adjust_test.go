package imaging

import (
	"image"
	"image/color"
	"testing"
)

func gradientStrip(t *testing.T) *image.NRGBA {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 1))
	for x := 0; x < 16; x++ {
		v := uint8(x * 16)
		img.SetNRGBA(x, 0, color.NRGBA{R: v, G: 64, B: 255 - v, A: 255})
	}
	return img
}

func TestAdjustIdentity(t *testing.T) {
	src := gradientStrip(t)
	out := Adjust(Clone(src), false, 1.0, 0.0)
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("pix[%d] = %d, want %d (contrast 1.0 brightness 0.0 must be identity)",
				i, out.Pix[i], src.Pix[i])
		}
	}
}

func TestGrayscaleEqualizesChannels(t *testing.T) {
	out := Adjust(gradientStrip(t), true, 1.0, 0.0)
	for x := 0; x < 16; x++ {
		c := out.NRGBAAt(x, 0)
		if c.R != c.G || c.G != c.B {
			t.Fatalf("pixel %d = %+v, want equal channels", x, c)
		}
	}
}

func TestBrightnessShifts(t *testing.T) {
	src := solid(t, 2, 2, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	out := Adjust(src, false, 1.0, 0.5)
	if c := out.NRGBAAt(0, 0); c.R != 150 {
		t.Errorf("brightness +0.5 on 100 = %d, want 150", c.R)
	}

	src = solid(t, 2, 2, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	out = Adjust(src, false, 1.0, -0.5)
	if c := out.NRGBAAt(0, 0); c.R != 50 {
		t.Errorf("brightness -0.5 on 100 = %d, want 50", c.R)
	}
}

func TestBrightnessClamps(t *testing.T) {
	src := solid(t, 2, 2, color.NRGBA{R: 250, G: 5, B: 128, A: 255})
	out := Adjust(src, false, 1.0, 1.0)
	c := out.NRGBAAt(0, 0)
	if c.R != 255 || c.G != 105 {
		t.Errorf("got %+v, want R clamped to 255", c)
	}
}

func TestContrastSpreads(t *testing.T) {
	src := solid(t, 1, 1, color.NRGBA{R: 192, G: 64, B: 128, A: 255})
	out := Adjust(src, false, 2.0, 0.0)
	c := out.NRGBAAt(0, 0)
	if c.R != 255 {
		t.Errorf("R = %d, want 255 (above-midpoint value pushed up)", c.R)
	}
	if c.G != 0 {
		t.Errorf("G = %d, want 0 (below-midpoint value pushed down)", c.G)
	}
	if c.B != 128 {
		t.Errorf("B = %d, want 128 (midpoint unchanged)", c.B)
	}
}

func TestAdjustKeepsAlpha(t *testing.T) {
	src := solid(t, 1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 77})
	out := Adjust(src, true, 1.8, 0.4)
	if c := out.NRGBAAt(0, 0); c.A != 77 {
		t.Errorf("alpha = %d, want 77", c.A)
	}
}
