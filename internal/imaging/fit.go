// Package imaging holds the pixel plumbing under the composer: fitting
// a source image into a fixed slot, tonal adjustments, and encode/decode.
package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/sydlexius/scplabel/internal/label"
)

// Fit scales src into an exactly w x h image under the given policy.
// Callers must guard against zero-area sources and targets; behavior on
// degenerate dimensions is undefined.
func Fit(src image.Image, method label.ResizeMethod, w, h int) *image.NRGBA {
	switch method {
	case label.ResizeStretch:
		return stretch(src, w, h)
	case label.ResizeLetterbox:
		return letterbox(src, w, h)
	default:
		return cropToFit(src, w, h)
	}
}

// cropToFit center-crops src to the target aspect ratio, then scales the
// crop to exactly the target size. Edge content on the longer axis is
// lost; no bars appear.
func cropToFit(src image.Image, w, h int) *image.NRGBA {
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()

	var cropW, cropH int
	if srcW*h > srcH*w { // source is wider than the target ratio
		cropW = srcH * w / h
		cropH = srcH
	} else {
		cropW = srcW
		cropH = srcW * h / w
	}

	x := b.Min.X + (srcW-cropW)/2
	y := b.Min.Y + (srcH-cropH)/2
	crop := image.Rect(x, y, x+cropW, y+cropH)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}

// stretch scales src to the target size ignoring its aspect ratio.
func stretch(src image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// letterbox scales src uniformly so it fits inside the target, centered
// on an opaque white background. Nothing is cropped; bars fill the
// shorter axis.
func letterbox(src image.Image, w, h int) *image.NRGBA {
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()

	var scaledW, scaledH int
	if srcW*h > srcH*w { // source is wider than the target ratio
		scaledW = w
		scaledH = srcH * w / srcW
	} else {
		scaledW = srcW * h / srcH
		scaledH = h
	}
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	x := (w - scaledW) / 2
	y := (h - scaledH) / 2
	target := image.Rect(x, y, x+scaledW, y+scaledH)
	draw.CatmullRom.Scale(dst, target, src, b, draw.Over, nil)
	return dst
}

// Scale resizes src to exactly w x h with the high-quality kernel. Used
// for icon placement and the final output resize.
func Scale(src image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// ToNRGBA returns src as an *image.NRGBA, copying only when needed.
func ToNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Clone returns a deep copy of src.
func Clone(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
