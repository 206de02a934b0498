// Package compose renders finished labels from a configuration and an
// asset snapshot.
package compose

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/sydlexius/scplabel/internal/assets"
	"github.com/sydlexius/scplabel/internal/burn"
	"github.com/sydlexius/scplabel/internal/imaging"
	"github.com/sydlexius/scplabel/internal/label"
	"github.com/sydlexius/scplabel/internal/text"
)

// Composer is stateless apart from the shared font; one instance serves
// concurrent renders against read-only asset snapshots.
type Composer struct {
	text *text.Renderer
}

// New creates a Composer drawing text with r.
func New(r *text.Renderer) *Composer {
	return &Composer{text: r}
}

// Compose renders one label at the working size and scales it to the
// configured output resolution. override, when non-nil, is used as the
// user image instead of loading cfg.ImagePath; frame-by-frame GIF
// rendering relies on this.
func (c *Composer) Compose(cfg label.Config, store *assets.Store, override image.Image) (*image.NRGBA, error) {
	canvas := imaging.Clone(store.Template(cfg.Class, cfg.AlternateStyle))

	if err := c.text.Draw(canvas, cfg.Number,
		label.NumberRegionFor(cfg.AlternateStyle),
		rgbToNRGBA(cfg.NumberColor),
		cfg.NumberFontSize, cfg.NumberOffset, cfg.NumberLineSpacing); err != nil {
		return nil, err
	}

	if err := c.text.Draw(canvas, cfg.ClassText,
		label.ClassTextRegionFor(cfg.AlternateStyle),
		rgbToNRGBA(cfg.ClassColor),
		cfg.ClassFontSize, cfg.ClassOffset, cfg.ClassLineSpacing); err != nil {
		return nil, err
	}

	if err := c.placeUserImage(canvas, cfg, override); err != nil {
		return nil, err
	}

	c.placeHazardIcon(canvas, cfg, store)

	if cfg.ApplyTexture {
		applyTexture(canvas, store.Texture(), cfg.TextureOpacity)
	}

	if cfg.Burn.Apply {
		applyBurn(canvas, burn.Mask(cfg.Burn, canvas.Rect.Dx(), canvas.Rect.Dy()))
	}

	if cfg.OutputResolution != label.Size {
		canvas = imaging.Scale(canvas, cfg.OutputResolution, cfg.OutputResolution)
	}
	return canvas, nil
}

// placeUserImage draws the user image into its slot. The alternate
// style has no user image slot and skips this step entirely.
func (c *Composer) placeUserImage(canvas *image.NRGBA, cfg label.Config, override image.Image) error {
	if cfg.AlternateStyle {
		return nil
	}

	src := override
	if src == nil {
		if cfg.ImagePath == "" {
			return nil
		}
		f, err := os.Open(cfg.ImagePath)
		if err != nil {
			return label.Wrap(label.KindImageLoading, err, "opening user image")
		}
		defer f.Close() //nolint:errcheck
		src, err = imaging.Decode(f)
		if err != nil {
			return label.Wrap(label.KindImageLoading, err, "decoding user image")
		}
	}

	adjusted := imaging.Adjust(imaging.ToNRGBA(src), cfg.Grayscale, cfg.Contrast, cfg.Brightness)
	slot := label.NormalUserImage
	fitted := imaging.Fit(adjusted, cfg.ResizeMethod, slot.Width, slot.Height)

	dst := image.Rect(slot.X, slot.Y, slot.X+slot.Width, slot.Y+slot.Height)
	draw.Draw(canvas, dst, fitted, fitted.Rect.Min, draw.Over)
	return nil
}

func (c *Composer) placeHazardIcon(canvas *image.NRGBA, cfg label.Config, store *assets.Store) {
	if cfg.Hazard == label.HazardNone {
		return
	}
	rect := label.HazardIconRectFor(cfg.AlternateStyle)
	icon := imaging.Scale(store.Icon(cfg.Class, cfg.Hazard), rect.Width, rect.Height)
	dst := image.Rect(rect.X, rect.Y, rect.X+rect.Width, rect.Y+rect.Height)
	draw.Draw(canvas, dst, icon, icon.Rect.Min, draw.Over)
}

// applyTexture blends the texture overlay into the color channels at a
// fixed opacity. The texture's own alpha channel is not consulted, and
// the canvas alpha is left untouched.
func applyTexture(canvas, texture *image.NRGBA, opacity float64) {
	alpha := uint16(opacity * 255)
	inv := 255 - alpha
	tb := texture.Rect
	for y := 0; y < canvas.Rect.Dy(); y++ {
		if y >= tb.Dy() {
			break
		}
		for x := 0; x < canvas.Rect.Dx(); x++ {
			if x >= tb.Dx() {
				break
			}
			ci := canvas.PixOffset(x, y)
			ti := texture.PixOffset(tb.Min.X+x, tb.Min.Y+y)
			for ch := 0; ch < 3; ch++ {
				c := uint16(canvas.Pix[ci+ch])
				t := uint16(texture.Pix[ti+ch])
				canvas.Pix[ci+ch] = uint8((c*inv + t*alpha) / 255)
			}
		}
	}
}

// applyBurn darkens the canvas by the mask: each channel is scaled by
// (255-m)/255, so a fully burned pixel goes black and transparent.
func applyBurn(canvas *image.NRGBA, mask *image.Gray) {
	for y := 0; y < canvas.Rect.Dy(); y++ {
		for x := 0; x < canvas.Rect.Dx(); x++ {
			m := uint16(mask.GrayAt(x, y).Y)
			if m == 0 {
				continue
			}
			keep := 255 - m
			ci := canvas.PixOffset(x, y)
			for ch := 0; ch < 4; ch++ {
				canvas.Pix[ci+ch] = uint8(uint16(canvas.Pix[ci+ch]) * keep / 255)
			}
		}
	}
}

func rgbToNRGBA(c label.RGB) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
