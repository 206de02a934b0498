package compose

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	"github.com/sydlexius/scplabel/internal/assets"
	"github.com/sydlexius/scplabel/internal/imaging"
	"github.com/sydlexius/scplabel/internal/label"
)

// ComposeGIF renders an animated label: every frame of the source GIF
// is composed as the user image and the results are reassembled with
// the source's frame timing. The configured output format is ignored;
// the result is always GIF.
func (c *Composer) ComposeGIF(cfg label.Config, store *assets.Store, src io.Reader, w io.Writer) error {
	frames, delays, err := imaging.DecodeGIF(src)
	if err != nil {
		return label.Wrap(label.KindImageLoading, err, "decoding animated source")
	}

	out := &gif.GIF{}
	for i, frame := range frames {
		rendered, err := c.Compose(cfg, store, frame)
		if err != nil {
			return err
		}
		out.Image = append(out.Image, palettize(rendered))
		out.Delay = append(out.Delay, delays[i]/10) // ms back to 1/100 s
	}

	if err := gif.EncodeAll(w, out); err != nil {
		return label.Wrap(label.KindImageSaving, err, "encoding gif")
	}
	return nil
}

func palettize(img *image.NRGBA) *image.Paletted {
	p := image.NewPaletted(img.Rect, palette.Plan9)
	draw.FloydSteinberg.Draw(p, img.Rect, img, img.Rect.Min)
	return p
}
