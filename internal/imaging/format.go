package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/sydlexius/scplabel/internal/label"
)

// DetectFormat reads the first bytes from r to identify the image
// format ("jpeg", "png", "webp", "gif"). The returned reader replays the
// consumed bytes.
func DetectFormat(r io.Reader) (format string, replay io.Reader, err error) {
	buf := make([]byte, 12)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("reading header: %w", err)
	}
	buf = buf[:n]

	replay = io.MultiReader(bytes.NewReader(buf), r)

	switch {
	case n >= 3 && buf[0] == 0xFF && buf[1] == 0xD8 && buf[2] == 0xFF:
		return "jpeg", replay, nil
	case n >= 8 && string(buf[:8]) == "\x89PNG\r\n\x1a\n":
		return "png", replay, nil
	case n >= 12 && string(buf[:4]) == "RIFF" && string(buf[8:12]) == "WEBP":
		return "webp", replay, nil
	case n >= 6 && (string(buf[:6]) == "GIF87a" || string(buf[:6]) == "GIF89a"):
		return "gif", replay, nil
	}
	return "", replay, fmt.Errorf("unrecognized image format")
}

// Decode reads any supported still image from r.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// Encode writes img in the requested output format. quality applies to
// JPEG only.
func Encode(w io.Writer, img image.Image, format label.OutputFormat, quality int) error {
	switch format {
	case label.FormatJPEG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("encoding jpeg: %w", err)
		}
	case label.FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding png: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	return nil
}

// DecodeGIF reads an animated GIF and returns its frames coalesced to
// full canvases, plus per-frame delays in milliseconds.
func DecodeGIF(r io.Reader) (frames []*image.NRGBA, delays []int, err error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, nil, fmt.Errorf("gif has no frames")
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}

	// Frames may be partial updates; accumulate them onto the previous
	// canvas so every returned frame is complete.
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, frame := range g.Image {
		drawOver(canvas, frame)
		frames = append(frames, Clone(canvas))
		delayMS := g.Delay[i] * 10 // GIF delays are in 1/100 s
		if delayMS < 10 {
			delayMS = 10
		}
		delays = append(delays, delayMS)
	}
	return frames, delays, nil
}

// drawOver composites a paletted frame onto the canvas at its own
// offset, skipping transparent palette entries.
func drawOver(dst *image.NRGBA, src *image.Paletted) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.At(x, y)
			if _, _, _, a := c.RGBA(); a == 0 {
				continue
			}
			dst.Set(x, y, c)
		}
	}
}
