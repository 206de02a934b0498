// Package text renders aligned, multi-line text blocks onto label
// canvases using an OpenType face.
package text

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/sydlexius/scplabel/internal/label"
)

// Renderer draws text with a single parsed font. Faces are sized per
// call, so one Renderer serves every font size.
type Renderer struct {
	font *opentype.Font
}

// New returns a Renderer using the embedded default font.
func New() (*Renderer, error) {
	return NewFromData(gobold.TTF)
}

// NewFromFile loads a TrueType or OpenType font from disk.
func NewFromFile(path string) (*Renderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, label.Wrap(label.KindTextRendering, err, "reading font file")
	}
	return NewFromData(data)
}

// NewFromData parses raw font bytes.
func NewFromData(data []byte) (*Renderer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, label.Wrap(label.KindTextRendering, err, "parsing font")
	}
	return &Renderer{font: f}, nil
}

func (r *Renderer) face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, label.Wrap(label.KindTextRendering, err, fmt.Sprintf("sizing face to %.1f", size))
	}
	return face, nil
}

// splitLines expands literal "\n" escapes, splits on newlines and drops
// lines that are empty after trimming. Dropped lines leave no vertical
// gap in the rendered block.
// splitLines expands the literal \n escape into hard breaks. Empty
// lines are dropped without reserving a vertical slot, but only when
// the input split into more than one line; a lone blank line is kept.
func splitLines(s string) []string {
	expanded := strings.ReplaceAll(s, `\n`, "\n")
	raw := strings.Split(expanded, "\n")
	if len(raw) == 1 {
		return raw
	}
	var lines []string
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// referenceHeight measures the "Hg" pair, covering both ascenders and
// descenders, and is used as the per-line glyph height.
func referenceHeight(face font.Face) int {
	b, _ := font.BoundString(face, "Hg")
	return (b.Max.Y - b.Min.Y).Ceil()
}

func lineX(region label.TextRegion, width int, align label.Alignment) int {
	switch align {
	case label.AlignCenter:
		return region.X + region.MaxWidth/2 - width/2
	case label.AlignRight:
		return region.X + region.MaxWidth - width
	default: // AlignLeft and AlignCenterLeft anchor to the left edge
		return region.X
	}
}

// Draw renders text into dst. The block of non-empty lines is centered
// vertically on region.Y, each line aligned per the region, then the
// whole block is shifted by offset. An empty string draws nothing.
func (r *Renderer) Draw(dst *image.NRGBA, text string, region label.TextRegion, col color.NRGBA, size float64, offset label.Offset, lineSpacing float64) error {
	if text == "" {
		return nil
	}
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil
	}

	face, err := r.face(size)
	if err != nil {
		return err
	}
	defer face.Close()

	glyphH := referenceHeight(face)
	lineH := int(float64(glyphH) * lineSpacing)
	blockH := (len(lines)-1)*lineH + glyphH
	ascent := face.Metrics().Ascent.Ceil()

	for i, line := range lines {
		w := font.MeasureString(face, line).Ceil()
		x := lineX(region, w, region.Alignment) + int(offset.X)
		y := region.Y - blockH/2 + i*lineH + int(offset.Y)
		drawLine(dst, face, line, x, y+ascent, col)
	}
	return nil
}

// DrawStroke renders a single line with a 2px outline by stamping the
// stroke color at every offset in a 5x5 grid before the fill pass.
func (r *Renderer) DrawStroke(dst *image.NRGBA, text string, region label.TextRegion, col, stroke color.NRGBA, size float64, offset label.Offset) error {
	if text == "" {
		return nil
	}
	face, err := r.face(size)
	if err != nil {
		return err
	}
	defer face.Close()

	w := font.MeasureString(face, text).Ceil()
	h := referenceHeight(face)
	ascent := face.Metrics().Ascent.Ceil()

	x := lineX(region, w, region.Alignment) + int(offset.X)
	y := region.Y - h/2 + int(offset.Y)

	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawLine(dst, face, text, x+dx, y+dy+ascent, stroke)
		}
	}
	drawLine(dst, face, text, x, y+ascent, col)
	return nil
}

// Measure returns the pixel width of text at the given size.
func (r *Renderer) Measure(text string, size float64) (int, error) {
	face, err := r.face(size)
	if err != nil {
		return 0, err
	}
	defer face.Close()
	return font.MeasureString(face, text).Ceil(), nil
}

// drawLine draws one line with its baseline at (x, baseline).
func drawLine(dst *image.NRGBA, face font.Face, line string, x, baseline int, col color.NRGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(line)
}
