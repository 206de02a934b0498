package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	"github.com/sydlexius/scplabel/internal/label"
)

func makeJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solid(t, 8, 8, red), nil); err != nil {
		t.Fatalf("encoding jpeg: %v", err)
	}
	return buf.Bytes()
}

func makePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(t, 8, 8, red)); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func makeGIF(t *testing.T, frames int) []byte {
	t.Helper()
	g := &gif.GIF{}
	for i := 0; i < frames; i++ {
		pal := image.NewPaletted(image.Rect(0, 0, 8, 8), color.Palette{
			color.RGBA{A: 255},
			color.RGBA{R: 255, A: 255},
		})
		for p := range pal.Pix {
			pal.Pix[p] = uint8(i % 2)
		}
		g.Image = append(g.Image, pal)
		g.Delay = append(g.Delay, 5)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("encoding gif: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg", makeJPEG(t), "jpeg"},
		{"png", makePNG(t), "png"},
		{"gif", makeGIF(t, 1), "gif"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), "webp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := DetectFormat(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("DetectFormat: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectFormatUnknown(t *testing.T) {
	if _, _, err := DetectFormat(bytes.NewReader([]byte("not an image at all"))); err == nil {
		t.Error("expected error for unrecognized data")
	}
}

func TestDetectFormatReplays(t *testing.T) {
	data := makePNG(t)
	_, replay, err := DetectFormat(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DetectFormat: %v", err)
	}
	got, err := io.ReadAll(replay)
	if err != nil {
		t.Fatalf("reading replay: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("replay reader did not return the original bytes")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	img, err := Decode(bytes.NewReader(makeJPEG(t)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("got %dx%d, want 8x8", b.Dx(), b.Dy())
	}
}

func TestEncodeFormats(t *testing.T) {
	img := solid(t, 8, 8, red)

	var buf bytes.Buffer
	if err := Encode(&buf, img, label.FormatPNG, 95); err != nil {
		t.Fatalf("Encode png: %v", err)
	}
	if format, _, _ := DetectFormat(bytes.NewReader(buf.Bytes())); format != "png" {
		t.Errorf("png output detected as %q", format)
	}

	buf.Reset()
	if err := Encode(&buf, img, label.FormatJPEG, 95); err != nil {
		t.Fatalf("Encode jpeg: %v", err)
	}
	if format, _, _ := DetectFormat(bytes.NewReader(buf.Bytes())); format != "jpeg" {
		t.Errorf("jpeg output detected as %q", format)
	}
}

func TestEncodeRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, solid(t, 2, 2, red), label.OutputFormat("bmp"), 95); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestDecodeGIF(t *testing.T) {
	frames, delays, err := DecodeGIF(bytes.NewReader(makeGIF(t, 3)))
	if err != nil {
		t.Fatalf("DecodeGIF: %v", err)
	}
	if len(frames) != 3 || len(delays) != 3 {
		t.Fatalf("got %d frames %d delays, want 3 each", len(frames), len(delays))
	}
	for i, f := range frames {
		if b := f.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
			t.Errorf("frame %d is %dx%d, want 8x8", i, b.Dx(), b.Dy())
		}
	}
	for i, d := range delays {
		if d != 50 {
			t.Errorf("delay %d = %dms, want 50ms", i, d)
		}
	}
}

func TestDecodeGIFMinimumDelay(t *testing.T) {
	g := &gif.GIF{
		Image: []*image.Paletted{image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.RGBA{A: 255}})},
		Delay: []int{0},
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("encoding gif: %v", err)
	}
	_, delays, err := DecodeGIF(&buf)
	if err != nil {
		t.Fatalf("DecodeGIF: %v", err)
	}
	if delays[0] != 10 {
		t.Errorf("zero-delay frame got %dms, want the 10ms floor", delays[0])
	}
}
