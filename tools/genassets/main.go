// Command genassets generates a placeholder resource tree for local
// development: flat-tinted class templates, simple triangle hazard
// icons, and a noise-based dirt texture overlay.
//
// Usage: go run ./tools/genassets [output-dir]
//
// Output defaults to ./resources.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/sydlexius/scplabel/internal/label"
	"github.com/sydlexius/scplabel/internal/noise"
)

const (
	templateSize = label.Size
	iconWidth    = 96
	iconHeight   = 128
	textureSeed  = 1337
	jpegQuality  = 90
)

// classTints gives each class a distinct flat background so generated
// labels are tellable apart at a glance.
var classTints = map[label.Class]color.NRGBA{
	label.ClassSafe:                 {96, 160, 96, 255},
	label.ClassEuclid:               {200, 170, 60, 255},
	label.ClassEuclidPotentialKeter: {210, 130, 50, 255},
	label.ClassKeter:                {180, 60, 60, 255},
	label.ClassApollyon:             {60, 60, 60, 255},
	label.ClassThaumiel:             {90, 90, 160, 255},
	label.ClassNeutralized:          {150, 150, 150, 255},
	label.ClassExplained:            {220, 220, 220, 255},
}

func main() {
	outDir := "resources"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	written := 0
	for _, class := range label.Classes() {
		tint, ok := classTints[class]
		if !ok {
			tint = color.NRGBA{128, 128, 128, 255}
		}

		if err := writeTemplate(outDir, class.TemplatePath(false), tint); err != nil {
			fail("template for %s: %v", class, err)
		}
		written++

		for _, hazard := range label.Hazards() {
			if hazard == label.HazardNone {
				continue
			}
			if err := writeIcon(outDir, hazard.IconPath(class)); err != nil {
				fail("icon %s/%s: %v", class, hazard, err)
			}
			written++
		}
	}

	// One alternate variant is enough to exercise the fallback path.
	if err := writeTemplate(outDir, label.ClassSafe.TemplatePath(true), color.NRGBA{60, 110, 60, 255}); err != nil {
		fail("alternate template: %v", err)
	}
	written++

	if err := writeTexture(outDir); err != nil {
		fail("texture: %v", err)
	}
	written++

	fmt.Printf("generated %d assets under %s\n", written, outDir)
}

func writeTemplate(outDir, relPath string, tint color.NRGBA) error {
	img := image.NewNRGBA(image.Rect(0, 0, templateSize, templateSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(tint), image.Point{}, draw.Src)

	// Darker band where the class text sits, so text placement is
	// visible even without real artwork.
	band := image.Rect(0, templateSize*3/4, templateSize, templateSize)
	dark := color.NRGBA{tint.R / 2, tint.G / 2, tint.B / 2, 255}
	draw.Draw(img, band, image.NewUniform(dark), image.Point{}, draw.Src)

	return writeImage(outDir, relPath, func(f *os.File) error {
		return jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	})
}

func writeIcon(outDir, relPath string) error {
	img := image.NewNRGBA(image.Rect(0, 0, iconWidth, iconHeight))
	yellow := color.NRGBA{230, 200, 40, 255}
	for y := 0; y < iconHeight; y++ {
		// Triangle widens toward the bottom.
		half := iconWidth * y / (2 * iconHeight)
		for x := iconWidth/2 - half; x <= iconWidth/2+half; x++ {
			img.SetNRGBA(x, y, yellow)
		}
	}
	return writeImage(outDir, relPath, func(f *os.File) error {
		return png.Encode(f, img)
	})
}

// writeTexture builds a semi-transparent grime overlay from layered
// gradient noise, the same field the burn generator uses.
func writeTexture(outDir string) error {
	base := noise.GradientField(templateSize, templateSize, 1.5, textureSeed, 0)
	detail := noise.GradientField(templateSize, templateSize, 6.0, textureSeed, 1)

	img := image.NewNRGBA(image.Rect(0, 0, templateSize, templateSize))
	for y := 0; y < templateSize; y++ {
		for x := 0; x < templateSize; x++ {
			v := (int(base.GrayAt(x, y).Y)*3 + int(detail.GrayAt(x, y).Y)) / 4
			shade := uint8(v / 3)
			img.SetNRGBA(x, y, color.NRGBA{shade, shade, shade, uint8(v / 2)})
		}
	}
	return writeImage(outDir, "materials/textures/dirty_overlay.png", func(f *os.File) error {
		return png.Encode(f, img)
	})
}

func writeImage(outDir, relPath string, encode func(*os.File) error) error {
	full := filepath.Join(outDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return err
	}
	f, err := os.Create(full) //nolint:gosec // G304: path is derived from compile-time constants
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
