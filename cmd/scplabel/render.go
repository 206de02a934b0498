package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sydlexius/scplabel/internal/assets"
	"github.com/sydlexius/scplabel/internal/compose"
	"github.com/sydlexius/scplabel/internal/imaging"
	"github.com/sydlexius/scplabel/internal/label"
	"github.com/sydlexius/scplabel/internal/text"
)

// exit codes for one-shot rendering
const (
	exitGeneric      = 1
	exitInvalidInput = 2
)

// runRender performs a one-shot render from command line flags and
// exits with a code describing the failure class.
func runRender(args []string) {
	defaults := label.Default()

	fs := flag.NewFlagSet("render", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: scplabel render [flags] -o OUTPUT")
		fmt.Fprintln(fs.Output(), "\nRender a single label to a file.\n\nFlags:")
		fs.PrintDefaults()
	}

	var (
		number    = fs.String("number", defaults.Number, "object identifier text")
		classText = fs.String("class-text", defaults.ClassText, "object class text")
		class     = fs.String("class", string(defaults.Class), "object class (safe, euclid, euclid_potential_keter, keter, apollyon, thaumiel, neutralized, explained)")
		alternate = fs.Bool("alternate", false, "use the alternate label style")
		imagePath = fs.String("image", "", "path to the user image")
		resize    = fs.String("resize", string(defaults.ResizeMethod), "resize method (crop, stretch, letterbox)")
		hazard    = fs.String("hazard", "", "hazard icon identifier")

		applyTexture   = fs.Bool("texture", false, "blend the dirt texture overlay")
		textureOpacity = fs.Float64("texture-opacity", defaults.TextureOpacity, "texture overlay opacity (0-1)")

		resolution = fs.Int("resolution", defaults.OutputResolution, "output resolution in pixels (64-4096)")
		format     = fs.String("format", string(defaults.OutputFormat), "output format (png, jpeg)")
		quality    = fs.Int("quality", defaults.OutputQuality, "jpeg quality (1-100)")

		brightness = fs.Float64("brightness", defaults.Brightness, "user image brightness (-1 to 1)")
		contrast   = fs.Float64("contrast", defaults.Contrast, "user image contrast (0-2)")
		grayscale  = fs.Bool("grayscale", false, "convert the user image to grayscale")

		numberFontSize    = fs.Float64("number-font-size", defaults.NumberFontSize, "identifier font size (24-72)")
		classFontSize     = fs.Float64("class-font-size", defaults.ClassFontSize, "class text font size (24-72)")
		numberOffsetX     = fs.Float64("number-offset-x", defaults.NumberOffset.X, "identifier x offset")
		numberOffsetY     = fs.Float64("number-offset-y", defaults.NumberOffset.Y, "identifier y offset")
		classOffsetX      = fs.Float64("class-offset-x", defaults.ClassOffset.X, "class text x offset")
		classOffsetY      = fs.Float64("class-offset-y", defaults.ClassOffset.Y, "class text y offset")
		numberColor       = fs.String("number-color", defaults.NumberColor.Hex(), "identifier color (#rrggbb)")
		classColor        = fs.String("class-color", defaults.ClassColor.Hex(), "class text color (#rrggbb)")
		numberLineSpacing = fs.Float64("number-line-spacing", defaults.NumberLineSpacing, "identifier line spacing (0.5-3)")
		classLineSpacing  = fs.Float64("class-line-spacing", defaults.ClassLineSpacing, "class text line spacing (0.5-3)")

		applyBurn        = fs.Bool("burn", false, "apply the burn weathering effect")
		burnType         = fs.String("burn-type", string(defaults.Burn.Type), "burn noise type (gradient, patches)")
		burnAmount       = fs.Float64("burn-amount", defaults.Burn.Amount, "burn intensity (0-1)")
		burnScale        = fs.Float64("burn-scale", defaults.Burn.Scale, "burn noise scale (0.1-5)")
		burnDetail       = fs.Float64("burn-detail", defaults.Burn.Detail, "burn detail level (0-1)")
		burnSoftness     = fs.Float64("burn-softness", defaults.Burn.EdgeSoftness, "burn edge softness (0-1)")
		burnIrregularity = fs.Float64("burn-irregularity", defaults.Burn.Irregularity, "burn edge irregularity (0-1)")
		burnChar         = fs.Float64("burn-char", defaults.Burn.Char, "burn charring intensity (0-1)")
		burnSeed         = fs.Int64("burn-seed", defaults.Burn.Seed, "burn noise seed")
		burnScaleMult    = fs.Float64("burn-scale-multiplier", defaults.Burn.ScaleMultiplier, "burn scale multiplier")
		burnDetailBlend  = fs.Float64("burn-detail-blend", defaults.Burn.DetailBlend, "burn detail blend (0-1)")
		burnTurbFreq     = fs.Float64("burn-turbulence-freq", defaults.Burn.TurbulenceFreq, "burn turbulence frequency")
		burnTurbStrength = fs.Float64("burn-turbulence-strength", defaults.Burn.TurbulenceStrength, "burn turbulence strength (0-1)")

		resourceDir = fs.String("resources", "resources", "asset resource directory")
		packDir     = fs.String("packs", "texturepacks", "texture pack directory")
		fontPath    = fs.String("font", "", "path to a TrueType font (defaults to the embedded face)")
		output      = fs.String("o", "", "output file path (required)")
	)
	fs.Parse(args) //nolint:errcheck // ExitOnError

	if *output == "" {
		fmt.Fprintln(os.Stderr, "error: an output path is required (-o)")
		fs.Usage()
		os.Exit(exitInvalidInput)
	}

	checkRange := func(name string, v, lo, hi float64) {
		if v < lo || v > hi {
			fmt.Fprintf(os.Stderr, "error: --%s %v is outside the range %v to %v\n", name, v, lo, hi)
			os.Exit(exitInvalidInput)
		}
	}
	checkRange("texture-opacity", *textureOpacity, 0, 1)
	checkRange("brightness", *brightness, -1, 1)
	checkRange("contrast", *contrast, 0, 2)
	checkRange("quality", float64(*quality), 1, 100)
	checkRange("resolution", float64(*resolution), 64, 4096)
	checkRange("number-font-size", *numberFontSize, 24, 72)
	checkRange("class-font-size", *classFontSize, 24, 72)
	checkRange("number-line-spacing", *numberLineSpacing, 0.5, 3)
	checkRange("class-line-spacing", *classLineSpacing, 0.5, 3)
	checkRange("burn-amount", *burnAmount, 0, 1)
	checkRange("burn-scale", *burnScale, 0.1, 5)
	checkRange("burn-detail", *burnDetail, 0, 1)
	checkRange("burn-softness", *burnSoftness, 0, 1)
	checkRange("burn-irregularity", *burnIrregularity, 0, 1)
	checkRange("burn-char", *burnChar, 0, 1)
	checkRange("burn-detail-blend", *burnDetailBlend, 0, 1)
	checkRange("burn-turbulence-strength", *burnTurbStrength, 0, 1)

	numColor, err := label.ParseHexColor(*numberColor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitInvalidInput)
	}
	clsColor, err := label.ParseHexColor(*classColor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitInvalidInput)
	}

	cfg := label.Config{
		Number:           *number,
		ClassText:        *classText,
		Class:            label.Class(*class),
		AlternateStyle:   *alternate,
		ImagePath:        *imagePath,
		ResizeMethod:     label.ResizeMethod(*resize),
		Hazard:           label.Hazard(*hazard),
		ApplyTexture:     *applyTexture,
		TextureOpacity:   *textureOpacity,
		OutputResolution: *resolution,
		OutputFormat:     label.OutputFormat(*format),
		OutputQuality:    *quality,

		Brightness: *brightness,
		Contrast:   *contrast,
		Grayscale:  *grayscale,

		NumberFontSize:    *numberFontSize,
		ClassFontSize:     *classFontSize,
		NumberOffset:      label.Offset{X: *numberOffsetX, Y: *numberOffsetY},
		ClassOffset:       label.Offset{X: *classOffsetX, Y: *classOffsetY},
		NumberColor:       numColor,
		ClassColor:        clsColor,
		NumberLineSpacing: *numberLineSpacing,
		ClassLineSpacing:  *classLineSpacing,

		Burn: label.BurnParams{
			Apply:              *applyBurn,
			Type:               label.BurnType(*burnType),
			Amount:             *burnAmount,
			Scale:              *burnScale,
			Detail:             *burnDetail,
			EdgeSoftness:       *burnSoftness,
			Irregularity:       *burnIrregularity,
			Char:               *burnChar,
			Seed:               *burnSeed,
			ScaleMultiplier:    *burnScaleMult,
			DetailBlend:        *burnDetailBlend,
			TurbulenceFreq:     *burnTurbFreq,
			TurbulenceStrength: *burnTurbStrength,
		},
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitInvalidInput)
	}

	if err := renderToFile(cfg, *resourceDir, *packDir, *fontPath, *output); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var lerr *label.Error
		if errors.As(err, &lerr) {
			os.Exit(lerr.Kind.ExitCode())
		}
		os.Exit(exitGeneric)
	}
	fmt.Printf("label written to %s\n", *output)
}

func renderToFile(cfg label.Config, resourceDir, packDir, fontPath, output string) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := assets.Load(resourceDir, packDir, logger)
	if err != nil {
		return err
	}

	var renderer *text.Renderer
	if fontPath != "" {
		renderer, err = text.NewFromFile(fontPath)
	} else {
		renderer, err = text.New()
	}
	if err != nil {
		return err
	}

	img, err := compose.New(renderer).Compose(cfg, store, nil)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return label.Wrap(label.KindIO, err, "creating output directory")
		}
	}
	f, err := os.Create(output)
	if err != nil {
		return label.Wrap(label.KindIO, err, "creating output file")
	}
	defer f.Close() //nolint:errcheck

	if err := imaging.Encode(f, img, cfg.OutputFormat, cfg.OutputQuality); err != nil {
		return label.Wrap(label.KindImageSaving, err, "encoding output")
	}
	return nil
}
