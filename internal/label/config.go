package label

import (
	"fmt"
	"math/rand"
)

// ResizeMethod selects how a user image is fit into its slot.
type ResizeMethod string

// Resize policies.
const (
	ResizeCropToFit ResizeMethod = "crop"
	ResizeStretch   ResizeMethod = "stretch"
	ResizeLetterbox ResizeMethod = "letterbox"
)

// Valid reports whether m is a known resize method.
func (m ResizeMethod) Valid() bool {
	switch m {
	case ResizeCropToFit, ResizeStretch, ResizeLetterbox:
		return true
	}
	return false
}

// BurnType selects the noise synthesis strategy for the burn mask.
type BurnType string

// Burn mask strategies.
const (
	BurnGradient BurnType = "gradient"
	BurnPatches  BurnType = "patches"
)

// Valid reports whether t is a known burn type.
func (t BurnType) Valid() bool {
	return t == BurnGradient || t == BurnPatches
}

// OutputFormat selects the encoded output image format.
type OutputFormat string

// Output formats.
const (
	FormatPNG  OutputFormat = "png"
	FormatJPEG OutputFormat = "jpeg"
)

// Valid reports whether f is a known output format.
func (f OutputFormat) Valid() bool {
	return f == FormatPNG || f == FormatJPEG
}

// RGB is an 8-bit sRGB color triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ParseHexColor parses a "#rrggbb" or "rrggbb" string.
func ParseHexColor(s string) (RGB, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q: want 6 hex digits", s)
	}
	var c RGB
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return c, nil
}

// Hex returns the "#rrggbb" form of the color.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Offset is a pixel offset applied to a rendered text block.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BurnParams holds every burn/weathering parameter, including the
// advanced set.
type BurnParams struct {
	Apply              bool     `json:"apply"`
	Type               BurnType `json:"type"`
	Amount             float64  `json:"amount"`
	Scale              float64  `json:"scale"`
	Detail             float64  `json:"detail"`
	EdgeSoftness       float64  `json:"edge_softness"`
	Irregularity       float64  `json:"irregularity"`
	Char               float64  `json:"char"`
	Seed               int64    `json:"seed"`
	ScaleMultiplier    float64  `json:"scale_multiplier"`
	DetailBlend        float64  `json:"detail_blend"`
	TurbulenceFreq     float64  `json:"turbulence_freq"`
	TurbulenceStrength float64  `json:"turbulence_strength"`
}

// Config is the immutable-per-render snapshot of every user-tunable
// render parameter. Callers should Clamp before handing it to the
// composer.
type Config struct {
	Number           string       `json:"number"`
	ClassText        string       `json:"class_text"`
	Class            Class        `json:"class"`
	AlternateStyle   bool         `json:"alternate_style"`
	ImagePath        string       `json:"image_path,omitempty"`
	ResizeMethod     ResizeMethod `json:"resize_method"`
	Hazard           Hazard       `json:"hazard,omitempty"`
	ApplyTexture     bool         `json:"apply_texture"`
	TextureOpacity   float64      `json:"texture_opacity"`
	OutputResolution int          `json:"output_resolution"`
	OutputFormat     OutputFormat `json:"output_format"`
	OutputQuality    int          `json:"output_quality"`

	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Grayscale  bool    `json:"grayscale"`

	NumberFontSize    float64 `json:"number_font_size"`
	ClassFontSize     float64 `json:"class_font_size"`
	NumberOffset      Offset  `json:"number_offset"`
	ClassOffset       Offset  `json:"class_offset"`
	NumberColor       RGB     `json:"number_color"`
	ClassColor        RGB     `json:"class_color"`
	NumberLineSpacing float64 `json:"number_line_spacing"`
	ClassLineSpacing  float64 `json:"class_line_spacing"`

	Burn BurnParams `json:"burn"`
}

// Default returns a fresh configuration with a random three-digit object
// number, matching the application's startup state.
func Default() Config {
	return Config{
		Number:            fmt.Sprintf("%03d", rand.Intn(999)+1), //nolint:gosec // G404: cosmetic default only
		ClassText:         "SAFE",
		Class:             ClassSafe,
		ResizeMethod:      ResizeCropToFit,
		TextureOpacity:    0.3,
		OutputResolution:  Size,
		OutputFormat:      FormatPNG,
		OutputQuality:     95,
		Contrast:          1.0,
		NumberFontSize:    60,
		ClassFontSize:     60,
		NumberOffset:      Offset{X: 2, Y: -7},
		ClassOffset:       Offset{X: 2, Y: -7},
		NumberLineSpacing: 1.2,
		ClassLineSpacing:  1.2,
		Burn: BurnParams{
			Type:               BurnGradient,
			Amount:             0.5,
			Scale:              2.0,
			Detail:             0.5,
			EdgeSoftness:       0.3,
			Irregularity:       0.2,
			Char:               0.3,
			ScaleMultiplier:    1.0,
			DetailBlend:        0.5,
			TurbulenceFreq:     2.0,
			TurbulenceStrength: 0.3,
		},
	}
}

// Clamp forces every bounded numeric field into its documented range.
func (c *Config) Clamp() {
	c.TextureOpacity = clamp(c.TextureOpacity, 0, 1)
	c.Brightness = clamp(c.Brightness, -1, 1)
	c.Contrast = clamp(c.Contrast, 0, 2)
	c.NumberFontSize = clamp(c.NumberFontSize, 24, 72)
	c.ClassFontSize = clamp(c.ClassFontSize, 24, 72)
	c.NumberLineSpacing = clamp(c.NumberLineSpacing, 0.5, 3)
	c.ClassLineSpacing = clamp(c.ClassLineSpacing, 0.5, 3)
	c.OutputResolution = clampInt(c.OutputResolution, 64, 4096)
	c.OutputQuality = clampInt(c.OutputQuality, 1, 100)

	b := &c.Burn
	b.Amount = clamp(b.Amount, 0, 1)
	b.Scale = clamp(b.Scale, 0.1, 5)
	b.Detail = clamp(b.Detail, 0, 1)
	b.EdgeSoftness = clamp(b.EdgeSoftness, 0, 1)
	b.Irregularity = clamp(b.Irregularity, 0, 1)
	b.Char = clamp(b.Char, 0, 1)
	b.DetailBlend = clamp(b.DetailBlend, 0, 1)
	b.TurbulenceStrength = clamp(b.TurbulenceStrength, 0, 1)
}

// Validate reports the first structurally invalid field, if any. Bounded
// numeric fields are handled by Clamp and are not errors here.
func (c *Config) Validate() error {
	if c.Number == "" {
		return &Error{Kind: KindInvalidConfig, Msg: "object number must not be empty"}
	}
	if c.ClassText == "" {
		return &Error{Kind: KindInvalidConfig, Msg: "object class text must not be empty"}
	}
	if !c.Class.Valid() {
		return &Error{Kind: KindInvalidConfig, Msg: fmt.Sprintf("unknown class %q", c.Class)}
	}
	if !c.ResizeMethod.Valid() {
		return &Error{Kind: KindInvalidConfig, Msg: fmt.Sprintf("unknown resize method %q", c.ResizeMethod)}
	}
	if !c.Hazard.Valid() {
		return &Error{Kind: KindInvalidConfig, Msg: fmt.Sprintf("unknown hazard %q", c.Hazard)}
	}
	if !c.OutputFormat.Valid() {
		return &Error{Kind: KindInvalidConfig, Msg: fmt.Sprintf("unknown output format %q", c.OutputFormat)}
	}
	if c.Burn.Apply && !c.Burn.Type.Valid() {
		return &Error{Kind: KindInvalidConfig, Msg: fmt.Sprintf("unknown burn type %q", c.Burn.Type)}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return min(hi, max(lo, v))
}

func clampInt(v, lo, hi int) int {
	return min(hi, max(lo, v))
}
