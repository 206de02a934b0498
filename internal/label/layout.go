package label

// Size is the square working size of the label canvas in pixels. All
// templates and textures are normalized to Size x Size; region
// coordinates below are expressed against it.
const Size = 512

// Alignment controls horizontal line placement inside a text region.
type Alignment int

// Alignment modes. CenterLeft renders like Left; it exists as a named
// mode so layout tables can state intent.
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignCenterLeft
)

// Rectangle is a pixel-space placement slot on the canvas.
type Rectangle struct {
	X, Y          int
	Width, Height int
}

// TextRegion anchors a text block: X is the left edge, Y the vertical
// center of the block, MaxWidth the span alignment is computed against.
type TextRegion struct {
	X, Y      int
	MaxWidth  int
	Alignment Alignment
}

// Region and slot constants shared by both styles.
var (
	// Banner is the header strip at the top of every template.
	Banner = Rectangle{X: 0, Y: 0, Width: 512, Height: 128}

	// NumberRegion is where the object identifier is drawn in the
	// normal style.
	NumberRegion = TextRegion{X: 113, Y: 165, MaxWidth: 240, Alignment: AlignLeft}

	// ClassTextRegion is where the object class text is drawn in the
	// normal style.
	ClassTextRegion = TextRegion{X: 304, Y: 226, MaxWidth: 150, Alignment: AlignLeft}
)

// Normal style slots.
var (
	NormalHazardIcon = Rectangle{X: 15, Y: 256, Width: 233, Height: 240}
	NormalUserImage  = Rectangle{X: 264, Y: 256, Width: 233, Height: 240}
)

// Alternate style regions and slots. The alternate layout has no user
// image slot.
var (
	AlternateHazardIcon      = Rectangle{X: 137, Y: 256, Width: 233, Height: 240}
	AlternateNumberRegion    = TextRegion{X: 268, Y: 167, MaxWidth: 150, Alignment: AlignLeft}
	AlternateClassTextRegion = TextRegion{X: 347, Y: 226, MaxWidth: 150, Alignment: AlignLeft}
)

// NumberRegionFor returns the identifier text region for a style.
func NumberRegionFor(alternate bool) TextRegion {
	if alternate {
		return AlternateNumberRegion
	}
	return NumberRegion
}

// ClassTextRegionFor returns the class text region for a style.
func ClassTextRegionFor(alternate bool) TextRegion {
	if alternate {
		return AlternateClassTextRegion
	}
	return ClassTextRegion
}

// HazardIconRectFor returns the hazard icon slot for a style.
func HazardIconRectFor(alternate bool) Rectangle {
	if alternate {
		return AlternateHazardIcon
	}
	return NormalHazardIcon
}
