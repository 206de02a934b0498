package label

import "fmt"

// Class is an object classification. The value doubles as the folder name
// for the class's assets under the resources directory.
type Class string

// Known object classes.
const (
	ClassSafe                 Class = "safe"
	ClassEuclid               Class = "euclid"
	ClassEuclidPotentialKeter Class = "euclid_potential_keter"
	ClassKeter                Class = "keter"
	ClassApollyon             Class = "apollyon"
	ClassThaumiel             Class = "thaumiel"
	ClassNeutralized          Class = "neutralized"
	ClassExplained            Class = "explained"
)

// Classes lists every class in display order.
func Classes() []Class {
	return []Class{
		ClassSafe,
		ClassEuclid,
		ClassEuclidPotentialKeter,
		ClassKeter,
		ClassApollyon,
		ClassThaumiel,
		ClassNeutralized,
		ClassExplained,
	}
}

// Valid reports whether c is a known class.
func (c Class) Valid() bool {
	switch c {
	case ClassSafe, ClassEuclid, ClassEuclidPotentialKeter, ClassKeter,
		ClassApollyon, ClassThaumiel, ClassNeutralized, ClassExplained:
		return true
	}
	return false
}

// DisplayName returns the uppercase label text for the class.
func (c Class) DisplayName() string {
	switch c {
	case ClassSafe:
		return "SAFE"
	case ClassEuclid:
		return "EUCLID"
	case ClassEuclidPotentialKeter:
		return "EUCLID / POTENTIAL KETER"
	case ClassKeter:
		return "KETER"
	case ClassApollyon:
		return "APOLLYON"
	case ClassThaumiel:
		return "THAUMIEL"
	case ClassNeutralized:
		return "NEUTRALIZED"
	case ClassExplained:
		return "EXPLAINED"
	}
	return string(c)
}

// TemplatePath returns the class's background template path relative to
// the resources root. The alternate style uses a "_2" suffixed file.
func (c Class) TemplatePath(alternate bool) string {
	variant := ""
	if alternate {
		variant = "_2"
	}
	return fmt.Sprintf("materials/%s/label%s.jpg", string(c), variant)
}
