package label

import "fmt"

// Hazard is a warning pictogram selection. The empty string means no
// hazard is selected. The value doubles as the icon file name.
type Hazard string

// Known hazards.
const (
	HazardNone                 Hazard = ""
	HazardAutonomousObject     Hazard = "autonomous_object"
	HazardBiologicalHazard     Hazard = "biological_hazard"
	HazardCognitohazard        Hazard = "cognitohazard"
	HazardElectricShock        Hazard = "electric_shock"
	HazardExistentialThreat    Hazard = "existential_threat"
	HazardInconsistentTopology Hazard = "inconsistent_topology"
	HazardIndirectInjury       Hazard = "indirect_injury_hazard"
	HazardMemetic              Hazard = "memetic_hazard"
	HazardNonstandardSpacetime Hazard = "nonstandard_spacetime"
	HazardShapeshifting        Hazard = "shapeshifting"
	HazardRadioactivity        Hazard = "radioactivity_hazard"
	HazardSelfReplicating      Hazard = "self_replicating"
	HazardSentientViolent      Hazard = "sentient_violent"
	HazardSentientObject       Hazard = "sentient_object"
)

// Hazards lists every hazard in display order.
func Hazards() []Hazard {
	return []Hazard{
		HazardAutonomousObject,
		HazardBiologicalHazard,
		HazardCognitohazard,
		HazardElectricShock,
		HazardExistentialThreat,
		HazardInconsistentTopology,
		HazardIndirectInjury,
		HazardMemetic,
		HazardNonstandardSpacetime,
		HazardShapeshifting,
		HazardRadioactivity,
		HazardSelfReplicating,
		HazardSentientViolent,
		HazardSentientObject,
	}
}

// Valid reports whether h is a known hazard or the empty (none) value.
func (h Hazard) Valid() bool {
	if h == HazardNone {
		return true
	}
	for _, known := range Hazards() {
		if h == known {
			return true
		}
	}
	return false
}

// DisplayName returns the human-readable hazard name.
func (h Hazard) DisplayName() string {
	switch h {
	case HazardAutonomousObject:
		return "Autonomous Object"
	case HazardBiologicalHazard:
		return "Biological Hazard"
	case HazardCognitohazard:
		return "Cognitohazard"
	case HazardElectricShock:
		return "Electric Shock"
	case HazardExistentialThreat:
		return "Existential Threat"
	case HazardInconsistentTopology:
		return "Inconsistent Topology"
	case HazardIndirectInjury:
		return "Indirect Injury Hazard"
	case HazardMemetic:
		return "Memetic Hazard"
	case HazardNonstandardSpacetime:
		return "Nonstandard Spacetime"
	case HazardShapeshifting:
		return "Shapeshifting"
	case HazardRadioactivity:
		return "Radioactivity Hazard"
	case HazardSelfReplicating:
		return "Self Replicating"
	case HazardSentientViolent:
		return "Sentient and Violent"
	case HazardSentientObject:
		return "Sentient Object"
	}
	return string(h)
}

// IconPath returns the hazard icon path for a class, relative to the
// resources root. Icons are themed per class folder.
func (h Hazard) IconPath(c Class) string {
	return fmt.Sprintf("materials/%s/warnings/%s.png", string(c), string(h))
}
