package parser

// Section identifies which report section a chunk of a transmission belongs to.
type Section int

const (
	SectionUnknown Section = iota
	SectionCAS
	SectionSitrep
	SectionNineLine
	SectionRemarks
	SectionRestrictions
	SectionBDA
	SectionGamePlan
)

// allSections is the fixed iteration order used wherever deterministic
// traversal matters (score comparison, tests).
var allSections = []Section{
	SectionCAS,
	SectionSitrep,
	SectionNineLine,
	SectionRemarks,
	SectionRestrictions,
	SectionBDA,
	SectionGamePlan,
}

// String returns the section name
func (s Section) String() string {
	switch s {
	case SectionCAS:
		return "cas"
	case SectionSitrep:
		return "situation-update"
	case SectionNineLine:
		return "nine-line"
	case SectionRemarks:
		return "remarks"
	case SectionRestrictions:
		return "restrictions"
	case SectionBDA:
		return "bda"
	case SectionGamePlan:
		return "game-plan"
	}
	return "unknown"
}
