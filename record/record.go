// Package record defines the canonical creature statistics record produced
// by an import, and the normalization that fills defaults before the record
// is returned to the caller.
package record

// DefaultName is used when no creature name could be extracted.
const DefaultName = "Unknown Creature"

// Record is the canonical output of one import. It is assembled once per
// call and never mutated afterwards.
type Record struct {
	Name       string   `json:"name"`
	Level      *int     `json:"level,omitempty"`
	Traits     []string `json:"traits"`
	ArmorClass *int     `json:"armorClass,omitempty"`
	HitPoints  *int     `json:"hitPoints,omitempty"`
	Speed      string   `json:"speed,omitempty"`
	Attacks    []Attack `json:"attacks"`
}

// Attack is a single merged attack entry. Bonus is always a sign-normalized
// ASCII string such as "+12" or "-1". Damage is empty when only a bonus was
// located on the page.
type Attack struct {
	Name   string `json:"name"`
	Bonus  string `json:"attackBonus"`
	Damage string `json:"damage,omitempty"`
}

// Normalize coerces a partially-populated record into the canonical output
// shape: the name is defaulted when empty, and the traits and attacks
// sequences are guaranteed non-nil so callers can range over them.
func Normalize(r Record) Record {
	if r.Name == "" {
		r.Name = DefaultName
	}
	if r.Traits == nil {
		r.Traits = []string{}
	}
	if r.Attacks == nil {
		r.Attacks = []Attack{}
	}
	return r
}

// Empty reports whether the record carries none of the markers that make a
// page recognizable: no name, no level, and no hit points.
func (r Record) Empty() bool {
	return r.Name == "" && r.Level == nil && r.HitPoints == nil
}
