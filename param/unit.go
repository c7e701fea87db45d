package param

// Unit selects the text conversion and label of a parameter.
type Unit int

const (
	Custom Unit = iota
	Power
	Percent
	Hz
	Decibel
	Ms
	Semi
	Octaves
	Note
	Pitch
	FilterTypeUnit
	StereoConfigUnit
	Pan
	Xen
	NumUnits
)

var unitLabels = [NumUnits]string{
	Percent: "%",
	Hz:      "hz",
	Decibel: "db",
	Ms:      "ms",
	Semi:    "semi",
	Octaves: "oct",
	Pan:     "%",
	Xen:     "notes/oct",
}

// Label returns the unit suffix, empty for unitless kinds.
func (u Unit) Label() string {
	if u < 0 || u >= NumUnits {
		return ""
	}
	return unitLabels[u]
}
