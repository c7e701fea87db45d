package param

import "strings"

// ID identifies a parameter of the effect.
type ID int

const (
	Slew ID = iota
	FilterType
	Mix
	GainOut
	HQ
	StereoConfig
	NumIDs
)

// Invalid is returned by ParseID for unknown names.
const Invalid ID = -1

var names = [NumIDs]string{
	Slew:         "Slew",
	FilterType:   "Filter Type",
	Mix:          "Mix",
	GainOut:      "Gain Out",
	HQ:           "HQ",
	StereoConfig: "Stereo Config",
}

var tooltips = [NumIDs]string{
	Slew:         "Apply the slew rate to the signal.",
	FilterType:   "Choose the filter type. (LP or HP)",
	Mix:          "Blend the processed signal with the dry signal.",
	GainOut:      "Apply gain to the output signal.",
	HQ:           "Apply oversampling to the signal.",
	StereoConfig: "Process left/right or mid/side.",
}

// String returns the display name.
func (id ID) String() string {
	if id < 0 || id >= NumIDs {
		return "Invalid Parameter Name"
	}
	return names[id]
}

// Key returns the patch key form of the name.
func (id ID) Key() string {
	return ToID(id.String())
}

// Tooltip returns a one-sentence description.
func (id ID) Tooltip() string {
	if id < 0 || id >= NumIDs {
		return "Invalid Tooltip."
	}
	return tooltips[id]
}

// ToID lowercases name and removes its spaces.
func ToID(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}

// ParseID resolves a display name or key to an ID.
func ParseID(text string) ID {
	key := ToID(text)
	for id := range NumIDs {
		if key == id.Key() {
			return id
		}
	}
	return Invalid
}

// ParseIDs resolves every sep-separated token of text, skipping unknown
// ones.
func ParseIDs(text, sep string) []ID {
	var ids []ID
	for _, tok := range strings.Split(text, sep) {
		if tok == "" {
			continue
		}
		if id := ParseID(tok); id != Invalid {
			ids = append(ids, id)
		}
	}
	return ids
}
