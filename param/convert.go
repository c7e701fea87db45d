package param

import (
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-slew/dsp/core"
)

// Converter turns denormalized values into text and back. FromText returns
// a denormalized value; the Parameter clamps and normalizes it.
type Converter struct {
	ToText   func(v float64) string
	FromText func(text string) float64
}

// Pitcher converts between notes and frequencies. *tuning.Manager
// implements it.
type Pitcher interface {
	NoteToHz(note float64) float64
	HzToNote(hz float64) float64
}

type twelveTET struct{}

func (twelveTET) NoteToHz(note float64) float64 { return core.NoteToHz(note) }
func (twelveTET) HzToNote(hz float64) float64   { return core.HzToNote(hz) }

// converterEnv carries the state some conversions depend on.
type converterEnv struct {
	pitch    Pitcher
	midSide  func() bool
	features Features
}

// NewConverter builds the conversion pair for unit. Pitch conversions use
// 12-TET at 440 Hz; see Set for the tuning-aware variant.
func NewConverter(unit Unit) Converter {
	return newConverter(unit, converterEnv{pitch: twelveTET{}})
}

func newConverter(unit Unit, env converterEnv) Converter {
	if env.pitch == nil {
		env.pitch = twelveTET{}
	}
	switch unit {
	case Power:
		return Converter{powerToText, powerFromText}
	case Percent:
		return Converter{percentToText, percentFromText}
	case Hz:
		return Converter{hzToText, hzFromText}
	case Decibel:
		return Converter{dbToText, unitFromText(Decibel, 1)}
	case Ms:
		return Converter{msToText, unitFromText(Ms, 1)}
	case Semi:
		return Converter{roundedToText(Semi), roundedFromText(Semi)}
	case Octaves:
		return Converter{roundedToText(Octaves), roundedFromText(Octaves)}
	case Xen:
		return Converter{roundedToText(Xen), unitFromText(Xen, 1)}
	case Note:
		return Converter{noteToText, noteFromText}
	case Pitch:
		p := env.pitch
		return Converter{
			ToText: func(v float64) string {
				return noteToText(v) + "; " + hzToText(p.NoteToHz(v))
			},
			FromText: func(text string) float64 {
				if hz := hzFromText(text); hz != 0 {
					return p.HzToNote(hz)
				}
				return noteFromText(text)
			},
		}
	case FilterTypeUnit:
		return Converter{filterTypeToText, filterTypeFromText}
	case StereoConfigUnit:
		return Converter{stereoConfigToText, stereoConfigFromText}
	case Pan:
		midSide := env.midSide
		if midSide == nil || !env.features.StereoConfig {
			midSide = func() bool { return false }
		}
		return Converter{
			ToText:   func(v float64) string { return panToText(v, midSide()) },
			FromText: func(text string) float64 { return panFromText(text, midSide()) },
		}
	default:
		return Converter{
			ToText:   formatNum,
			FromText: func(text string) float64 { return Parse(text, 0) },
		}
	}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// trimUnit strips trailing unit characters and spaces.
func trimUnit(text string, u Unit) string {
	text = strings.TrimSpace(text)
	if label := u.Label(); label != "" {
		text = strings.TrimRight(text, label)
	}
	return strings.TrimSpace(text)
}

func unitFromText(u Unit, scale float64) func(string) float64 {
	return func(text string) float64 {
		return Parse(trimUnit(text, u), 0) * scale
	}
}

func roundedToText(u Unit) func(float64) string {
	return func(v float64) string {
		return formatNum(math.Round(v)) + " " + u.Label()
	}
}

func roundedFromText(u Unit) func(string) float64 {
	return func(text string) float64 {
		return math.Round(Parse(trimUnit(text, u), 0))
	}
}

var negations = []string{
	"off", "false", "no", "0", "disabled", "none", "null", "nil",
	"nada", "nix", "nichts", "niente", "nope",
}

var affirmations = []string{"on", "true", "yes", "enabled", "1"}

func powerToText(v float64) string {
	if v > 0.5 {
		return "Enabled"
	}
	return "Disabled"
}

func powerFromText(text string) float64 {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, n := range negations {
		if t == n {
			return 0
		}
	}
	for _, a := range affirmations {
		if t == a {
			return 1
		}
	}
	if Parse(t, 0) > 0.5 {
		return 1
	}
	return 0
}

func percentToText(v float64) string {
	return formatNum(math.Round(v*100)) + " " + Percent.Label()
}

func percentFromText(text string) float64 {
	return Parse(trimUnit(text, Percent), 0) * 0.01
}

func hzToText(v float64) string {
	switch {
	case v >= 10000:
		return truncate(formatNum(v/1000), 4) + " k" + Hz.Label()
	case v >= 1000:
		return truncate(formatNum(v/1000), 3) + " k" + Hz.Label()
	default:
		return truncate(formatNum(v), 5) + " " + Hz.Label()
	}
}

func hzFromText(text string) float64 {
	t := trimUnit(strings.ToLower(text), Hz)
	mult := 1.0
	if strings.HasSuffix(t, "k") {
		mult = 1000
		t = strings.TrimSpace(t[:len(t)-1])
	}
	return Parse(t, 0) * mult
}

func dbToText(v float64) string {
	return formatNum(math.Round(v*100)/100) + " " + Decibel.Label()
}

func msToText(v float64) string {
	return formatNum(math.Round(v*10)/10) + " " + Ms.Label()
}

var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func noteToText(v float64) string {
	if v < 0 || math.IsNaN(v) {
		return "?"
	}
	n := int(math.Round(v))
	return pitchClasses[n%12] + strconv.Itoa(n/12-1)
}

// noteFromText accepts a plain note number or a name such as "A4", "c#2"
// or "Eb-1". Unreadable names map to A4.
func noteFromText(text string) float64 {
	const fallback = 69
	t := strings.ToLower(strings.TrimSpace(text))
	if v := Parse(t, -1); v >= 0 && v < 128 {
		return v
	}
	if t == "" {
		return fallback
	}

	var pc float64
	switch t[0] {
	case 'c':
		pc = 0
	case 'd':
		pc = 2
	case 'e':
		pc = 4
	case 'f':
		pc = 5
	case 'g':
		pc = 7
	case 'a':
		pc = 9
	case 'b':
		pc = 11
	default:
		return fallback
	}
	rest := t[1:]
	if rest == "" {
		return core.Clamp(pc+12, 0, 127)
	}
	switch rest[0] {
	case '#':
		pc++
		rest = rest[1:]
	case 'b':
		pc--
		rest = rest[1:]
	}
	if rest == "" {
		return core.Clamp(pc+12, 0, 127)
	}

	oct := Parse(rest, -1)
	if oct == -1 {
		return fallback
	}
	v := pc + 12 + oct*12
	for v < 0 {
		v += 12
	}
	return v
}

var filterTypeNames = []string{"LP", "HP", "BP", "BR", "AP", "LS", "HS", "Notch", "Bell"}

func filterTypeToText(v float64) string {
	i := int(math.Round(v))
	if i < 0 || i >= len(filterTypeNames) {
		return ""
	}
	return filterTypeNames[i]
}

func filterTypeFromText(text string) float64 {
	t := strings.ToLower(strings.TrimSpace(text))
	for i, name := range filterTypeNames {
		if t == strings.ToLower(name) {
			return float64(i)
		}
	}
	return Parse(t, 0)
}

func stereoConfigToText(v float64) string {
	if v > 0.5 {
		return "m/s"
	}
	return "l/r"
}

func stereoConfigFromText(text string) float64 {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" || t[0] == 'l' {
		return 0
	}
	if v, err := Eval(t); err == nil {
		return core.Clamp01(math.Round(v))
	}
	return 1
}

func panToText(v float64, midSide bool) string {
	if v == 0 {
		return "C"
	}
	full, neg, pos := "Left", " L", " R"
	fullHi := "Right"
	if midSide {
		full, fullHi, neg, pos = "Mid", "Side", " M", " S"
	}
	switch {
	case v == -1:
		return full
	case v == 1:
		return fullHi
	case v < 0:
		return formatNum(math.Round(v*100)) + neg
	default:
		return formatNum(math.Round(v*100)) + pos
	}
}

func panFromText(text string, midSide bool) float64 {
	t := strings.ToLower(strings.TrimSpace(text))
	switch t {
	case "center", "centre", "c":
		return 0
	}
	lo, hi, loShort, hiShort := "left", "right", "l", "r"
	if midSide {
		lo, hi, loShort, hiShort = "mid", "side", "m", "s"
	}
	switch t {
	case lo, loShort:
		return -1
	case hi, hiShort:
		return 1
	}
	sign := 1.0
	if strings.HasSuffix(t, loShort) {
		sign = -1
	}
	t = strings.TrimSpace(strings.TrimRight(t, "mslr%"))
	return sign * Parse(t, 0) * 0.01
}
