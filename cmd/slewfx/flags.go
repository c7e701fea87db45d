package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-slew/param"
)

// paramFlags holds parameter values given as text, converted with each
// parameter's own text parser.
type paramFlags struct {
	slew   string
	typ    string
	gain   string
	mix    string
	hq     string
	stereo string
	set    []string
}

func (f *paramFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.slew, "slew", "", "Slew pitch as a note name or MIDI note (e.g. C3, 48)")
	fl.StringVar(&f.typ, "type", "", "Filter type (LP, HP)")
	fl.StringVar(&f.gain, "gain", "", "Output gain in dB")
	fl.StringVar(&f.mix, "mix", "", "Dry/wet mix in percent")
	fl.StringVar(&f.hq, "hq", "", "2x oversampling (on, off)")
	fl.StringVar(&f.stereo, "stereo", "", "Stereo config (l/r, m/s)")
	fl.StringArrayVar(&f.set, "set", nil, "Set any parameter as id=text; repeatable")
}

func (f *paramFlags) assignments() ([][2]string, error) {
	var out [][2]string
	for _, kv := range []struct{ id, text string }{
		{"slew", f.slew}, {"filtertype", f.typ}, {"gainout", f.gain},
		{"mix", f.mix}, {"hq", f.hq}, {"stereoconfig", f.stereo},
	} {
		if kv.text != "" {
			out = append(out, [2]string{kv.id, kv.text})
		}
	}
	for _, s := range f.set {
		id, text, ok := strings.Cut(s, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("--set %q: want id=text", s)
		}
		out = append(out, [2]string{strings.TrimSpace(id), strings.TrimSpace(text)})
	}
	return out, nil
}

// apply parses every given value and stores it in set.
func (f *paramFlags) apply(set *param.Set) error {
	assignments, err := f.assignments()
	if err != nil {
		return err
	}
	for _, a := range assignments {
		i := set.Index(a[0])
		if i < 0 {
			return fmt.Errorf("unknown parameter %q", a[0])
		}
		p := set.At(i)
		p.SetValue(p.ValueForText(a[1]))
	}
	return nil
}
