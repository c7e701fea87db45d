package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-slew/param"
	"github.com/cwbudde/algo-slew/patch"
)

func newParamsCmd() *cobra.Command {
	var (
		pf        paramFlags
		showPatch bool
	)
	cmd := &cobra.Command{
		Use:   "params",
		Short: "List the parameters of the compiled feature set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set := param.NewSet()
			if err := pf.apply(set); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			writeParams(w, set)
			if showPatch {
				fmt.Fprintln(w)
				writePatch(w, set)
			}
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().BoolVar(&showPatch, "patch", false, "Also print the patch keys and values")
	return cmd
}

func writeParams(w io.Writer, set *param.Set) {
	f := set.Features()
	fmt.Fprintf(w, "features: hq=%v stereoconfig=%v tuning=%v sidechain=%v\n\n",
		f.HQ, f.StereoConfig, f.Tuning, f.Sidechain)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tVALUE\tDEFAULT\tSTEPS\tUNIT\tTOOLTIP")
	for i, p := range set.All() {
		steps := "cont"
		if p.Type() != param.Float {
			steps = fmt.Sprint(p.NumSteps())
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i, p.ID().Key(), p.Name(), p.Text(p.Value()), p.Text(p.DefaultValue()),
			steps, p.Label(), p.Tooltip())
	}
	tw.Flush()
}

func writePatch(w io.Writer, set *param.Set) {
	st := patch.NewState()
	set.SavePatch(st)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE")
	for _, k := range st.Keys() {
		v, _ := st.Get(k)
		fmt.Fprintf(tw, "%s\t%g\n", k, v)
	}
	tw.Flush()
}
