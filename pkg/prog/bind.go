package prog

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"src.elv.sh/sigbind/pkg/bind"
	"src.elv.sh/sigbind/pkg/vals"
	"src.elv.sh/sigbind/pkg/vars"
)

func newBindCmd(f *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "bind FILE",
		Short: "Bind the argument lists of every call and show the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, errs, err := loadDecls(f, args[0])
			if err != nil {
				return err
			}
			showErrors(cmd.ErrOrStderr(), file.Source, errs)
			out := cmd.OutOrStdout()
			failed := false
			for i, c := range file.Calls {
				cands := file.Candidates(c)
				if len(cands) == 0 {
					fmt.Fprintf(out, "call %d: skipped, no usable signature\n", i+1)
					continue
				}
				idx, res, err := bind.Dispatch(cands, c.Args)
				if err != nil {
					fmt.Fprintf(out, "call %d %s: %v\n", i+1, c.Args.Repr(), err)
					failed = true
					continue
				}
				fmt.Fprintf(out, "call %d %s: bound to %s %s\n",
					i+1, c.Args.Repr(), c.Candidates[idx], cands[idx])
				writeResult(out, res, "  ")
			}
			switch {
			case len(errs) > 0:
				return Exit(2)
			case failed:
				return Exit(1)
			}
			return nil
		},
	}
}

func writeResult(w io.Writer, res *bind.Result, indent string) {
	for _, b := range res.Bound() {
		fmt.Fprintf(w, "%s%s = %s (%s, %s)\n",
			indent, b.Param.Describe(), vals.Repr(vars.Decont(b.Value)), b.Param.Mode(), b.Source)
		if b.Sub != nil {
			writeResult(w, b.Sub, indent+"  ")
		}
	}
	types := res.Types()
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s::%s = %s\n", indent, name, types[name].Name())
	}
}
