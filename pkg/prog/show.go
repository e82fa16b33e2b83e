package prog

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"src.elv.sh/sigbind/pkg/sig"
	"src.elv.sh/sigbind/pkg/types"
)

func newShowCmd(f *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Show every signature and the introspection of its parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, errs, err := loadDecls(f, args[0])
			if err != nil {
				return err
			}
			showErrors(cmd.ErrOrStderr(), file.Source, errs)
			out := cmd.OutOrStdout()
			for _, s := range file.Signatures {
				fmt.Fprintf(out, "%s %s\n", s.Name, s.Sig)
				writeParams(out, s.Sig, "  ")
			}
			if len(errs) > 0 {
				return Exit(2)
			}
			return nil
		},
	}
}

func writeParams(w io.Writer, s *sig.Signature, indent string) {
	for _, p := range s.Params() {
		var attrs []string
		attrs = append(attrs, "sigil="+p.Sigil().String(), "mode="+p.Mode().String())
		if p.Twigil() != "" {
			attrs = append(attrs, "twigil="+p.Twigil())
		}
		switch {
		case p.Capture():
			attrs = append(attrs, "capture")
		case p.Named():
			attrs = append(attrs, "named="+strings.Join(p.NamedAliases(), ","))
		default:
			attrs = append(attrs, "positional")
		}
		for _, flag := range []struct {
			name string
			on   bool
		}{
			{"slurpy", p.Slurpy()}, {"optional", p.Optional()},
			{"invocant", p.Invocant()}, {"default", p.Default() != nil},
		} {
			if flag.on {
				attrs = append(attrs, flag.name)
			}
		}
		if !types.IsAny(p.Type()) {
			attrs = append(attrs, "type="+p.Type().Name())
		}
		if cs := p.TypeCaptures(); len(cs) > 0 {
			attrs = append(attrs, "captures="+strings.Join(cs, ","))
		}
		fmt.Fprintf(w, "%s%d %s: %s\n", indent, p.Index(), p.Describe(), strings.Join(attrs, " "))
		if sub := p.SubSignature(); sub != nil {
			writeParams(w, sub, indent+"  ")
		}
	}
}
