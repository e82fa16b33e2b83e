package prog

import (
	"fmt"

	"github.com/spf13/cobra"

	"src.elv.sh/sigbind/pkg/errutil"
	"src.elv.sh/sigbind/pkg/phaser"
)

func newCheckCmd(f *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Build every signature and check every phaser block",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, arg := range args {
				file, errs, err := loadDecls(f, arg)
				if err != nil {
					return err
				}
				errs = append(errs, errutil.Errors(phaser.CheckAll(cmd.Context(), file.Blocks))...)
				if len(errs) > 0 {
					showErrors(cmd.ErrOrStderr(), file.Source, errs)
					failed = true
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d signatures, %d blocks\n",
					arg, len(file.Signatures), len(file.Blocks))
			}
			if failed {
				return Exit(2)
			}
			return nil
		},
	}
}
