package prog

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newStoreCmd(f *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the declaration database",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "put NAME FILE",
			Short: "Store a declaration file under a name",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				code, err := os.ReadFile(args[1])
				if err != nil {
					return err
				}
				st, err := openStore(f)
				if err != nil {
					return err
				}
				defer st.Close()
				rev, err := st.Put(args[0], string(code))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: revision %d\n", args[0], rev)
				return nil
			},
		},
		&cobra.Command{
			Use:   "get NAME",
			Short: "Print a stored declaration file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := openStore(f)
				if err != nil {
					return err
				}
				defer st.Close()
				code, err := st.Get(args[0])
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				fmt.Fprint(cmd.OutOrStdout(), code)
				return nil
			},
		},
		&cobra.Command{
			Use:   "ls",
			Short: "List stored declaration files",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := openStore(f)
				if err != nil {
					return err
				}
				defer st.Close()
				entries, err := st.List()
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", e.Name, e.Rev)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm NAME",
			Short: "Delete a stored declaration file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := openStore(f)
				if err != nil {
					return err
				}
				defer st.Close()
				if err := st.Delete(args[0]); err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				return nil
			},
		},
	)
	return cmd
}
