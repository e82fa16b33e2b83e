package prog

import (
	"errors"
	"fmt"
	"io"

	"src.elv.sh/sigbind/pkg/decl"
	"src.elv.sh/sigbind/pkg/diag"
	"src.elv.sh/sigbind/pkg/errutil"
	"src.elv.sh/sigbind/pkg/store"
)

type diager interface {
	Diag(src diag.Source) *diag.Error
}

// Loads the declarations named by arg. The returned error is non-nil when
// nothing could be loaded; problems within the file are returned as a list.
func loadDecls(f *Flags, arg string) (*decl.File, []error, error) {
	var (
		file *decl.File
		err  error
	)
	if f.Stored {
		st, openErr := openStore(f)
		if openErr != nil {
			return nil, nil, openErr
		}
		defer st.Close()
		file, err = st.Load(arg)
	} else {
		file, err = decl.LoadFile(arg)
	}
	if file == nil {
		return nil, nil, err
	}
	return file, errutil.Errors(err), nil
}

func openStore(f *Flags) (*store.Store, error) {
	if f.DB == "" {
		return nil, BadUsage("no database; use --db or set $" + DBEnv)
	}
	return store.Open(f.DB)
}

// Writes errors found in src, as diagnostics where possible.
func showErrors(w io.Writer, src diag.Source, errs []error) {
	for _, err := range errs {
		var d diager
		var sh diag.Shower
		switch {
		case errors.As(err, &d):
			fmt.Fprintln(w, d.Diag(src).Show(""))
		case errors.As(err, &sh):
			fmt.Fprintln(w, sh.Show(""))
		default:
			fmt.Fprintln(w, err)
		}
	}
}
