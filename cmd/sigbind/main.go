// Command sigbind inspects, binds and checks signature declaration files.
package main

import (
	"os"

	"src.elv.sh/sigbind/pkg/prog"
)

func main() {
	os.Exit(prog.Run([3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args))
}
