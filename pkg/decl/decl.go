// Package decl loads signatures, calls and phaser blocks from YAML
// declaration files.
//
// A declaration file looks like this:
//
//	types:
//	  - {name: Point, parent: Any}
//	signatures:
//	  pair:
//	    params:
//	      - {name: "$x", captures: [T]}
//	      - {name: "$y", type: T}
//	    returns: Str
//	calls:
//	  - {signature: pair, positional: [4, 5]}
//	  - {dispatch: [pair, other], positional: [1], named: {k: v}}
//	blocks:
//	  - name: outer
//	    phasers: [{kind: CATCH}, {kind: LEAVE}]
//
// Ranges of signatures, parameters, calls and phasers refer to the
// declaration file itself, so diagnostics point into it.
package decl

import (
	"os"

	"src.elv.sh/sigbind/pkg/diag"
	"src.elv.sh/sigbind/pkg/phaser"
	"src.elv.sh/sigbind/pkg/sig"
	"src.elv.sh/sigbind/pkg/types"
	"src.elv.sh/sigbind/pkg/vals"
)

// File is a loaded declaration file.
type File struct {
	Source     diag.Source
	Types      *types.Registry
	Signatures []Signature
	Calls      []Call
	Blocks     []phaser.Block
}

// Signature is a named signature.
type Signature struct {
	Name string
	Sig  *sig.Signature
	diag.Ranging
}

// Call is an argument list to bind. A call with one candidate binds to it;
// a call with several is dispatched among them.
type Call struct {
	Candidates []string
	Args       vals.Capture
	diag.Ranging
}

// Signature finds a signature by name.
func (f *File) Signature(name string) (*sig.Signature, bool) {
	for _, s := range f.Signatures {
		if s.Name == name {
			return s.Sig, true
		}
	}
	return nil, false
}

// Candidates returns the signatures a call names, skipping the ones that
// failed to load.
func (f *File) Candidates(c Call) []*sig.Signature {
	var sigs []*sig.Signature
	for _, name := range c.Candidates {
		if s, ok := f.Signature(name); ok {
			sigs = append(sigs, s)
		}
	}
	return sigs
}

// LoadFile reads and loads a declaration file.
func LoadFile(path string) (*File, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(diag.Source{Name: path, Code: string(code)})
}
