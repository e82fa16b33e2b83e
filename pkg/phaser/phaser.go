// Package phaser implements the compile-time check that a block declares each
// once-only phaser kind at most once.
//
// Checking is scoped per syntactic block: a nested block is a Block of its
// own, and phasers in it do not conflict with those of the enclosing block.
package phaser

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"src.elv.sh/sigbind/pkg/diag"
	"src.elv.sh/sigbind/pkg/errutil"
	"src.elv.sh/sigbind/pkg/logutil"
)

var logger = logutil.GetLogger("[phaser] ")

// Decl is the declaration of one phaser.
type Decl struct {
	Kind  Kind
	Range diag.Ranging
}

// Block is a block body and the phasers declared directly in it, in source
// order.
type Block struct {
	Name  string
	Decls []Decl
}

// DuplicateError is reported for each repeated declaration of a once-only
// phaser kind.
type DuplicateError struct {
	Kind  Kind
	Block string
	// First is the range of the first declaration, Dup that of the repeat.
	First diag.Ranging
	Dup   diag.Ranging
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s phaser in block %s", e.Kind, e.Block)
}

// Range returns the range of the repeated declaration.
func (e *DuplicateError) Range() diag.Ranging { return e.Dup }

// Diag converts the error to a diagnostic pointing at the repeated
// declaration in src.
func (e *DuplicateError) Diag(src diag.Source) *diag.Error {
	return &diag.Error{
		Type:    "compilation error",
		Message: fmt.Sprintf("only one %s phaser is allowed per block", e.Kind),
		Context: *diag.ContextIn(src, e.Dup),
		Cause:   e,
	}
}

// Check checks a block. It returns nil, one *DuplicateError, or a combination
// of them made with errutil.Multi, in source order. A block with two
// different once-only kinds is fine.
func Check(b Block) error {
	var seen [nKinds]*Decl
	var errs []error
	for i := range b.Decls {
		d := &b.Decls[i]
		if !d.Kind.OnceOnly() {
			continue
		}
		if first := seen[d.Kind]; first != nil {
			logger.Debug("duplicate phaser",
				zap.Stringer("kind", d.Kind), zap.String("block", b.Name))
			errs = append(errs, &DuplicateError{d.Kind, b.Name, first.Range, d.Range})
			continue
		}
		seen[d.Kind] = d
	}
	return errutil.Multi(errs...)
}

// CheckAll checks blocks concurrently, each with its own state. The errors
// are combined in the order of blocks.
func CheckAll(ctx context.Context, blocks []Block) error {
	errs := make([]error, len(blocks))
	g, ctx := errgroup.WithContext(ctx)
	for i, b := range blocks {
		i, b := i, b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			errs[i] = Check(b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return errutil.Multi(errs...)
}
