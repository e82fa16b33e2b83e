// Package vars contains the variable cells that parameters are bound to.
package vars

import (
	"errors"
	"sync"
)

// Var represents a variable: a container holding one value.
type Var interface {
	Set(v any) error
	Get() any
}

// ErrSetReadOnlyVar is returned by the Set method of a read-only variable.
var ErrSetReadOnlyVar = errors.New("cannot set read-only variable")

type readOnly struct {
	value any
}

// NewReadOnly creates a variable that is read-only and always returns an error
// on Set.
func NewReadOnly(v any) Var {
	return readOnly{v}
}

func (rv readOnly) Set(val any) error {
	return ErrSetReadOnlyVar
}

func (rv readOnly) Get() any {
	return rv.value
}

// IsReadOnly returns whether v is a read-only variable.
func IsReadOnly(v Var) bool {
	_, ok := v.(readOnly)
	return ok
}

// Cell is a mutable variable. Its access is guarded by a mutex, so a Cell
// passed to a binder may be shared with other goroutines.
type Cell struct {
	mu    sync.RWMutex
	value any
}

// FromInit creates a mutable variable with an initial value. The variable
// created can be assigned values of any type.
func FromInit(v any) *Cell {
	return &Cell{value: v}
}

// Get returns the current value.
func (c *Cell) Get() any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the current value. It never fails.
func (c *Cell) Set(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	return nil
}

// IsAssignable reports whether v is a variable whose Set may succeed.
func IsAssignable(v any) bool {
	vr, ok := v.(Var)
	return ok && !IsReadOnly(vr)
}

// Decont returns the value held by v if v is a variable, and v itself
// otherwise.
func Decont(v any) any {
	if vr, ok := v.(Var); ok {
		return vr.Get()
	}
	return v
}
