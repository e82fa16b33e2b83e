package sig

// Trait is the binding trait declared on a parameter. A parameter declares at
// most one, so conflicting traits cannot be expressed.
type Trait uint8

// Possible values of Trait.
const (
	TraitNone Trait = iota
	// TraitRw is "is rw".
	TraitRw
	// TraitCopy is "is copy".
	TraitCopy
	// TraitRaw is "is raw".
	TraitRaw
)

var traitNames = [...]string{"", "rw", "copy", "raw"}

func (t Trait) String() string { return traitNames[t] }

// ParseTrait parses "rw", "copy", "raw" or "" into a Trait.
func ParseTrait(s string) (Trait, bool) {
	for i, n := range traitNames {
		if n == s {
			return Trait(i), true
		}
	}
	return 0, false
}

// BindingMode is how the binder treats the container of an argument.
type BindingMode uint8

// Possible values of BindingMode.
const (
	// BindReadOnly binds a fresh read-only container holding the value.
	BindReadOnly BindingMode = iota
	// BindMutable binds the caller's container itself, which must be
	// assignable.
	BindMutable
	// BindCopy binds a fresh mutable container holding a copy of the value.
	BindCopy
	// BindRaw binds the argument as is.
	BindRaw
)

var bindingModeNames = [...]string{"ReadOnly", "Mutable", "Copy", "Raw"}

func (m BindingMode) String() string { return bindingModeNames[m] }

// Mode is the public classification of a parameter's binding behavior.
// Exactly one Mode applies to each parameter.
type Mode uint8

// Possible values of Mode.
const (
	ModeReadonly Mode = iota
	ModeRw
	ModeCopy
	ModeRaw
	ModeCapture
)

var modeNames = [...]string{"readonly", "rw", "copy", "raw", "capture"}

func (m Mode) String() string { return modeNames[m] }

// Arity is the arity class of a parameter.
type Arity uint8

// Possible values of Arity.
const (
	ArityPositional Arity = iota
	ArityNamed
)

func (a Arity) String() string {
	if a == ArityNamed {
		return "Named"
	}
	return "Positional"
}

// deriveMode computes the binding mode from the sigil and the declared
// trait. It returns a non-empty reason when the combination is illegal.
func deriveMode(sigil Sigil, trait Trait) (BindingMode, string) {
	switch sigil {
	case SigilCaptureAll:
		if trait == TraitRw || trait == TraitCopy {
			return 0, "a capture-all parameter cannot be " + trait.String()
		}
		return BindRaw, ""
	case SigilRaw:
		if trait == TraitRw || trait == TraitCopy {
			return 0, "a sigilless parameter cannot be " + trait.String()
		}
		return BindRaw, ""
	}
	switch trait {
	case TraitRw:
		return BindMutable, ""
	case TraitCopy:
		return BindCopy, ""
	case TraitRaw:
		return BindRaw, ""
	}
	return BindReadOnly, ""
}
