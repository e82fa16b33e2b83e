package phaser

// Kind is the kind of a phaser.
type Kind uint8

// Phaser kinds.
const (
	BEGIN Kind = iota
	CHECK
	INIT
	END
	ENTER
	LEAVE
	KEEP
	UNDO
	FIRST
	NEXT
	LAST
	PRE
	POST
	CATCH
	CONTROL
	QUIT
	CLOSE
	nKinds
)

var kindNames = [...]string{
	"BEGIN", "CHECK", "INIT", "END", "ENTER", "LEAVE", "KEEP", "UNDO",
	"FIRST", "NEXT", "LAST", "PRE", "POST", "CATCH", "CONTROL", "QUIT", "CLOSE",
}

func (k Kind) String() string {
	if k < nKinds {
		return kindNames[k]
	}
	return "!(bad phaser kind)"
}

// OnceOnly reports whether a block may declare at most one phaser of kind k.
func (k Kind) OnceOnly() bool { return k == CATCH || k == CONTROL }

// ParseKind parses the name of a phaser kind, like "CATCH".
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}
