package diag

import (
	"fmt"
	"strings"
)

// Source describes a piece of declaration text, such as a YAML file loaded by
// the decl package.
type Source struct {
	Name string
	Code string
}

// Context is a range of text in a source. It is attached to compilation
// errors so that they can be shown together with the offending declaration.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// ContextIn creates a new Context for a range in src.
func ContextIn(src Source, r Ranger) *Context {
	return NewContext(src.Name, src.Code, r)
}

// Variables controlling the style of the culprit.
var (
	culpritStart       = "\033[1;4m"
	culpritEnd         = "\033[m"
	culpritPlaceHolder = "^"
)

// SetColor turns the styling of culprits and messages on or off.
func SetColor(on bool) {
	if on {
		culpritStart, culpritEnd = "\033[1;4m", "\033[m"
		messageStart, messageEnd = "\033[31;1m", "\033[m"
	} else {
		culpritStart, culpritEnd = "", ""
		messageStart, messageEnd = "", ""
	}
}

// Position returns a "name:line:col" description of the start of the range.
// Lines and columns are 1-based; columns count runes.
func (c *Context) Position() string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	before := c.Source[:c.From]
	line := strings.Count(before, "\n") + 1
	col := len([]rune(lastLine(before))) + 1
	return fmt.Sprintf("%s:%d:%d", c.Name, line, col)
}

// Show shows the position of the Context followed by the line containing the
// culprit, with the culprit highlighted.
func (c *Context) Show(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return c.Position() + ": " + c.relevantSource(indent)
}

func (c *Context) checkPosition() error {
	if c.From == -1 {
		return fmt.Errorf("%s, unknown position", c.Name)
	} else if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func (c *Context) relevantSource(indent string) string {
	head := lastLine(c.Source[:c.From])
	culprit := strings.TrimSuffix(c.Source[c.From:c.To], "\n")
	tail := firstLine(c.Source[c.From+len(culprit):])
	if culprit == "" {
		culprit = culpritPlaceHolder
	}

	var sb strings.Builder
	sb.WriteString(head)
	for i, line := range strings.Split(culprit, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(indent)
		}
		sb.WriteString(culpritStart)
		sb.WriteString(line)
		sb.WriteString(culpritEnd)
	}
	sb.WriteString(tail)
	return sb.String()
}

func firstLine(s string) string {
	i := strings.IndexByte(s, '\n')
	if i == -1 {
		return s
	}
	return s[:i]
}

func lastLine(s string) string {
	// When s does not contain '\n', LastIndexByte returns -1, which happens to
	// be what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
