package decl

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"src.elv.sh/sigbind/pkg/diag"
	"src.elv.sh/sigbind/pkg/errutil"
	"src.elv.sh/sigbind/pkg/phaser"
	"src.elv.sh/sigbind/pkg/sig"
	"src.elv.sh/sigbind/pkg/types"
	"src.elv.sh/sigbind/pkg/vals"
	"src.elv.sh/sigbind/pkg/vars"
)

type fileDoc struct {
	Types      []typeDoc   `yaml:"types"`
	Signatures yaml.Node   `yaml:"signatures"`
	Calls      []yaml.Node `yaml:"calls"`
	Blocks     []blockDoc  `yaml:"blocks"`
}

type typeDoc struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent"`
}

type sigDoc struct {
	Params  []yaml.Node `yaml:"params"`
	Returns string      `yaml:"returns"`
}

type paramDoc struct {
	Name         string      `yaml:"name"`
	Sigil        string      `yaml:"sigil"`
	BindFailover bool        `yaml:"bindFailover"`
	Type         string      `yaml:"type"`
	Where        *whereDoc   `yaml:"where"`
	Named        bool        `yaml:"named"`
	Aliases      []string    `yaml:"aliases"`
	Slurpy       bool        `yaml:"slurpy"`
	Optional     bool        `yaml:"optional"`
	Invocant     bool        `yaml:"invocant"`
	Trait        string      `yaml:"trait"`
	Default      yaml.Node   `yaml:"default"`
	Captures     []string    `yaml:"captures"`
	Sub          []yaml.Node `yaml:"sub"`
}

type callDoc struct {
	Signature  string         `yaml:"signature"`
	Dispatch   []string       `yaml:"dispatch"`
	Positional []any          `yaml:"positional"`
	Named      map[string]any `yaml:"named"`
	// Indices of positional arguments passed in mutable containers.
	Containers []int `yaml:"containers"`
}

type blockDoc struct {
	Name    string      `yaml:"name"`
	Phasers []yaml.Node `yaml:"phasers"`
}

type phaserDoc struct {
	Kind string `yaml:"kind"`
}

// Load loads declarations from src. A YAML syntax error fails the whole
// load. Other problems are collected with errutil.Multi and returned along
// with a File holding everything that did load; they are *Error or
// *sig.MalformedError values, both convertible to diagnostics.
func Load(src diag.Source) (*File, error) {
	var doc fileDoc
	if err := yaml.Unmarshal([]byte(src.Code), &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name, err)
	}
	l := newLoader(src)
	f := &File{Source: src, Types: l.reg}

	for _, t := range doc.Types {
		if _, err := l.reg.Define(t.Name, t.Parent); err != nil {
			l.errs = append(l.errs, errorf(diag.NoRanging, "%v", err))
		}
	}

	failed := make(map[string]bool)
	switch doc.Signatures.Kind {
	case 0:
	case yaml.MappingNode:
		content := doc.Signatures.Content
		for i := 0; i+1 < len(content); i += 2 {
			key, val := content[i], content[i+1]
			r := l.nodeRange(key)
			if _, dup := f.Signature(key.Value); dup || failed[key.Value] {
				l.errs = append(l.errs, errorf(r, "signature %s declared twice", key.Value))
				continue
			}
			s, err := l.signatureDoc(val)
			if err != nil {
				failed[key.Value] = true
				l.errs = append(l.errs, err)
				continue
			}
			f.Signatures = append(f.Signatures, Signature{key.Value, s, r})
		}
	default:
		l.errs = append(l.errs,
			errorf(l.nodeRange(&doc.Signatures), "signatures must be a mapping"))
	}

	for i := range doc.Calls {
		if c, ok := l.call(&doc.Calls[i], f, failed); ok {
			f.Calls = append(f.Calls, c)
		}
	}

	for _, bd := range doc.Blocks {
		b := phaser.Block{Name: bd.Name}
		for i := range bd.Phasers {
			n := &bd.Phasers[i]
			var pd phaserDoc
			if err := n.Decode(&pd); err != nil {
				l.errs = append(l.errs, errorf(l.nodeRange(n), "%v", err))
				continue
			}
			r := l.fieldRange(n, "kind")
			k, ok := phaser.ParseKind(pd.Kind)
			if !ok {
				l.errs = append(l.errs, errorf(r, "unknown phaser kind %q", pd.Kind))
				continue
			}
			b.Decls = append(b.Decls, phaser.Decl{Kind: k, Range: r})
		}
		f.Blocks = append(f.Blocks, b)
	}

	return f, errutil.Multi(l.errs...)
}

type loader struct {
	src diag.Source
	// Byte offsets of the start of each line.
	lines []int
	reg   *types.Registry
	errs  []error
}

func newLoader(src diag.Source) *loader {
	lines := []int{0}
	for i, r := range src.Code {
		if r == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &loader{src: src, lines: lines, reg: types.NewRegistry()}
}

func (l *loader) signatureDoc(n *yaml.Node) (*sig.Signature, error) {
	var sd sigDoc
	if err := n.Decode(&sd); err != nil {
		return nil, errorf(l.nodeRange(n), "%v", err)
	}
	s, err := l.signature(sd.Params, nil)
	if err != nil {
		return nil, err
	}
	if sd.Returns != "" {
		t, err := l.reg.Parse(sd.Returns, nil)
		if err != nil {
			return nil, errorf(l.fieldRange(n, "returns"), "return type: %v", err)
		}
		s = s.WithReturns(t)
	}
	return s, nil
}

// Builds a signature. Names in outer are type captures of enclosing
// signatures.
func (l *loader) signature(nodes []yaml.Node, outer map[string]bool) (*sig.Signature, error) {
	docs := make([]paramDoc, len(nodes))
	captures := make(map[string]bool, len(outer))
	for name := range outer {
		captures[name] = true
	}
	for i := range nodes {
		if err := nodes[i].Decode(&docs[i]); err != nil {
			return nil, errorf(l.nodeRange(&nodes[i]), "%v", err)
		}
		for _, c := range docs[i].Captures {
			captures[c] = true
		}
	}
	isCapture := func(name string) bool { return captures[name] }

	specs := make([]sig.ParamSpec, len(docs))
	for i, d := range docs {
		n := &nodes[i]
		r := l.fieldRange(n, "name")
		spec := sig.ParamSpec{
			Name: d.Name, BindFailover: d.BindFailover,
			Named: d.Named, Aliases: d.Aliases,
			Slurpy: d.Slurpy, Optional: d.Optional, Invocant: d.Invocant,
			Captures: d.Captures, Range: r,
		}
		if d.Sigil != "" {
			s, ok := sig.ParseSigil(d.Sigil)
			if !ok {
				return nil, errorf(l.fieldRange(n, "sigil"), "unknown sigil class %q", d.Sigil)
			}
			spec.Sigil = s
		}
		if d.Type != "" {
			t, err := l.reg.Parse(d.Type, isCapture)
			if err != nil {
				return nil, errorf(l.fieldRange(n, "type"), "type of parameter %d: %v", i, err)
			}
			spec.Type = t
		}
		trait, ok := sig.ParseTrait(d.Trait)
		if !ok {
			return nil, errorf(l.fieldRange(n, "trait"), "unknown trait %q", d.Trait)
		}
		spec.Trait = trait
		where, err := d.Where.constraints()
		if err != nil {
			return nil, errorf(l.fieldRange(n, "where"), "%v", err)
		}
		spec.Where = where
		if d.Default.Kind != 0 {
			var v any
			if err := d.Default.Decode(&v); err != nil {
				return nil, errorf(l.fieldRange(n, "default"), "%v", err)
			}
			spec.Default = sig.Value(v)
		}
		if len(d.Sub) > 0 {
			sub, err := l.signature(d.Sub, captures)
			if err != nil {
				return nil, err
			}
			spec.Sub = sub
		}
		specs[i] = spec
	}
	return sig.New(specs...)
}

func (l *loader) call(n *yaml.Node, f *File, failed map[string]bool) (Call, bool) {
	r := l.nodeRange(n)
	var cd callDoc
	if err := n.Decode(&cd); err != nil {
		l.errs = append(l.errs, errorf(r, "%v", err))
		return Call{}, false
	}
	cands := cd.Dispatch
	if cd.Signature != "" {
		cands = append([]string{cd.Signature}, cands...)
	}
	if len(cands) == 0 {
		l.errs = append(l.errs, errorf(r, "call names no signature"))
		return Call{}, false
	}
	for _, name := range cands {
		if _, ok := f.Signature(name); !ok && !failed[name] {
			l.errs = append(l.errs, errorf(r, "unknown signature %s", name))
			return Call{}, false
		}
	}
	pos := cd.Positional
	for _, i := range cd.Containers {
		if i < 0 || i >= len(pos) {
			l.errs = append(l.errs, errorf(r, "container index %d out of range", i))
			return Call{}, false
		}
		pos[i] = vars.FromInit(pos[i])
	}
	return Call{cands, vals.Capture{Positional: pos, Named: cd.Named}, r}, true
}

// Returns the byte offset of a node's position.
func (l *loader) offset(n *yaml.Node) (int, bool) {
	if n.Line < 1 || n.Line > len(l.lines) {
		return 0, false
	}
	start := l.lines[n.Line-1]
	col := 1
	for i := range l.src.Code[start:l.lineEnd(n.Line)] {
		if col == n.Column {
			return start + i, true
		}
		col++
	}
	return l.lineEnd(n.Line), true
}

func (l *loader) lineEnd(line int) int {
	if line < len(l.lines) {
		return l.lines[line] - 1
	}
	return len(l.src.Code)
}

// The range of a scalar covers its text; other nodes extend to the end of
// their first line.
func (l *loader) nodeRange(n *yaml.Node) diag.Ranging {
	from, ok := l.offset(n)
	if !ok {
		return diag.NoRanging
	}
	end := l.lineEnd(n.Line)
	if n.Kind == yaml.ScalarNode {
		width := len(n.Value)
		if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
			width += 2
		}
		if from+width <= end {
			return diag.Ranging{From: from, To: from + width}
		}
	}
	return diag.Ranging{From: from, To: from + len(strings.TrimRight(l.src.Code[from:end], " \r"))}
}

// Returns the range of the value of key in a mapping node, or of the node
// itself.
func (l *loader) fieldRange(n *yaml.Node, key string) diag.Ranging {
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == key {
				return l.nodeRange(n.Content[i+1])
			}
		}
	}
	return l.nodeRange(n)
}
