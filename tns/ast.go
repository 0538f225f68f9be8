package tns

import (
	"iter"
	"log/slog"
	"slices"
	"strings"
)

// Document is an ordered sequence of entries parsed from one input.
// Order is significant: the first entry naming a service wins.
type Document struct {
	entries []*Entry
}

// NewDocument returns a document holding the given entries in order.
func NewDocument(entries ...*Entry) *Document {
	return &Document{entries: slices.Clone(entries)}
}

// Len returns the number of entries.
func (d *Document) Len() int { return len(d.entries) }

// Entries returns a copy of the entry list.
func (d *Document) Entries() []*Entry { return slices.Clone(d.entries) }

// All returns an iterator over all entries in the document.
func (d *Document) All() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, e := range d.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Services returns every service name in document order.
func (d *Document) Services() []string {
	names := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		names = append(names, e.services...)
	}

	return names
}

// Concat returns a document with the entries of d followed by those of
// each other document. Parameters are shared, not copied.
func (d *Document) Concat(others ...*Document) *Document {
	entries := slices.Clone(d.entries)
	for _, o := range others {
		entries = append(entries, o.entries...)
	}

	return &Document{entries: entries}
}

// Validate checks the structural invariants of every entry.
func (d *Document) Validate() error {
	for i, e := range d.entries {
		if err := e.Validate(); err != nil {
			return WrapError(err).With(slog.Int("entry", i))
		}
	}

	return nil
}

// Entry binds one or more service names to a descriptor tree.
type Entry struct {
	services  []string
	parameter *Parameter
}

// NewEntry returns an entry binding services to parameter.
// The parameter is held by reference.
func NewEntry(parameter *Parameter, services ...string) *Entry {
	return &Entry{
		services:  slices.Clone(services),
		parameter: parameter,
	}
}

// Services returns a copy of the service names in appearance order.
func (e *Entry) Services() []string { return slices.Clone(e.services) }

// Parameter returns the root descriptor. It may be shared with other
// entries and must not be modified.
func (e *Entry) Parameter() *Parameter { return e.parameter }

// Validate checks that e names at least one service and that its
// descriptor tree is well formed.
func (e *Entry) Validate() error {
	if len(e.services) == 0 {
		return ErrInvariant.With(slog.String("issue", "entry has no service names"))
	}

	for _, s := range e.services {
		if !isName(s) {
			return ErrInvariant.With(
				slog.String("issue", "invalid service name"),
				slog.String("service", s),
			)
		}
	}

	if e.parameter == nil {
		return ErrInvariant.With(slog.String("issue", "entry has no descriptor"))
	}

	return e.parameter.Validate()
}

// Value is an element of a parameter's value list: either an [Atom] or a
// nested [*Parameter].
type Value interface {
	value()
}

// Atom is a bare leaf token such as a host name, port, or protocol.
type Atom string

func (Atom) value() {}

// Parameter is a (name=value) node of a descriptor tree.
//
// Its values are homogeneous: a single atom, or one or more nested
// parameters. The constructors guarantee this.
type Parameter struct {
	name   string
	values []Value
}

func (*Parameter) value() {}

// NewAtom returns a leaf parameter (name=atom).
func NewAtom(name, atom string) *Parameter {
	return &Parameter{name: name, values: []Value{Atom(atom)}}
}

// NewParameter returns a parameter whose value is the list of children.
func NewParameter(name string, children ...*Parameter) *Parameter {
	values := make([]Value, len(children))
	for i, c := range children {
		values[i] = c
	}

	return &Parameter{name: name, values: values}
}

// Name returns the parameter key.
func (p *Parameter) Name() string { return p.name }

// Values returns a copy of the value list.
func (p *Parameter) Values() []Value { return slices.Clone(p.values) }

// Atom returns the leaf value and true when p holds an atom.
func (p *Parameter) Atom() (string, bool) {
	if len(p.values) != 1 {
		return "", false
	}

	a, ok := p.values[0].(Atom)

	return string(a), ok
}

// Children returns the nested parameters, or nil when p is a leaf.
func (p *Parameter) Children() []*Parameter {
	var children []*Parameter

	for _, v := range p.values {
		if c, ok := v.(*Parameter); ok {
			children = append(children, c)
		}
	}

	return children
}

// Find returns the first parameter in depth-first order, starting with p
// itself, whose name equals name ignoring ASCII case.
func (p *Parameter) Find(name string) (*Parameter, bool) {
	if strings.EqualFold(p.name, name) {
		return p, true
	}

	for _, c := range p.Children() {
		if found, ok := c.Find(name); ok {
			return found, true
		}
	}

	return nil, false
}

// Atoms collects every leaf value in the tree keyed by upper-cased
// parameter name, in depth-first order.
func (p *Parameter) Atoms() map[string][]string {
	atoms := make(map[string][]string)
	p.collect(atoms)

	return atoms
}

func (p *Parameter) collect(atoms map[string][]string) {
	if a, ok := p.Atom(); ok {
		key := strings.ToUpper(p.name)
		atoms[key] = append(atoms[key], a)

		return
	}

	for _, c := range p.Children() {
		c.collect(atoms)
	}
}

// Validate checks that p and all of its descendants have a valid name and a
// non-empty, homogeneous value list.
func (p *Parameter) Validate() error {
	if !isName(p.name) {
		return ErrInvariant.With(
			slog.String("issue", "invalid parameter name"),
			slog.String("name", p.name),
		)
	}

	if len(p.values) == 0 {
		return ErrInvariant.With(
			slog.String("issue", "parameter has no values"),
			slog.String("name", p.name),
		)
	}

	if _, ok := p.values[0].(Atom); ok {
		if len(p.values) != 1 {
			return ErrInvariant.With(
				slog.String("issue", "parameter has more than one atom"),
				slog.String("name", p.name),
			)
		}

		if !isToken(string(p.values[0].(Atom))) {
			return ErrInvariant.With(
				slog.String("issue", "invalid atom"),
				slog.String("name", p.name),
			)
		}

		return nil
	}

	for _, v := range p.values {
		c, ok := v.(*Parameter)
		if !ok || c == nil {
			return ErrInvariant.With(
				slog.String("issue", "parameter mixes atoms and parameters"),
				slog.String("name", p.name),
			)
		}

		if err := c.Validate(); err != nil {
			return err
		}
	}

	return nil
}
