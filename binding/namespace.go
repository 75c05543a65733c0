// Package binding generates collision-free parameter names for one compiled statement.
package binding

import (
	"strconv"
	"strings"
)

// ParamName is a generated placeholder name, unique within one compiled statement.
type ParamName string

// Binding is a named placeholder and the value sent to the driver for it.
type Binding struct {
	Name  ParamName
	Value any
}

// Bindings is an ordered binding table.
type Bindings []Binding

// Map returns the bindings keyed by name.
func (bs Bindings) Map() map[string]any {
	m := make(map[string]any, len(bs))
	for _, b := range bs {
		m[string(b.Name)] = b.Value
	}
	return m
}

// Names returns the parameter names in binding order.
func (bs Bindings) Names() []ParamName {
	names := make([]ParamName, len(bs))
	for i, b := range bs {
		names[i] = b.Name
	}
	return names
}

// Lookup returns the value bound under name.
func (bs Bindings) Lookup(name ParamName) (any, bool) {
	for _, b := range bs {
		if b.Name == name {
			return b.Value, true
		}
	}
	return nil, false
}

// Namespace hands out parameter names. Names are derived from a hint, sanitized to
// [A-Za-z0-9_] and suffixed with the number of bindings held at call time.
//
// A Namespace is owned by one compilation and is not safe for concurrent use.
type Namespace struct {
	prefix  string
	entries Bindings
	index   map[ParamName]struct{}
	scopes  int
}

// New returns an empty root namespace.
func New() *Namespace {
	return &Namespace{index: make(map[ParamName]struct{})}
}

// Scope returns an empty child namespace whose names carry a prefix derived from the
// nesting position. The first child of a root namespace is prefixed "s1_", its own first
// child "s1_s1_", and so on.
func (n *Namespace) Scope() *Namespace {
	n.scopes++
	child := New()
	child.prefix = n.prefix + "s" + strconv.Itoa(n.scopes) + "_"
	return child
}

// Prefix returns the prefix applied to every generated name.
func (n *Namespace) Prefix() string { return n.prefix }

// Bind records value and returns the name it is bound under.
func (n *Namespace) Bind(hint string, value any) ParamName {
	base := n.prefix + Sanitize(hint)
	name := n.free(base, len(n.entries))
	n.add(name, value)
	return name
}

// Merge appends every binding of child in order. An incoming name that already exists is
// renamed to the first free "<name>_<n>" with n counting up from the current length.
// The returned map holds only renamed entries, old name to new name.
func (n *Namespace) Merge(child *Namespace) map[ParamName]ParamName {
	if child == nil || len(child.entries) == 0 {
		return nil
	}
	var renamed map[ParamName]ParamName
	for _, b := range child.entries {
		name := b.Name
		if n.has(name) {
			name = n.free(string(b.Name), len(n.entries))
			if renamed == nil {
				renamed = make(map[ParamName]ParamName)
			}
			renamed[b.Name] = name
		}
		n.add(name, b.Value)
	}
	return renamed
}

// Len returns the number of bindings held.
func (n *Namespace) Len() int { return len(n.entries) }

// Bindings returns a copy of the binding table in bind order.
func (n *Namespace) Bindings() Bindings {
	out := make(Bindings, len(n.entries))
	copy(out, n.entries)
	return out
}

// Reset drops every binding and the nesting counter. The prefix is kept.
func (n *Namespace) Reset() {
	n.entries = n.entries[:0]
	n.index = make(map[ParamName]struct{})
	n.scopes = 0
}

func (n *Namespace) has(name ParamName) bool {
	_, ok := n.index[name]
	return ok
}

func (n *Namespace) add(name ParamName, value any) {
	n.entries = append(n.entries, Binding{Name: name, Value: value})
	n.index[name] = struct{}{}
}

func (n *Namespace) free(base string, counter int) ParamName {
	for {
		name := ParamName(base + "_" + strconv.Itoa(counter))
		if !n.has(name) {
			return name
		}
		counter++
	}
}

// Sanitize maps every rune outside [A-Za-z0-9_] to '_'. An empty hint becomes "p".
func Sanitize(hint string) string {
	if hint == "" {
		return "p"
	}
	var sb strings.Builder
	sb.Grow(len(hint))
	for _, r := range hint {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
