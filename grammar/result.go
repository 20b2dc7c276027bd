package grammar

import (
	"encoding/json"
	"maps"
	"slices"
)

// Kind identifies which variant a [Value] holds.
type Kind int

const (
	// KindAbsent is returned for fields that did not match. It is never
	// stored in a Result.
	KindAbsent Kind = iota

	// KindSubtree holds the Result built by a token's children.
	KindSubtree

	// KindLeaf holds a single matched word.
	KindLeaf

	// KindVarArg holds every word matched by a repeating token, in order.
	KindVarArg
)

// String returns a string representation of the value kind.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "Absent"
	case KindSubtree:
		return "Subtree"
	case KindLeaf:
		return "Leaf"
	case KindVarArg:
		return "VarArg"
	default:
		return "Unknown"
	}
}

// Value is the recorded match of one token.
type Value struct {
	kind  Kind
	tree  Result
	word  string
	words []string
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Tree returns the children's Result of a subtree value, or nil.
func (v Value) Tree() Result { return v.tree }

// Word returns the matched word of a leaf value.
func (v Value) Word() string { return v.word }

// Words returns a copy of the matched words of a vararg value.
func (v Value) Words() []string { return slices.Clone(v.words) }

// Native converts v to map[string]any, string, or []string.
func (v Value) Native() any {
	switch v.kind {
	case KindSubtree:
		return v.tree.Native()
	case KindLeaf:
		return v.word
	case KindVarArg:
		return slices.Clone(v.words)
	default:
		return nil
	}
}

// Result maps field names to the values recorded by matching tokens.
// A field that is missing did not match; that is never an error.
type Result map[string]Value

// Has reports whether the named field matched.
func (r Result) Has(name string) bool {
	_, ok := r[name]

	return ok
}

// Get returns the named field. A missing field is reported with a
// [KindAbsent] value and false.
func (r Result) Get(name string) (Value, bool) {
	v, ok := r[name]

	return v, ok
}

// Tree returns the named subtree, or nil if the field is absent or not a
// subtree.
func (r Result) Tree(name string) Result {
	return r[name].tree
}

// Word returns the named leaf word.
func (r Result) Word(name string) (string, bool) {
	v, ok := r[name]
	if !ok || v.kind != KindLeaf {
		return "", false
	}

	return v.word, true
}

// Words returns the named vararg words, or nil if the field is absent.
func (r Result) Words(name string) []string {
	return r[name].Words()
}

// Lookup follows path through nested subtrees and returns the final field.
func (r Result) Lookup(path ...string) (Value, bool) {
	if len(path) == 0 {
		return Value{}, false
	}

	v, ok := r[path[0]]

	for _, name := range path[1:] {
		if !ok || v.kind != KindSubtree {
			return Value{}, false
		}

		v, ok = v.tree[name]
	}

	return v, ok
}

// Path returns the field names of r in depth-first order, descending into
// subtrees. Sibling fields are visited in sorted order.
//
// For a command grammar, where each level records at most one field, this
// is the chain of subcommands that were invoked, e.g. [talk voice set value].
func (r Result) Path() []string {
	var path []string

	for _, name := range slices.Sorted(maps.Keys(r)) {
		path = append(path, name)

		if v := r[name]; v.kind == KindSubtree {
			path = append(path, v.tree.Path()...)
		}
	}

	return path
}

// Clone returns a deep copy of r.
func (r Result) Clone() Result {
	if r == nil {
		return nil
	}

	c := make(Result, len(r))

	for name, v := range r {
		switch v.kind {
		case KindSubtree:
			v.tree = v.tree.Clone()
		case KindVarArg:
			v.words = slices.Clone(v.words)
		}

		c[name] = v
	}

	return c
}

// Native converts r to nested Go values: subtrees become map[string]any
// (empty, never nil), leaves become string, and varargs become []string.
func (r Result) Native() map[string]any {
	out := make(map[string]any, len(r))

	for name, v := range r {
		out[name] = v.Native()
	}

	return out
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Native())
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (r Result) MarshalYAML() (any, error) {
	return r.Native(), nil
}

// Decode stores r into the value pointed to by v, which is typically a
// struct whose fields are tagged with the grammar's token names:
//
//	type Talk struct {
//		Join *struct{} `json:"join"`
//		Skip *struct {
//			All *struct{} `json:"all"`
//		} `json:"skip"`
//	}
//
// Pointer fields stay nil for absent tokens.
func (r Result) Decode(v any) error {
	data, err := json.Marshal(r.Native())
	if err != nil {
		return WrapError(err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return WrapError(err)
	}

	return nil
}
