package grammar

import (
	"slices"
	"strings"
)

// Chain selects how a token's children consume the words that follow the
// token's own word.
type Chain int

const (
	// ChainBranch tries children in declared order and commits to the first
	// one that matches. No other sibling is tried afterwards.
	ChainBranch Chain = iota

	// ChainList tries every child once, in order. Children stored with
	// [StoreVarArg] repeat until they fail to match.
	ChainList

	// ChainSet sweeps all children in order until a full sweep matches
	// nothing. Children may match any number of times, in any order.
	ChainSet

	// ChainSingle tries its only child once.
	ChainSingle
)

// String returns the declarative name of the chain strategy.
func (c Chain) String() string {
	switch c {
	case ChainBranch:
		return "branch"
	case ChainList:
		return "list"
	case ChainSet:
		return "set"
	case ChainSingle:
		return "single"
	default:
		return "Unknown"
	}
}

// ParseChain returns the chain strategy with the given declarative name.
// The empty string selects [ChainBranch].
func ParseChain(s string) (Chain, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "branch":
		return ChainBranch, true
	case "list":
		return ChainList, true
	case "set":
		return ChainSet, true
	case "single":
		return ChainSingle, true
	default:
		return 0, false
	}
}

// Store selects how a token's match is recorded in its parent's [Result].
type Store int

const (
	// StoreSubtree records the Result built by the token's children.
	StoreSubtree Store = iota

	// StoreLeaf records the matched word. Results built by children are
	// discarded.
	StoreLeaf

	// StoreVarArg appends the matched word to a sequence shared by every
	// match of the token within one parent.
	StoreVarArg
)

// String returns the declarative name of the store strategy.
func (s Store) String() string {
	switch s {
	case StoreSubtree:
		return "subtree"
	case StoreLeaf:
		return "leaf"
	case StoreVarArg:
		return "vararg"
	default:
		return "Unknown"
	}
}

// ParseStore returns the store strategy with the given declarative name.
// The empty string selects [StoreSubtree].
func ParseStore(s string) (Store, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "subtree", "tree":
		return StoreSubtree, true
	case "leaf", "value":
		return StoreLeaf, true
	case "vararg":
		return StoreVarArg, true
	default:
		return 0, false
	}
}

// Token is a named grammar node.
//
// Token is a value type. Every builder method returns a modified copy and
// leaves its receiver untouched, and children are held by value, so a token
// tree can be neither mutated after the fact nor made cyclic.
//
//	root := grammar.Literal("root", "!f").ChainBranch(
//		grammar.Declare("talk").ChainBranch(
//			grammar.Declare("join"),
//			grammar.Declare("leave"),
//		),
//	)
type Token struct {
	name       string
	recognizer Recognizer
	children   []Token
	chain      Chain
	store      Store
}

// Declare creates a token recording its match under name.
//
// Without recognizers the token matches the word equal to name. Multiple
// recognizers must all accept a word for the token to match it.
func Declare(name string, r ...Recognizer) Token {
	var rec Recognizer

	switch len(r) {
	case 0:
		rec = Exact(name)
	case 1:
		rec = r[0]
	default:
		rec = All(r...)
	}

	return Token{name: name, recognizer: rec}
}

// Literal creates a token matching exactly word, recorded under name.
func Literal(name, word string) Token {
	return Declare(name, Exact(word))
}

// Integer creates a token recording a decimal integer word as a leaf.
func Integer(name string) Token {
	return Declare(name, IntegerWord).StoreAsLeaf()
}

// String creates a token recording any word as a leaf.
func String(name string) Token {
	return Declare(name, AnyWord).StoreAsLeaf()
}

// Pattern creates a token matching words that contain a match of expr.
// It panics if expr cannot be compiled.
func Pattern(name, expr string) Token {
	return Declare(name, MustRegexp(expr))
}

// Name returns the field name the token is recorded under.
func (t Token) Name() string { return t.name }

// Recognizer returns the token's word recognizer.
func (t Token) Recognizer() Recognizer { return t.recognizer }

// Children returns a copy of the token's children.
func (t Token) Children() []Token { return slices.Clone(t.children) }

// Chaining returns the token's chain strategy.
func (t Token) Chaining() Chain { return t.chain }

// Storage returns the token's store strategy.
func (t Token) Storage() Store { return t.store }

// Chain returns a copy of t with the given chain strategy and children.
// Unlike [Token.ChainSingle], it accepts any number of children; arity is
// checked when the grammar is compiled by [New].
func (t Token) Chain(kind Chain, children ...Token) Token {
	t.chain = kind
	t.children = slices.Clone(children)

	return t
}

// ChainBranch returns a copy of t whose children form a committed choice.
func (t Token) ChainBranch(children ...Token) Token {
	return t.Chain(ChainBranch, children...)
}

// ChainList returns a copy of t whose children are each tried once, in order.
func (t Token) ChainList(children ...Token) Token {
	return t.Chain(ChainList, children...)
}

// ChainSet returns a copy of t whose children may match repeatedly in any
// order.
func (t Token) ChainSet(children ...Token) Token {
	return t.Chain(ChainSet, children...)
}

// ChainSingle returns a copy of t with exactly one child.
func (t Token) ChainSingle(child Token) Token {
	return t.Chain(ChainSingle, child)
}

// StoreAsSubtree returns a copy of t recorded as the Result of its children.
func (t Token) StoreAsSubtree() Token {
	t.store = StoreSubtree

	return t
}

// StoreAsLeaf returns a copy of t recorded as its matched word.
func (t Token) StoreAsLeaf() Token {
	t.store = StoreLeaf

	return t
}

// StoreAsVarArg returns a copy of t whose matched words accumulate.
func (t Token) StoreAsVarArg() Token {
	t.store = StoreVarArg

	return t
}

// display is how t is shown in analysis and completion candidates.
func (t Token) display() string {
	if lit, ok := literalOf(t.recognizer); ok {
		return lit
	}

	return "<" + t.name + ">"
}
