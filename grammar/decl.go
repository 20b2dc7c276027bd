package grammar

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"
)

// Decl is the declarative form of a [Token], decoded from YAML or JSON.
//
// At most one of Literal, Fold, Pattern, Expr, and Kind selects the
// recognizer; with none of them the token matches the word equal to Name.
// Kind is one of "integer", "string", or "any". The "integer" and "string"
// kinds are stored as leaves unless Store says otherwise.
//
//	name: root
//	literal: "!f"
//	children:
//	  - name: poll
//	    children:
//	      - name: open
//	        chain: list
//	        children:
//	          - {name: title, kind: string}
//	          - {name: options, kind: string, store: vararg}
type Decl struct {
	Name     string `json:"name"               yaml:"name"`
	Literal  string `json:"literal,omitempty"  yaml:"literal,omitempty"`
	Fold     string `json:"fold,omitempty"     yaml:"fold,omitempty"`
	Pattern  string `json:"pattern,omitempty"  yaml:"pattern,omitempty"`
	Expr     string `json:"expr,omitempty"     yaml:"expr,omitempty"`
	Kind     string `json:"kind,omitempty"     yaml:"kind,omitempty"`
	Chain    string `json:"chain,omitempty"    yaml:"chain,omitempty"`
	Store    string `json:"store,omitempty"    yaml:"store,omitempty"`
	Children []Decl `json:"children,omitempty" yaml:"children,omitempty"`
}

// Declaration kinds.
const (
	KindNameInteger = "integer"
	KindNameString  = "string"
	KindNameAny     = "any"
)

// LoadDecl reads a YAML (or JSON) grammar declaration from r and compiles
// it with [New].
func LoadDecl(ctx context.Context, r io.Reader, opts ...Option) (*Grammar, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseDecl(ctx, data, opts...)
}

// ParseDecl decodes a YAML (or JSON) grammar declaration and compiles it
// with [New]. Unknown fields are rejected.
func ParseDecl(ctx context.Context, data []byte, opts ...Option) (*Grammar, error) {
	var d Decl

	err := yaml.UnmarshalContext(ctx, data, &d, yaml.DisallowUnknownField())
	if err != nil {
		return nil, ErrDecl.Wrap(err)
	}

	root, err := d.Token()
	if err != nil {
		return nil, err
	}

	return New(root, opts...)
}

// Token converts d and its children into a [Token].
func (d Decl) Token() (Token, error) {
	return d.token(nil)
}

func (d Decl) token(path []string) (Token, error) {
	path = append(path, d.Name)
	at := slog.String("token", strings.Join(path, "/"))

	rec, store, err := d.recognizer()
	if err != nil {
		return Token{}, WrapError(err).With(at)
	}

	chain, ok := ParseChain(d.Chain)
	if !ok {
		return Token{}, ErrDecl.Wrap(ErrInvalidChain).
			With(slog.String("chain", d.Chain), at)
	}

	if d.Store != "" {
		if store, ok = ParseStore(d.Store); !ok {
			return Token{}, ErrDecl.Wrap(ErrInvalidStore).
				With(slog.String("store", d.Store), at)
		}
	}

	children := make([]Token, 0, len(d.Children))

	for _, cd := range d.Children {
		child, err := cd.token(path)
		if err != nil {
			return Token{}, err
		}

		children = append(children, child)
	}

	t := Declare(d.Name, rec).Chain(chain, children...)
	t.store = store

	return t, nil
}

// recognizer returns the recognizer selected by d and the default store
// strategy that goes with it.
func (d Decl) recognizer() (Recognizer, Store, error) {
	set := 0

	for _, s := range []string{d.Literal, d.Fold, d.Pattern, d.Expr, d.Kind} {
		if s != "" {
			set++
		}
	}

	if set > 1 {
		return nil, 0, ErrDecl.With(
			slog.String("issue", "more than one of literal, fold, pattern, expr, kind"),
		)
	}

	switch {
	case d.Literal != "":
		return Exact(d.Literal), StoreSubtree, nil

	case d.Fold != "":
		return Fold(d.Fold), StoreSubtree, nil

	case d.Pattern != "":
		r, err := Regexp(d.Pattern)

		return r, StoreSubtree, err

	case d.Expr != "":
		r, err := Expr(d.Expr)

		return r, StoreSubtree, err
	}

	switch strings.ToLower(d.Kind) {
	case "":
		return Exact(d.Name), StoreSubtree, nil
	case KindNameInteger:
		return IntegerWord, StoreLeaf, nil
	case KindNameString:
		return AnyWord, StoreLeaf, nil
	case KindNameAny:
		return AnyWord, StoreSubtree, nil
	default:
		return nil, 0, ErrDecl.With(slog.String("kind", d.Kind))
	}
}

// Decl returns the declarative form of the grammar's root token.
// It fails with [ErrUndeclarable] if any recognizer was built from a
// function or a combination of recognizers.
func (g *Grammar) Decl() (Decl, error) {
	return declOf(g.root)
}

func declOf(t Token) (Decl, error) {
	d := Decl{Name: t.name}

	defaultStore := StoreSubtree

	switch r := t.recognizer.(type) {
	case exact:
		if string(r) != t.name {
			d.Literal = string(r)
		}

	case fold:
		d.Fold = string(r)

	case pattern:
		d.Pattern = r.re.String()

	case exprRecognizer:
		d.Expr = r.source

	case integer:
		d.Kind = KindNameInteger
		defaultStore = StoreLeaf

	case anyWord:
		if t.store == StoreSubtree {
			d.Kind = KindNameAny
		} else {
			d.Kind = KindNameString
			defaultStore = StoreLeaf
		}

	default:
		return Decl{}, ErrUndeclarable.With(
			slog.String("token", t.name),
			slog.String("recognizer", describe(t.recognizer)),
		)
	}

	if t.store != defaultStore {
		d.Store = t.store.String()
	}

	if len(t.children) > 0 {
		if t.chain != ChainBranch {
			d.Chain = t.chain.String()
		}

		d.Children = make([]Decl, 0, len(t.children))

		for _, child := range t.children {
			cd, err := declOf(child)
			if err != nil {
				return Decl{}, err
			}

			d.Children = append(d.Children, cd)
		}
	}

	return d, nil
}
