package grammar

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// Output formats understood by [FormatResult].
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTree = "tree"
)

// Formats lists the output formats understood by [FormatResult].
var Formats = []string{FormatJSON, FormatYAML, FormatTree}

// Format writes the token tree as an indented listing. Each line shows a
// token's name, its recognizer, and any chain or store strategy other than
// the default:
//
//	root "!f"
//	  talk "talk"
//	    join "join"
//	  poll "poll"
//	    open "open" list
//	      title <any> leaf
//	      options <any> vararg
func (g *Grammar) Format(w io.Writer) error {
	var b strings.Builder

	formatToken(&b, g.root, 0)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return WrapError(err)
	}

	return nil
}

func formatToken(b *strings.Builder, t Token, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(t.name)
	b.WriteByte(' ')
	b.WriteString(describe(t.recognizer))

	if len(t.children) > 0 && t.chain != ChainBranch {
		b.WriteByte(' ')
		b.WriteString(t.chain.String())
	}

	if t.store != StoreSubtree {
		b.WriteByte(' ')
		b.WriteString(t.store.String())
	}

	b.WriteByte('\n')

	for _, child := range t.children {
		formatToken(b, child, depth+1)
	}
}

// FormatResult writes r to w in the named format. The indent is the number
// of spaces per nesting level; zero writes compact JSON and is treated as 2
// for the other formats.
//
// The tree format lists one field per line, leaves as "name: word" and
// varargs as "name: [w1 w2]".
func FormatResult(w io.Writer, r Result, format string, indent int) error {
	var (
		out []byte
		err error
	)

	switch strings.ToLower(format) {
	case FormatJSON:
		if indent > 0 {
			out, err = json.MarshalIndent(r, "", strings.Repeat(" ", indent))
		} else {
			out, err = json.Marshal(r)
		}

		out = append(out, '\n')

	case FormatYAML:
		out, err = yaml.MarshalWithOptions(r.Native(), yaml.Indent(orDefault(indent)))

	case FormatTree:
		var b strings.Builder

		formatResult(&b, r, orDefault(indent), 0)
		out = []byte(b.String())

	default:
		return ErrFormat.With(
			slog.String("format", format),
			slog.String("valid", strings.Join(Formats, ", ")),
		)
	}

	if err != nil {
		return WrapError(err)
	}

	if _, err := w.Write(out); err != nil {
		return WrapError(err)
	}

	return nil
}

func orDefault(indent int) int {
	if indent < 1 {
		return 2
	}

	return indent
}

func formatResult(b *strings.Builder, r Result, indent, depth int) {
	pad := strings.Repeat(" ", indent*depth)

	for _, name := range slices.Sorted(maps.Keys(r)) {
		v := r[name]

		switch v.kind {
		case KindSubtree:
			fmt.Fprintf(b, "%s%s\n", pad, name)
			formatResult(b, v.tree, indent, depth+1)

		case KindLeaf:
			fmt.Fprintf(b, "%s%s: %s\n", pad, name, v.word)

		case KindVarArg:
			fmt.Fprintf(b, "%s%s: %q\n", pad, name, v.words)
		}
	}
}
