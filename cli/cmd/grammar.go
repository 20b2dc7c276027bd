package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/chatgram/grammar"
)

// Grammar prints the loaded grammar.
type Grammar struct {
	Format string `default:"tree" enum:"tree,yaml,json" help:"Output format (${enum}); yaml and json print a declaration." short:"f"`
}

// Run executes the grammar command.
func (c *Grammar) Run(ctx context.Context) error {
	g, err := LoadGrammar(ctx)
	if err != nil {
		return err
	}

	out := stdout(ctx)

	if c.Format == grammar.FormatTree {
		if err := g.Format(out); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	decl, err := g.Decl()
	if err != nil {
		return err
	}

	var data []byte

	if c.Format == grammar.FormatJSON {
		if data, err = json.MarshalIndent(decl, "", "  "); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		data = append(data, '\n')
	} else {
		if data, err = yaml.MarshalWithOptions(decl, yaml.Indent(2)); err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}
	}

	if _, err := fmt.Fprintf(out, "%s", data); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
