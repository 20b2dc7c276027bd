package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Suggest explains where the grammar stopped matching a line.
type Suggest struct {
	Complete bool     `help:"List candidates for the word being typed at the end of TEXT." short:"c"`
	Text     []string `arg:""                                                              help:"Input text; words are joined by single spaces."`
}

// Run executes the suggest command.
func (s *Suggest) Run(ctx context.Context) error {
	g, err := LoadGrammar(ctx)
	if err != nil {
		return err
	}

	text := strings.Join(s.Text, " ")
	out := stdout(ctx)

	if s.Complete {
		for _, c := range g.Complete(text) {
			if _, err := fmt.Fprintln(out, c); err != nil {
				return ErrWriteOutput.Wrap(err)
			}
		}

		return nil
	}

	if _, err := io.WriteString(out, analysisText(g.Analyze(text))); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
