package cmd

import (
	"context"

	"github.com/ardnew/chatgram/cli/cmd/repl"
	"github.com/ardnew/chatgram/log"
)

// Repl starts an interactive session that parses each entered line.
type Repl struct {
	Format string `default:"tree" enum:"${resultFormats}" help:"Result format (${enum})." short:"f"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	g, err := LoadGrammar(ctx)
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, g, repl.Config{
		CacheDir: cacheDir,
		Format:   r.Format,
		MaxInput: settingsFrom(ctx).MaxInput,
		Logger:   log.Default().WithGroup("repl"),
	})
}
