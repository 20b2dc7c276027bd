package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/chatgram/grammar"
	"github.com/ardnew/chatgram/log"
)

// Parse matches each input line against the grammar and prints the result.
type Parse struct {
	Format  string   `default:"json" enum:"${resultFormats}" help:"Output format (${enum})."                   short:"f"`
	Indent  int      `default:"0"                            help:"Indent width for json and yaml output."`
	Analyze bool     `                                       help:"Report consumed words and expected tokens." short:"a"`
	Cache   int      `default:"1024"                         help:"Number of distinct lines to memoize."`
	Text    []string `arg:""                                 help:"Lines to parse; stdin is read when omitted." optional:""`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	g, err := LoadGrammar(ctx)
	if err != nil {
		return err
	}

	out := stdout(ctx)
	cache := grammar.NewCache(g, p.Cache)

	for line, err := range inputLines(ctx, p.Text) {
		if err != nil {
			return err
		}

		err = p.writeLine(ctx, out, g, cache, line)
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}

// writeLine parses line and writes its result, or its analysis report when
// --analyze is set. Analysis bypasses the cache.
func (p *Parse) writeLine(
	ctx context.Context,
	w io.Writer,
	g *grammar.Grammar,
	cache *grammar.Cache,
	line string,
) error {
	if p.Analyze {
		a := g.Analyze(line)

		log.TraceContext(ctx, "analyzed line",
			slog.String("line", line),
			slog.Int("consumed", a.Consumed),
		)

		return p.writeReport(w, a)
	}

	result := cache.Parse(line)

	log.TraceContext(ctx, "parsed line",
		slog.String("line", line),
		slog.Int("fields", len(result)),
	)

	return grammar.FormatResult(w, result, p.Format, p.Indent)
}

// report is the --analyze output for one line.
type report struct {
	Result   grammar.Result `json:"result"             yaml:"result"`
	Words    []string       `json:"words"              yaml:"words"`
	Consumed int            `json:"consumed"           yaml:"consumed"`
	Expected []string       `json:"expected,omitempty" yaml:"expected,omitempty"`
	Suggest  []string       `json:"suggest,omitempty"  yaml:"suggest,omitempty"`
}

func newReport(a grammar.Analysis) report {
	words := a.Words
	if words == nil {
		words = []string{}
	}

	return report{
		Result:   a.Result,
		Words:    words,
		Consumed: a.Consumed,
		Expected: a.Expected,
		Suggest:  a.Suggest(),
	}
}

func (p *Parse) writeReport(w io.Writer, a grammar.Analysis) error {
	rep := newReport(a)

	switch p.Format {
	case grammar.FormatJSON:
		var (
			data []byte
			err  error
		)

		if p.Indent > 0 {
			data, err = json.MarshalIndent(rep, "", strings.Repeat(" ", p.Indent))
		} else {
			data, err = json.Marshal(rep)
		}

		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = fmt.Fprintf(w, "%s\n", data)

		return err

	case grammar.FormatYAML:
		indent := p.Indent
		if indent < 1 {
			indent = 2
		}

		data, err := yaml.MarshalWithOptions(rep, yaml.Indent(indent))
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(data)

		return err
	}

	if err := grammar.FormatResult(w, rep.Result, p.Format, p.Indent); err != nil {
		return err
	}

	_, err := io.WriteString(w, analysisText(a))

	return err
}

// analysisText renders the parts of an Analysis beyond its Result, one
// "key: value" line each.
func analysisText(a grammar.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "consumed: %d/%d\n", a.Consumed, len(a.Words))

	if rest := a.Remaining(); len(rest) > 0 {
		fmt.Fprintf(&b, "ignored: %s\n", strings.Join(rest, " "))
	}

	if len(a.Expected) > 0 {
		fmt.Fprintf(&b, "expected: %s\n", strings.Join(a.Expected, ", "))
	}

	if s := a.Suggest(); len(s) > 0 {
		fmt.Fprintf(&b, "did you mean: %s\n", strings.Join(s, ", "))
	}

	return b.String()
}
