package commands

import (
	"path"
	"slices"
	"sync"

	"github.com/ardnew/chatgram/grammar"
)

// Prefix is the word that starts every command.
const Prefix = "!f"

// Grammar returns the command grammar. It is built on first use and shared.
var Grammar = sync.OnceValue(func() *grammar.Grammar {
	return grammar.MustNew(Root())
})

// Root returns the root token of the command grammar, for callers that want
// to extend it or compile it with their own options.
func Root() grammar.Token {
	return grammar.Literal("root", Prefix).ChainBranch(
		grammar.Declare("talk").ChainBranch(
			grammar.Declare("join"),
			grammar.Declare("leave"),
			grammar.Declare("skip").ChainSingle(grammar.Declare("all")),
			grammar.Declare("voice").ChainBranch(
				grammar.Declare("list"),
				grammar.Declare("set").ChainSingle(grammar.String("value")),
			),
			grammar.Declare("map").ChainBranch(
				grammar.Declare("list"),
				grammar.Declare("add").ChainList(
					grammar.String("from"),
					grammar.String("to"),
				),
				grammar.Declare("remove").ChainSingle(grammar.String("value")),
			),
		),
		grammar.Declare("poll").ChainBranch(
			grammar.Declare("open").ChainList(
				grammar.String("title"),
				grammar.String("options").StoreAsVarArg(),
			),
			grammar.Declare("repeat"),
		),
		grammar.Declare("help").ChainBranch(
			grammar.Declare("talk"),
			grammar.Declare("poll"),
		),
	)
}

// Flag marks a keyword that takes no arguments. A nil *Flag means the
// keyword was not given.
type Flag struct{}

// Value holds the single argument of commands like "voice set".
type Value struct {
	Value string `json:"value"`
}

type TalkSkip struct {
	All *Flag `json:"all"`
}

type TalkVoice struct {
	List *Flag  `json:"list"`
	Set  *Value `json:"set"`
}

type TalkMapAdd struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type TalkMap struct {
	List   *Flag       `json:"list"`
	Add    *TalkMapAdd `json:"add"`
	Remove *Value      `json:"remove"`
}

type Talk struct {
	Join  *Flag      `json:"join"`
	Leave *Flag      `json:"leave"`
	Skip  *TalkSkip  `json:"skip"`
	Voice *TalkVoice `json:"voice"`
	Map   *TalkMap   `json:"map"`
}

type PollOpen struct {
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

type Poll struct {
	Open   *PollOpen `json:"open"`
	Repeat *Flag     `json:"repeat"`
}

// Help selects the topic of "!f help". With neither field set, general
// help was requested.
type Help struct {
	Talk *Flag `json:"talk"`
	Poll *Flag `json:"poll"`
}

// Command is a decoded "!f" message. At most one of Talk, Poll, and Help is
// set; none is set for a bare "!f" or an unknown subcommand.
type Command struct {
	Talk *Talk `json:"talk"`
	Poll *Poll `json:"poll"`
	Help *Help `json:"help"`

	tree grammar.Result
}

// Parse matches text against [Grammar] and decodes the result. It reports
// false if text is not a command.
func Parse(text string) (*Command, bool) {
	return Decode(Grammar().Parse(text))
}

// Decode converts a Result produced by the command grammar into a Command.
// It reports false if the root token did not match.
func Decode(r grammar.Result) (*Command, bool) {
	tree := r.Tree("root")
	if tree == nil {
		return nil, false
	}

	c := &Command{tree: tree}
	if err := tree.Decode(c); err != nil {
		// Results of Grammar always fit Command.
		return nil, false
	}

	return c, true
}

// Result returns the parsed fields below the root token.
func (c *Command) Result() grammar.Result { return c.tree.Clone() }

// Path returns the keywords and argument names that were matched, in
// order, e.g. [talk map add from to].
func (c *Command) Path() []string { return c.tree.Path() }

// HelpPath returns the path of the help text that best describes c. For
// "!f help talk" it is "talk/help"; for any other command it is the
// command's own path, so "!f talk voice set" looks for
// "talk/voice/set/value/help".
func (c *Command) HelpPath() string {
	keys := c.helpKeys()

	return path.Join(append(keys, "help")...)
}

// HelpCandidates returns help paths from most to least specific. Callers
// show the first one that exists, ending with the general "help".
func (c *Command) HelpCandidates() []string {
	keys := c.helpKeys()
	out := make([]string, 0, len(keys)+1)

	for n := len(keys); n >= 0; n-- {
		out = append(out, path.Join(append(slices.Clone(keys[:n]), "help")...))
	}

	return out
}

func (c *Command) helpKeys() []string {
	if c.Help != nil {
		return c.tree.Tree("help").Path()
	}

	return c.Path()
}
