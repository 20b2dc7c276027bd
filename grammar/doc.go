// Package grammar matches chat messages against a tree of named tokens and
// returns what matched as a nested [Result].
//
// A message is split into words by a [Tokenizer]: whitespace separates
// words, and a backslash makes the next character part of the current word,
// so `title\ with\ spaces` is a single word.
//
// A grammar is a tree of [Token] values. Each token consumes exactly one
// word, accepted by its [Recognizer], and then hands the remaining words to
// its children according to its [Chain] strategy:
//
//   - [ChainBranch]: the first child that matches wins, like a subcommand.
//   - [ChainList]: every child in order, like positional arguments.
//   - [ChainSet]: children in any order, any number of times, like flags.
//   - [ChainSingle]: one child.
//
// Its [Store] strategy decides what the parent's Result records under the
// token's name: the Result of its children, the matched word, or, for
// repeating tokens, every matched word.
//
//	g := grammar.MustNew(
//		grammar.Literal("root", "!f").ChainBranch(
//			grammar.Declare("poll").ChainBranch(
//				grammar.Declare("open").ChainList(
//					grammar.String("title"),
//					grammar.String("options").StoreAsVarArg(),
//				),
//			),
//		),
//	)
//
//	r := g.Parse(`!f poll open lunch? pizza tacos`)
//	r.Lookup("root", "poll", "open", "options") // [pizza tacos]
//
// Parsing never fails. Words a grammar cannot consume are left over and
// tokens that did not match are absent from the Result, so callers decide
// what is an error by looking at which fields are present. [Grammar.Analyze]
// reports how far matching got and which tokens were expected next, and
// [Grammar.Complete] offers candidates for a partially typed message.
//
// Grammars may also be declared in YAML (see [Decl]) and recognizers may be
// written as expr-lang expressions (see [Expr]). A compiled Grammar is
// immutable and safe for concurrent use; [Cache] memoizes parses of
// repeated messages.
package grammar
