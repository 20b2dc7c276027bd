package grammar_test

import (
	"fmt"
	"os"

	"github.com/ardnew/chatgram/grammar"
)

func Example() {
	g := grammar.MustNew(
		grammar.Literal("root", "!f").ChainBranch(
			grammar.Declare("talk").ChainBranch(
				grammar.Declare("join"),
				grammar.Declare("leave"),
			),
			grammar.Declare("poll").ChainBranch(
				grammar.Declare("open").ChainList(
					grammar.String("title"),
					grammar.String("options").StoreAsVarArg(),
				),
			),
		),
	)

	for _, msg := range []string{
		"!f talk join",
		"!f talk dance",
		`!f poll open Lunch\ today? pizza tacos`,
		"hello",
	} {
		fmt.Println(g.Parse(msg).Path())
	}

	v, _ := g.Parse(`!f poll open Lunch\ today? pizza tacos`).
		Lookup("root", "poll", "open", "title")
	fmt.Println(v.Word())
	// Output:
	// [root talk join]
	// [root talk]
	// [root poll open options title]
	// []
	// Lunch today?
}

func ExampleGrammar_Analyze() {
	g := grammar.MustNew(
		grammar.Literal("root", "!f").ChainBranch(
			grammar.Declare("join"),
			grammar.Declare("leave"),
		),
	)

	a := g.Analyze("!f lave")
	fmt.Println(a.Consumed, a.Expected, a.Suggest())
	// Output:
	// 1 [join leave] [leave]
}

func ExampleGrammar_Complete() {
	g := grammar.MustNew(
		grammar.Literal("root", "!f").ChainBranch(
			grammar.Declare("talk"),
			grammar.Declare("poll"),
			grammar.Declare("help"),
		),
	)

	fmt.Println(g.Complete("!f "))
	fmt.Println(g.Complete("!f ta"))
	// Output:
	// [talk poll help]
	// [talk]
}

func ExampleFormatResult() {
	g := grammar.MustNew(
		grammar.Declare("vote").ChainSet(
			grammar.Integer("choice").StoreAsVarArg(),
		),
	)

	_ = grammar.FormatResult(os.Stdout, g.Parse("vote 1 3"), grammar.FormatJSON, 0)
	// Output:
	// {"vote":{"choice":["1","3"]}}
}
