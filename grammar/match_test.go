package grammar

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
	"testing"
)

// talkGrammar is the root -> talk -> {join, leave} grammar.
func talkGrammar(t *testing.T) *Grammar {
	t.Helper()

	g, err := New(
		Literal("root", "!f").ChainBranch(
			Declare("talk").ChainBranch(
				Declare("join"),
				Declare("leave"),
			),
		),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return g
}

func TestParse_EndToEnd(t *testing.T) {
	t.Parallel()

	g := talkGrammar(t)

	tests := []struct {
		input string
		want  map[string]any
	}{
		{
			input: "!f talk join",
			want: map[string]any{"root": map[string]any{
				"talk": map[string]any{"join": map[string]any{}},
			}},
		},
		{
			input: "!f talk dance",
			want: map[string]any{"root": map[string]any{
				"talk": map[string]any{},
			}},
		},
		{
			input: "!f   talk\tleave  ",
			want: map[string]any{"root": map[string]any{
				"talk": map[string]any{"leave": map[string]any{}},
			}},
		},
		{
			input: "!f",
			want:  map[string]any{"root": map[string]any{}},
		},
		{
			input: "hello",
			want:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := g.Parse(tt.input).Native()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_EmptyInputLeavesRootAbsent(t *testing.T) {
	t.Parallel()

	g := talkGrammar(t)

	for _, in := range []string{"", " ", "\t\n", `\`} {
		r := g.Parse(in)
		if r.Has("root") || len(r) != 0 {
			t.Errorf("Parse(%q) = %v, want empty result", in, r.Native())
		}
	}
}

func TestParse_BranchCommits(t *testing.T) {
	t.Parallel()

	g := MustNew(
		Declare("cmd").ChainBranch(
			Declare("first", AnyWord).ChainSingle(Declare("x")),
			Declare("second", Exact("join")).ChainSingle(Declare("y")),
		),
	)

	// "first" accepts "join" before "second" is considered, and no
	// backtracking happens when its child then fails to match "y".
	r := g.Parse("cmd join y")

	if !r.Tree("cmd").Has("first") {
		t.Fatalf("earlier sibling did not win: %v", r.Native())
	}

	if r.Tree("cmd").Has("second") {
		t.Errorf("later sibling also matched: %v", r.Native())
	}

	if got := r.Tree("cmd").Tree("first"); len(got) != 0 {
		t.Errorf("first child = %v, want empty subtree", got.Native())
	}
}

func TestParse_BranchOnlyOneChild(t *testing.T) {
	t.Parallel()

	g := MustNew(Declare("cmd").ChainBranch(Declare("join"), Declare("leave")))

	r := g.Parse("cmd join leave")
	tree := r.Tree("cmd")

	if !tree.Has("join") || tree.Has("leave") {
		t.Errorf("Parse() = %v, want only join", r.Native())
	}
}

func TestParse_SetRepetition(t *testing.T) {
	t.Parallel()

	a := Declare("a", Exact("a"))
	b := Declare("b", Exact("b"))

	t.Run("vararg accumulates", func(t *testing.T) {
		t.Parallel()

		g := MustNew(Declare("cmd").ChainSet(a.StoreAsVarArg(), b.StoreAsVarArg()))

		for _, in := range []string{"cmd a b a", "cmd b a a", "cmd a a b"} {
			tree := g.Parse(in).Tree("cmd")

			if got := tree.Words("a"); !slices.Equal(got, []string{"a", "a"}) {
				t.Errorf("%q: a = %q, want [a a]", in, got)
			}

			if got := tree.Words("b"); !slices.Equal(got, []string{"b"}) {
				t.Errorf("%q: b = %q, want [b]", in, got)
			}
		}
	})

	t.Run("leaf keeps last", func(t *testing.T) {
		t.Parallel()

		g := MustNew(Declare("cmd").ChainSet(
			Integer("n"),
			Declare("flag", Exact("-v")),
		))

		an := g.Analyze("cmd 1 -v 2")
		if !an.Complete() {
			t.Fatalf("consumed %d of %d words", an.Consumed, len(an.Words))
		}

		if got, _ := an.Result.Tree("cmd").Word("n"); got != "2" {
			t.Errorf("n = %q, want 2", got)
		}
	})

	t.Run("stops when a sweep matches nothing", func(t *testing.T) {
		t.Parallel()

		g := MustNew(Declare("cmd").ChainSet(a.StoreAsVarArg(), b.StoreAsVarArg()))

		an := g.Analyze("cmd a c b")
		if an.Consumed != 2 {
			t.Errorf("consumed %d words, want 2", an.Consumed)
		}

		if an.Result.Tree("cmd").Has("b") {
			t.Error("b matched after an unrecognized word")
		}
	})
}

func TestParse_ListVarArg(t *testing.T) {
	t.Parallel()

	g := MustNew(Declare("poll").ChainList(
		String("title"),
		String("options").StoreAsVarArg(),
	))

	tests := []struct {
		input   string
		title   string
		options []string
	}{
		{"poll Pizza Pepperoni Veggie Cheese", "Pizza", []string{"Pepperoni", "Veggie", "Cheese"}},
		{`poll Best\ pizza? Pepperoni Veggie`, "Best pizza?", []string{"Pepperoni", "Veggie"}},
		{"poll Pizza", "Pizza", nil},
		{"poll", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			tree := g.Parse(tt.input).Tree("poll")

			title, _ := tree.Word("title")
			if title != tt.title {
				t.Errorf("title = %q, want %q", title, tt.title)
			}

			if got := tree.Words("options"); !slices.Equal(got, tt.options) {
				t.Errorf("options = %q, want %q", got, tt.options)
			}

			if tt.options == nil && tree.Has("options") {
				t.Error("options recorded without any match")
			}
		})
	}
}

func TestParse_ListChildrenIndependent(t *testing.T) {
	t.Parallel()

	g := MustNew(Declare("cmd").ChainList(
		Integer("count"),
		String("name"),
	))

	tree := g.Parse("cmd bob").Tree("cmd")

	if tree.Has("count") {
		t.Error("count matched a non-integer")
	}

	if got, ok := tree.Word("name"); !ok || got != "bob" {
		t.Errorf("name = %q, %v; want bob", got, ok)
	}
}

func TestParse_Single(t *testing.T) {
	t.Parallel()

	g := MustNew(Declare("vol").ChainSingle(Integer("level")))

	if got, ok := g.Parse("vol 11").Tree("vol").Word("level"); !ok || got != "11" {
		t.Errorf("level = %q, %v", got, ok)
	}

	r := g.Parse("vol up")
	if !r.Has("vol") || r.Tree("vol").Has("level") {
		t.Errorf("Parse(vol up) = %v", r.Native())
	}
}

func TestParse_LeafDiscardsChildren(t *testing.T) {
	t.Parallel()

	g := MustNew(Declare("cmd").ChainList(
		String("user").ChainSingle(Declare("now")),
	))

	v, ok := g.Parse("cmd alice now").Lookup("cmd", "user")
	if !ok || v.Kind() != KindLeaf || v.Word() != "alice" {
		t.Errorf("user = %v %q, want leaf alice", v.Kind(), v.Word())
	}
}

func TestParse_DoesNotModifyWords(t *testing.T) {
	t.Parallel()

	g := talkGrammar(t)
	words := []string{"!f", "talk", "join"}

	g.ParseWords(words)

	if !slices.Equal(words, []string{"!f", "talk", "join"}) {
		t.Errorf("ParseWords modified its input: %q", words)
	}
}

func TestParse_Concurrent(t *testing.T) {
	t.Parallel()

	g := MustNew(Declare("poll").ChainList(
		String("title"),
		String("options").StoreAsVarArg(),
	))

	var wg sync.WaitGroup

	errs := make(chan error, 64)

	for i := range 64 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			in := fmt.Sprintf("poll t%d a%d b%d", i, i, i)
			tree := g.Parse(in).Tree("poll")

			want := []string{fmt.Sprintf("a%d", i), fmt.Sprintf("b%d", i)}
			if got := tree.Words("options"); !slices.Equal(got, want) {
				errs <- fmt.Errorf("%q: options = %q", in, got)
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestParse_RecognizerFunc(t *testing.T) {
	t.Parallel()

	short := RecognizerFunc(func(w string) bool { return len(w) <= 3 })
	g := MustNew(Declare("cmd").ChainList(Declare("tag", short).StoreAsVarArg()))

	if got := g.Parse("cmd a bb ccc dddd e").Tree("cmd").Words("tag"); !slices.Equal(got, []string{"a", "bb", "ccc"}) {
		t.Errorf("tag = %q", got)
	}
}
