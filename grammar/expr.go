package grammar

import (
	"log/slog"
	"strconv"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprEnv is the environment visible to recognizer expressions.
type exprEnv struct {
	Word string `expr:"word"`
}

type exprRecognizer struct {
	source  string
	program *vm.Program
}

// Expr compiles an expr-lang boolean expression into a recognizer.
// The candidate word is bound to the variable word, for example:
//
//	Expr(`len(word) <= 32 && word matches "^[a-z]+$"`)
//
// A runtime error while evaluating the program rejects the word.
func Expr(source string) (Recognizer, error) {
	program, err := expr.Compile(source, expr.Env(exprEnv{}), expr.AsBool())
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).
			With(slog.String("source", source))
	}

	return exprRecognizer{source: source, program: program}, nil
}

// MustExpr is like [Expr] but panics if source cannot be compiled.
func MustExpr(source string) Recognizer {
	r, err := Expr(source)
	if err != nil {
		panic(err)
	}

	return r
}

func (e exprRecognizer) Recognize(word string) bool {
	out, err := expr.Run(e.program, exprEnv{Word: word})
	if err != nil {
		return false
	}

	ok, _ := out.(bool)

	return ok
}

func (e exprRecognizer) String() string {
	return "expr(" + strconv.Quote(e.source) + ")"
}
