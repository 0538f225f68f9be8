// Package query selects tnsnames entries with boolean expr-lang
// expressions.
//
// An expression is evaluated once per entry against these variables:
//
//	services  []string             every service name of the entry
//	service   string               the first service name
//	name      string               the root parameter name (usually DESCRIPTION)
//	params    map[string][]string  leaf values keyed by upper-case parameter name
//	param     func(string) string  first leaf value for a name, or ""
//
// For example:
//
//	param("PORT") == "1521" && param("HOST") startsWith "db"
//	service matches "^SALES" || "REPORTS" in services
package query

import (
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/tnsora/tns"
)

// Sentinel errors for the query package.
var (
	ErrCompile  = tns.NewError("expression compilation failed")
	ErrEvaluate = tns.NewError("expression evaluation failed")
)

// Env is the evaluation environment for one entry.
type Env struct {
	Services []string            `expr:"services"`
	Service  string              `expr:"service"`
	Name     string              `expr:"name"`
	Params   map[string][]string `expr:"params"`
	Param    func(string) string `expr:"param"`
}

// NewEnv returns the environment describing e.
func NewEnv(e *tns.Entry) Env {
	services := e.Services()

	env := Env{
		Services: services,
		Params:   map[string][]string{},
	}

	if len(services) > 0 {
		env.Service = services[0]
	}

	if p := e.Parameter(); p != nil {
		env.Name = p.Name()
		env.Params = p.Atoms()
	}

	params := env.Params
	env.Param = func(name string) string {
		if v := params[strings.ToUpper(name)]; len(v) > 0 {
			return v[0]
		}

		return ""
	}

	return env
}

// Filter is a compiled expression. It is safe for concurrent use.
type Filter struct {
	source  string
	program *vm.Program
}

// Compile type-checks expression against [Env] and requires it to yield a
// bool.
func Compile(expression string) (*Filter, error) {
	source := strings.TrimSpace(expression)
	if source == "" {
		return nil, ErrCompile.With(slog.String("issue", "empty expression"))
	}

	program, err := expr.Compile(source, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("source", source))
	}

	return &Filter{source: source, program: program}, nil
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(expression string) *Filter {
	f, err := Compile(expression)
	if err != nil {
		panic(err)
	}

	return f
}

// String returns the expression source.
func (f *Filter) String() string { return f.source }

// Match reports whether e satisfies the expression.
func (f *Filter) Match(e *tns.Entry) (bool, error) {
	out, err := expr.Run(f.program, NewEnv(e))
	if err != nil {
		return false, ErrEvaluate.Wrap(err).With(
			slog.String("source", f.source),
			slog.Any("services", e.Services()),
		)
	}

	ok, _ := out.(bool)

	return ok, nil
}

// Apply returns a document holding the entries of doc that match, in
// order. Matching entries are shared with doc, not copied.
func (f *Filter) Apply(doc *tns.Document) (*tns.Document, error) {
	var kept []*tns.Entry

	for e := range doc.All() {
		ok, err := f.Match(e)
		if err != nil {
			return nil, err
		}

		if ok {
			kept = append(kept, e)
		}
	}

	return tns.NewDocument(kept...), nil
}
