package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/tnsora/log"
	"github.com/ardnew/tnsora/query"
)

// Filter prints the entries for which an expression is true.
type Filter struct {
	outputFlags

	Expand bool `help:"Expand entries before filtering." short:"x"`

	Expression string `arg:"" help:"Boolean expression over services, service, name, params, and param()."`
}

// Run executes the filter command.
func (f *Filter) Run(ctx context.Context) error {
	q, err := query.Compile(f.Expression)
	if err != nil {
		return err
	}

	doc, err := inputFrom(ctx).Load(ctx)
	if err != nil {
		return err
	}

	if f.Expand {
		doc = doc.Expand()
	}

	matched, err := q.Apply(doc)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "filter applied",
		slog.String("expression", q.String()),
		slog.Int("entries_in", doc.Len()),
		slog.Int("entries_out", matched.Len()),
	)

	if matched.Len() == 0 {
		return ErrNoMatch.With(slog.String("expression", q.String()))
	}

	return render(ctx, matched, f.Output, f.Indent)
}
