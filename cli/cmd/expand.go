package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/tnsora/log"
	"github.com/ardnew/tnsora/tns"
)

// Expand splits entries naming several services into one entry per
// service.
//
// With --dir, and no explicit --source, the tnsnames.ora in that directory
// is expanded into a new temporary directory whose path is printed.
// Otherwise the expanded input is printed.
type Expand struct {
	outputFlags

	Dir string `env:"TNS_ADMIN" help:"Expand ${file} in this directory into a new temporary directory." placeholder:"DIR" short:"d" type:"existingdir"`
}

// Run executes the expand command.
func (e *Expand) Run(ctx context.Context) error {
	in := inputFrom(ctx)

	if e.Dir != "" && len(in.Sources) == 0 {
		return e.expandDir(ctx, in)
	}

	doc, err := in.Load(ctx)
	if err != nil {
		return err
	}

	return render(ctx, doc.Expand(), e.Output, e.Indent)
}

func (e *Expand) expandDir(ctx context.Context, in Input) error {
	tmp, err := tns.ExpandFileInDirectory(ctx, e.Dir, in.Options()...)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "expanded directory",
		slog.String("dir", e.Dir),
		slog.String("output", tmp),
	)

	return write(ctx, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, tmp)

		return err
	})
}
