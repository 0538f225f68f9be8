package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/tnsora/log"
	"github.com/ardnew/tnsora/tns"
)

// Lookup prints the entry that binds a service name.
type Lookup struct {
	outputFlags

	Param string `help:"Print only the values of this parameter, one per line." placeholder:"NAME" short:"k"`

	Service string `arg:"" help:"Service name (case-insensitive)."`
}

// Run executes the lookup command.
func (l *Lookup) Run(ctx context.Context) error {
	doc, err := inputFrom(ctx).Load(ctx)
	if err != nil {
		return err
	}

	entry, err := doc.Lookup(l.Service)
	if err != nil {
		log.DebugContext(ctx, "lookup failed", slog.Any("error", err))

		return err
	}

	if l.Param != "" {
		return l.printParam(ctx, entry)
	}

	// Print only the matched name, sharing the descriptor.
	name := l.Service

	for _, s := range entry.Services() {
		if strings.EqualFold(s, l.Service) {
			name = s

			break
		}
	}

	single := tns.NewDocument(tns.NewEntry(entry.Parameter(), name))

	return render(ctx, single, l.Output, l.Indent)
}

func (l *Lookup) printParam(ctx context.Context, entry *tns.Entry) error {
	values := entry.Parameter().Atoms()[strings.ToUpper(l.Param)]
	if len(values) == 0 {
		return ErrNoMatch.With(
			slog.String("service", l.Service),
			slog.String("param", l.Param),
		)
	}

	return write(ctx, func(w io.Writer) error {
		for _, v := range values {
			if _, err := fmt.Fprintln(w, v); err != nil {
				return err
			}
		}

		return nil
	})
}
