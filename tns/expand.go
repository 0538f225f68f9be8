package tns

import (
	"context"
	"log/slog"
	"path/filepath"
)

// Expand returns a document in which every entry naming N services is
// replaced by N entries naming one service each.
//
// Entries keep their order, and services keep their order within each
// entry. Every expanded entry refers to the same *Parameter as the entry it
// came from; descriptors are never copied.
func (d *Document) Expand() *Document {
	n := 0
	for _, e := range d.entries {
		n += len(e.services)
	}

	entries := make([]*Entry, 0, n)

	for _, e := range d.entries {
		for _, service := range e.services {
			entries = append(entries, &Entry{
				services:  []string{service},
				parameter: e.parameter,
			})
		}
	}

	return &Document{entries: entries}
}

// ExpandFileInDirectory reads [FileName] from dir, expands it, and writes
// the result under the same name in a newly created temporary directory.
// It returns the path of that directory.
func ExpandFileInDirectory(ctx context.Context, dir string, opts ...Option) (string, error) {
	o := makeOptions(opts...)

	src := filepath.Join(dir, FileName)

	doc, err := ParseFile(ctx, src, opts...)
	if err != nil {
		return "", err
	}

	expanded := doc.Expand()

	tmp, err := o.fs.CreateTempDir()
	if err != nil {
		return "", ErrTempDir.Wrap(err)
	}

	dst := filepath.Join(tmp, FileName)

	if err := expanded.WriteFile(ctx, dst, opts...); err != nil {
		return "", err
	}

	o.logger.DebugContext(ctx, "expanded services",
		slog.String("source", src),
		slog.String("target", dst),
		slog.Int("entries_in", doc.Len()),
		slog.Int("entries_out", expanded.Len()),
	)

	return tmp, nil
}
