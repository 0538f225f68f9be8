package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tnsora/fsio"
	"github.com/ardnew/tnsora/log"
	"github.com/ardnew/tnsora/tns"
)

// AdminEnv names the directory holding the default tnsnames.ora.
const AdminEnv = "TNS_ADMIN"

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type outputKey struct{}

// WithOutput returns a context whose commands write to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

// outputFrom returns the writer set by [WithOutput], else the kong
// application's stdout, else os.Stdout.
func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// Input describes where commands read tnsnames text from.
type Input struct {
	Sources  []string   // files, or "-" for Stdin
	Encoding string     // text encoding of every source
	BareLF   bool       // accept '\n' as a line terminator
	Stdin    io.Reader  // nil means os.Stdin
	Cache    *tns.Cache // nil disables memoization
}

type inputKey struct{}

// WithInput returns a context carrying in.
func WithInput(ctx context.Context, in Input) context.Context {
	return context.WithValue(ctx, inputKey{}, in)
}

func inputFrom(ctx context.Context) Input {
	in, _ := ctx.Value(inputKey{}).(Input)

	return in
}

// Options returns the parse options selected by in.
func (in Input) Options() []tns.Option {
	return []tns.Option{
		tns.WithEncoding(in.Encoding),
		tns.WithBareLineFeed(in.BareLF),
		tns.WithLogger(log.Default()),
	}
}

// sources returns the effective source list: the configured sources with
// duplicates of the same file removed and stdin last, or the file in
// $TNS_ADMIN when none are configured.
func (in Input) sources() []string {
	if len(in.Sources) == 0 {
		if dir := os.Getenv(AdminEnv); dir != "" {
			return []string{filepath.Join(dir, tns.FileName)}
		}

		return nil
	}

	var (
		out   []string
		seen  []os.FileInfo
		stdin bool
	)

	for _, src := range in.Sources {
		if src == stdinSource {
			stdin = true

			continue
		}

		info, err := os.Stat(src)
		if err != nil {
			// Keep it so the read reports the failure.
			out = append(out, src)

			continue
		}

		if slices.ContainsFunc(seen, func(fi os.FileInfo) bool {
			return os.SameFile(fi, info)
		}) {
			continue
		}

		seen = append(seen, info)
		out = append(out, src)
	}

	if stdin {
		out = append(out, stdinSource)
	}

	return out
}

func (in Input) read(src string) (string, error) {
	if src != stdinSource {
		return fsio.ReadText(src, in.Encoding)
	}

	r := in.Stdin
	if r == nil {
		r = os.Stdin
	}

	return fsio.Decode(r, in.Encoding)
}

// Load parses every source and concatenates the results in order.
func (in Input) Load(ctx context.Context) (*tns.Document, error) {
	sources := in.sources()
	if len(sources) == 0 {
		return nil, ErrNoInput
	}

	cache := in.Cache
	if cache == nil {
		cache = new(tns.Cache)
	}

	opts := in.Options()
	docs := make([]*tns.Document, 0, len(sources))

	for _, src := range sources {
		text, err := in.read(src)
		if err != nil {
			return nil, ErrReadSource.Wrap(err).With(slog.String("source", src))
		}

		doc, err := cache.Parse(ctx, text, opts...)
		if err != nil {
			return nil, tns.WrapError(err).With(slog.String("source", src))
		}

		log.TraceContext(ctx, "loaded source",
			slog.String("source", src),
			slog.Int("entries", doc.Len()),
		)

		docs = append(docs, doc)
	}

	return docs[0].Concat(docs[1:]...), nil
}

// write runs fn against the output writer and wraps any failure.
func write(ctx context.Context, fn func(io.Writer) error) error {
	if err := fn(outputFrom(ctx)); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
