package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/tnsora/tns"
)

// Output formats.
const (
	FormatNative = "native"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// Fmt parses the input and prints it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical tnsnames syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
}

// Native prints the canonical tnsnames form.
type Native struct{}

// Run executes the fmt native command.
func (*Native) Run(ctx context.Context) error {
	return formatInput(ctx, FormatNative, 0)
}

// JSON prints the structural view as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output; 0 for compact." short:"i"`
}

// Run executes the fmt json command.
func (j *JSON) Run(ctx context.Context) error {
	return formatInput(ctx, FormatJSON, j.Indent)
}

// YAML prints the structural view as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output; 0 for flow style." short:"i"`
}

// Run executes the fmt yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return formatInput(ctx, FormatYAML, y.Indent)
}

func formatInput(ctx context.Context, format string, indent int) error {
	doc, err := inputFrom(ctx).Load(ctx)
	if err != nil {
		return err
	}

	return render(ctx, doc, format, indent)
}

// outputFlags selects the output format of commands that print entries.
type outputFlags struct {
	Output string `default:"native" enum:"native,json,yaml" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2"                              help:"Indent width for json and yaml output."`
}

// render writes doc to the context's output in format.
func render(ctx context.Context, doc *tns.Document, format string, indent int) error {
	return write(ctx, func(w io.Writer) error {
		switch format {
		case FormatJSON:
			return doc.FormatJSON(ctx, w, indent)
		case FormatYAML:
			return doc.FormatYAML(ctx, w, indent)
		case FormatNative, "":
			return doc.Format(ctx, w)
		default:
			return tns.ErrInvariant.With(
				slog.String("issue", "unknown output format"),
				slog.String("format", format),
			)
		}
	})
}
