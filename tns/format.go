package tns

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// indentUnit is printed once per nesting level.
const indentUnit = "  "

// Format writes the document in canonical tnsnames syntax to the writer.
//
// Each entry is written as its comma-joined service names, '=', and its
// descriptor, followed by a blank line. Nested parameters start on a new
// line indented two spaces per level. Lines end with CR LF.
//
// A document that fails [Document.Validate] is rejected before anything is
// written.
func (d *Document) Format(_ context.Context, w io.Writer) error {
	if err := d.Validate(); err != nil {
		return err
	}

	for _, e := range d.entries {
		if err := formatEntry(e, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, endOfLine); err != nil {
			return err
		}
	}

	return nil
}

// String returns the canonical text of the document. Structural invariant
// violations are rendered as an error string.
func (d *Document) String() string {
	var buf strings.Builder
	if err := d.Format(context.Background(), &buf); err != nil {
		return fmt.Sprintf("%%!(%v)", err)
	}

	return buf.String()
}

// WriteFile writes the canonical text of the document to path through the
// configured [FileSystem].
func (d *Document) WriteFile(ctx context.Context, path string, opts ...Option) error {
	o := makeOptions(opts...)

	var buf bytes.Buffer
	if err := d.Format(ctx, &buf); err != nil {
		return err
	}

	if err := o.fs.WriteBytes(path, buf.Bytes()); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("path", path))
	}

	o.logger.TraceContext(ctx, "wrote document",
		slog.String("path", path),
		slog.Int("entry_count", d.Len()),
		slog.Int("bytes", buf.Len()),
	)

	return nil
}

// formatEntry writes "name1,name2=" and the root parameter, then a line
// terminator.
func formatEntry(e *Entry, w io.Writer) error {
	if _, err := io.WriteString(w, strings.Join(e.services, ",")+"="); err != nil {
		return err
	}

	if e.parameter == nil {
		return ErrInvariant.With(slog.String("issue", "entry has no descriptor"))
	}

	if err := formatParameter(e.parameter, w, 1, false); err != nil {
		return err
	}

	_, err := io.WriteString(w, endOfLine)

	return err
}

// formatParameter writes (name=values). Atoms are written inline; each
// nested parameter starts on a new line at indent+1.
func formatParameter(p *Parameter, w io.Writer, indent int, indentFirst bool) error {
	if len(p.values) == 0 {
		return ErrInvariant.With(
			slog.String("issue", "parameter has no values"),
			slog.String("name", p.name),
		)
	}

	prefix := ""
	if indentFirst {
		prefix = strings.Repeat(indentUnit, indent)
	}

	if _, err := io.WriteString(w, prefix+"("+p.name+"="); err != nil {
		return err
	}

	for _, v := range p.values {
		switch val := v.(type) {
		case Atom:
			if _, err := io.WriteString(w, string(val)); err != nil {
				return err
			}

		case *Parameter:
			if val == nil {
				return ErrInvariant.With(
					slog.String("issue", "nil nested parameter"),
					slog.String("name", p.name),
				)
			}

			if _, err := io.WriteString(w, endOfLine); err != nil {
				return err
			}

			if err := formatParameter(val, w, indent+1, true); err != nil {
				return err
			}

		default:
			return ErrInvariant.With(
				slog.String("issue", "unknown value type"),
				slog.String("name", p.name),
			)
		}
	}

	_, err := io.WriteString(w, ")")

	return err
}

// FormatJSON writes a structural view of the document as JSON.
// An indent of zero produces compact output.
func (d *Document) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(d, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(d)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes a structural view of the document as YAML.
// An indent of zero produces flow style output.
func (d *Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent), yaml.IndentSequence(true))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, d.view(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(yamlData)

	return err
}
