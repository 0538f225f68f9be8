package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyHandler writes colorized key=value lines.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	prefix string // dotted group path
	attrs  []byte // preformatted attributes from WithAttrs
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, "", slog.Time(slog.TimeKey, r.Time))
	}

	h.writeAttr(buf, "", slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource && r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := frames.Next()
		h.writeAttr(buf, "", slog.String(slog.SourceKey, f.File+":"+strconv.Itoa(f.Line)))
	}

	h.writeAttr(buf, "", slog.String(slog.MessageKey, r.Message))

	buf.Write(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	buf := bytes.NewBuffer(slices.Clone(h.attrs))
	for _, a := range attrs {
		// WithAttrs output always follows the message.
		buf.WriteByte(' ')
		h.writeAttrBody(buf, h.prefix, a)
	}

	c := *h
	c.attrs = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	h.writeAttrBody(buf, prefix, a)
}

func (h *prettyHandler) writeAttrBody(buf *bytes.Buffer, prefix string, a slog.Attr) {
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		var groups []string
		if prefix != "" {
			groups = strings.Split(strings.TrimSuffix(prefix, "."), ".")
		}

		a = h.opts.ReplaceAttr(groups, a)
	}

	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		// Drop the separator written for an elided attribute.
		if n := buf.Len(); n > 0 && buf.Bytes()[n-1] == ' ' {
			buf.Truncate(n - 1)
		}

		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		sub := prefix
		if a.Key != "" {
			sub = prefix + a.Key + "."
		}

		for i, ga := range group {
			if i > 0 {
				buf.WriteByte(' ')
			}

			h.writeAttrBody(buf, sub, ga)
		}

		return
	}

	buf.WriteString(colorGray)
	buf.WriteString(prefix)
	buf.WriteString(a.Key)
	buf.WriteString(colorReset)
	buf.WriteByte('=')

	if a.Key == slog.LevelKey {
		writeLevel(buf, a.Value)

		return
	}

	writeValue(buf, a.Value)
}

func writeLevel(buf *bytes.Buffer, v slog.Value) {
	s := v.String()
	color := colorGreen

	switch {
	case strings.HasPrefix(s, "TRACE"):
		color = colorMagenta
	case strings.HasPrefix(s, "DEBUG"):
		color = colorBlue
	case strings.HasPrefix(s, "WARN"):
		color = colorYellow
	case strings.HasPrefix(s, "ERROR"):
		color = colorRed
	}

	buf.WriteString(color)
	buf.WriteString(s)
	buf.WriteString(colorReset)
}

func writeValue(buf *bytes.Buffer, v slog.Value) {
	var color, text string

	switch v.Kind() {
	case slog.KindString:
		color, text = colorCyan, v.String()
	case slog.KindInt64:
		color, text = colorYellow, strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		color, text = colorYellow, strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		color, text = colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		color, text = colorMagenta, strconv.FormatBool(v.Bool())
	case slog.KindDuration:
		color, text = colorYellow, v.Duration().String()
	case slog.KindTime:
		color, text = colorGray, v.Time().Format(time.RFC3339)
	default:
		if err, ok := v.Any().(error); ok {
			color, text = colorRed, err.Error()
		} else {
			color, text = colorGreen, v.String()
		}
	}

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(colorReset)
}
