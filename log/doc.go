// Package log provides a simplified structured logging interface based on
// [log/slog].
//
// Loggers are immutable values configured with functional options when
// they are created:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("expanded services", slog.Int("entries", 12))
//
// The zero value [Logger] discards everything, so components can hold one
// without checking whether logging was configured.
//
// A package-level default logger writes to standard error. [Config]
// replaces it with a reconfigured copy, and [Default] returns it for
// handing to other packages.
//
// Levels are [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and
// [LevelError]. Formats are [FormatJSON] (default) and [FormatText]; with
// [WithPretty] the text format is colorized.
package log
