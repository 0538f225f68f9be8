package tns

import (
	"github.com/ardnew/tnsora/fsio"
	"github.com/ardnew/tnsora/log"
)

// FileName is the conventional name of the network directory file.
const FileName = "tnsnames.ora"

// DefaultEncoding is the text encoding assumed when none is configured.
const DefaultEncoding = "utf-8"

// FileSystem is the narrow I/O surface the package reaches files through.
// [fsio.OS] implements it on the host filesystem.
type FileSystem interface {
	ReadText(path, encoding string) (string, error)
	CreateTempDir() (string, error)
	WriteBytes(path string, data []byte) error
}

// options holds the settings that affect parsing and file handling.
type options struct {
	bareLF   bool
	encoding string
	fs       FileSystem
	logger   log.Logger // zero value discards everything
}

// Option configures parsing or file handling behavior.
type Option func(*options)

func makeOptions(opts ...Option) options {
	o := options{
		encoding: DefaultEncoding,
		fs:       fsio.OS{},
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithBareLineFeed makes a lone '\n' count as a line terminator.
// By default only CR LF ends a line, and a bare '\n' is a syntax error.
func WithBareLineFeed(enable bool) Option {
	return func(o *options) {
		o.bareLF = enable
	}
}

// WithEncoding sets the text encoding used to read files.
// An empty name selects [DefaultEncoding].
func WithEncoding(name string) Option {
	return func(o *options) {
		if name == "" {
			name = DefaultEncoding
		}

		o.encoding = name
	}
}

// WithFileSystem sets the I/O collaborator used by file operations.
// A nil value selects [fsio.OS].
func WithFileSystem(fs FileSystem) Option {
	return func(o *options) {
		if fs == nil {
			fs = fsio.OS{}
		}

		o.fs = fs
	}
}

// WithLogger sets the logger used for trace output.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
