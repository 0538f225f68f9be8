// Package fsio provides the file operations the tns package delegates to:
// reading text in a named encoding, creating a temporary directory, and
// writing bytes to a file.
package fsio

import (
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/ardnew/tnsora/pkg"
)

// TempDirPattern is the os.MkdirTemp pattern for [CreateTempDir].
const TempDirPattern = "tnsora-*"

// Sentinel errors for the fsio package.
var (
	ErrOpen     = pkg.MakeErrorf("open file")
	ErrRead     = pkg.MakeErrorf("read file")
	ErrEncoding = pkg.MakeErrorf("unsupported encoding")
	ErrWrite    = pkg.MakeErrorf("write file")
	ErrTempDir  = pkg.MakeErrorf("create temporary directory")
)

// OS implements the tns.FileSystem interface on the host filesystem.
type OS struct{}

// ReadText calls [ReadText].
func (OS) ReadText(path, encoding string) (string, error) { return ReadText(path, encoding) }

// CreateTempDir calls [CreateTempDir].
func (OS) CreateTempDir() (string, error) { return CreateTempDir() }

// WriteBytes calls [WriteBytes].
func (OS) WriteBytes(path string, data []byte) error { return WriteBytes(path, data) }

// Encoding returns the encoding registered under name, using WHATWG and
// IANA names (for example "utf-8", "windows-1252", "iso-8859-1",
// "shift_jis"). UTF-8 and the empty name return nil, meaning no decoding
// is needed.
func Encoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, ErrEncoding.Wrapf("%q", name).Wrap(err)
	}

	return enc, nil
}

// ReadText reads the file at path and decodes it from the named encoding
// to UTF-8.
func ReadText(path, encodingName string) (string, error) {
	enc, err := Encoding(encodingName)
	if err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", ErrOpen.Wrap(err)
	}
	defer file.Close()

	return decode(file, enc)
}

// Decode reads r to the end and decodes it from the named encoding to
// UTF-8.
func Decode(r io.Reader, encodingName string) (string, error) {
	enc, err := Encoding(encodingName)
	if err != nil {
		return "", err
	}

	return decode(r, enc)
}

func decode(r io.Reader, enc encoding.Encoding) (string, error) {
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", ErrRead.Wrap(err)
	}

	return string(data), nil
}

// CreateTempDir creates a new, uniquely named directory under the default
// temporary directory and returns its path.
func CreateTempDir() (string, error) {
	dir, err := os.MkdirTemp("", TempDirPattern)
	if err != nil {
		return "", ErrTempDir.Wrap(err)
	}

	return dir, nil
}

// WriteBytes creates or truncates the file at path and writes data to it.
// The file is closed on every path; a close failure is reported when the
// write itself succeeded.
func WriteBytes(path string, data []byte) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return ErrOpen.Wrap(err)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = ErrWrite.Wrap(cerr)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return ErrWrite.Wrap(err)
	}

	return nil
}

// IsNotExist reports whether err was caused by a missing file.
func IsNotExist(err error) bool { return errors.Is(err, os.ErrNotExist) }
