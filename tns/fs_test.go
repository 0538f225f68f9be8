package tns

import (
	"io/fs"
	"strconv"
	"sync"
)

// memFS is an in-memory FileSystem that records the order of calls.
type memFS struct {
	mu       sync.Mutex
	files    map[string][]byte
	calls    []string
	temps    int
	readErr  error
	tempErr  error
	writeErr error
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) ReadText(path, encoding string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "read "+path+" "+encoding)

	if m.readErr != nil {
		return "", m.readErr
	}

	data, ok := m.files[path]
	if !ok {
		return "", fs.ErrNotExist
	}

	return string(data), nil
}

func (m *memFS) CreateTempDir() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tempErr != nil {
		return "", m.tempErr
	}

	m.temps++
	dir := "/tmp/tnsora-" + strconv.Itoa(m.temps)
	m.calls = append(m.calls, "mkdir "+dir)

	return dir, nil
}

func (m *memFS) WriteBytes(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "write "+path)

	if m.writeErr != nil {
		return m.writeErr
	}

	m.files[path] = append([]byte(nil), data...)

	return nil
}
