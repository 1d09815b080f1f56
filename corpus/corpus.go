// Package corpus opens corpus files by path or URL.
//
// Plain paths and file:// URLs are read from the local filesystem; s3:// URLs
// are fetched through an S3Opener when one is registered. A path that does
// not exist fails with FILE_NOT_FOUND.
package corpus

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/kbukum/seqinput/errors"
)

// Opener opens one corpus file for sequential reading.
type Opener interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, path string) (io.ReadCloser, error)

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return f(ctx, path)
}

// Checker is implemented by openers that can tell whether a path exists
// without reading it.
type Checker interface {
	Check(ctx context.Context, path string) error
}

// Check reports FILE_NOT_FOUND when path does not exist. Openers that are
// not a Checker are opened and closed again.
func Check(ctx context.Context, o Opener, path string) error {
	if c, ok := o.(Checker); ok {
		return c.Check(ctx, path)
	}
	rc, err := o.Open(ctx, path)
	if err != nil {
		return err
	}
	return rc.Close()
}

// LocalOpener reads files from the local filesystem.
type LocalOpener struct{}

// Check stats path.
func (LocalOpener) Check(_ context.Context, path string) error {
	if _, err := os.Stat(strings.TrimPrefix(path, "file://")); err != nil {
		return localErr(path, err)
	}
	return nil
}

// Open opens path, accepting an optional file:// prefix.
func (LocalOpener) Open(_ context.Context, path string) (io.ReadCloser, error) {
	name := strings.TrimPrefix(path, "file://")
	f, err := os.Open(name)
	if err != nil {
		return nil, localErr(path, err)
	}
	return f, nil
}

func localErr(path string, err error) error {
	if stderrors.Is(err, fs.ErrNotExist) {
		return errors.FileNotFound(path).WithCause(err)
	}
	return errors.Internal(err).WithDetail("path", path)
}

// Mux dispatches to an Opener by URL scheme. Paths without a scheme go to
// the local opener.
type Mux struct {
	mu      sync.RWMutex
	local   Opener
	schemes map[string]Opener
}

// NewMux creates a Mux serving local paths and file:// URLs.
func NewMux() *Mux {
	m := &Mux{
		local:   LocalOpener{},
		schemes: make(map[string]Opener),
	}
	m.schemes["file"] = m.local
	return m
}

// Register routes scheme (e.g. "s3") to opener.
func (m *Mux) Register(scheme string, opener Opener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schemes[strings.ToLower(scheme)] = opener
}

// Handles reports whether a scheme has an opener.
func (m *Mux) Handles(scheme string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.schemes[strings.ToLower(scheme)]
	return ok
}

// Open dispatches on the scheme of path.
func (m *Mux) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	opener, err := m.route(path)
	if err != nil {
		return nil, err
	}
	return opener.Open(ctx, path)
}

// Check dispatches on the scheme of path.
func (m *Mux) Check(ctx context.Context, path string) error {
	opener, err := m.route(path)
	if err != nil {
		return err
	}
	return Check(ctx, opener, path)
}

func (m *Mux) route(path string) (Opener, error) {
	scheme, _, hasScheme := strings.Cut(path, "://")
	if !hasScheme {
		return m.local, nil
	}
	m.mu.RLock()
	opener, ok := m.schemes[strings.ToLower(scheme)]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.InvalidArgument("path", fmt.Sprintf("no opener registered for scheme %q", scheme)).
			WithDetail("path", path)
	}
	return opener, nil
}

var (
	defaultMu  sync.RWMutex
	defaultMux = NewMux()
)

// Default returns the process-wide opener used when pipelines are not given one.
func Default() *Mux {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultMux
}

// SetDefault replaces the process-wide opener.
func SetDefault(m *Mux) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultMux = m
}
