// Package fetch provides the file system operations the word counter reads through;
// handles stat, open and directory listing against the local file system or stdin.
package fetch

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ErrTooLarge is returned by reads that exceed the configured size limit.
var ErrTooLarge = errors.New("content exceeds size limit")

// FileSystem is the set of file system primitives the collector depends on.
type FileSystem interface {
	// Stat returns file info for path, following symbolic links.
	Stat(path string) (fs.FileInfo, error)
	// Lstat returns file info for path without following symbolic links.
	Lstat(path string) (fs.FileInfo, error)
	// Open opens path for reading.
	Open(path string) (io.ReadCloser, error)
	// ReadDir lists the entries of the directory at path.
	ReadDir(path string) ([]fs.DirEntry, error)
	// Stdin returns the standard input stream.
	Stdin() io.Reader
}

// limitedReadCloser wraps an io.ReadCloser to enforce size limits
type limitedReadCloser struct {
	io.ReadCloser
	N      int64  // max bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		// a source exactly at the limit is fine, one byte more is not
		var probe [1]byte
		if m, _ := l.ReadCloser.Read(probe[:]); m == 0 {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("%w: %q", ErrTooLarge, l.source)
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.ReadCloser.Read(p)
	l.N -= int64(n)
	return
}

// OS is the FileSystem backed by the host operating system.
type OS struct {
	// MaxBytes limits every Open and Stdin read; zero or less means no limit.
	MaxBytes int64
}

// Stat implements FileSystem.
func (o OS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Lstat implements FileSystem.
func (o OS) Lstat(path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

// Open implements FileSystem. Opening a directory succeeds; reading it fails.
func (o OS) Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return o.limit(file, path), nil
}

// ReadDir implements FileSystem. Entries are sorted by file name.
func (o OS) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// Stdin implements FileSystem.
func (o OS) Stdin() io.Reader {
	return o.limit(io.NopCloser(os.Stdin), "stdin")
}

func (o OS) limit(rc io.ReadCloser, source string) io.ReadCloser {
	if o.MaxBytes <= 0 {
		return rc
	}
	return &limitedReadCloser{
		ReadCloser: rc,
		N:          o.MaxBytes,
		source:     source,
	}
}
