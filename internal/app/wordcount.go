package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"unicode/utf8"

	"github.com/chriscorrea/wordcount/internal/counter"
	"github.com/chriscorrea/wordcount/internal/extract"
	"github.com/chriscorrea/wordcount/internal/fetch"
)

// ErrCollectorUsed is returned when Collect is called twice on the same Collector.
var ErrCollectorUsed = errors.New("collector already used")

// Params holds the counting parameters of one run.
type Params struct {
	IgnoreCase bool              // count "Example" and "eXample" as the same word
	Recursive  bool              // descend into subfolders of directory inputs
	SortBy     counter.SortOrder // order of the result (Unsorted leaves map order)
	Stem       bool              // count English stems instead of surface forms
	Content    extract.Mode      // how each input unit is turned into text
	Selector   string            // CSS selector for HTML content
}

// Collector reads input units, tokenizes them and accumulates word counts.
// A Collector is single-use and not safe for concurrent use.
type Collector struct {
	params    Params
	fsys      fetch.FileSystem
	tokenizer *counter.Tokenizer
	buf       bytes.Buffer       // holds one input unit at a time
	dict      counter.Dictionary // word -> number of occurrences
	progress  func(source string)
	used      bool
}

// NewCollector creates a Collector reading through fsys.
func NewCollector(params Params, fsys fetch.FileSystem) *Collector {
	return &Collector{
		params:    params,
		fsys:      fsys,
		tokenizer: counter.NewTokenizer(params.IgnoreCase, params.Stem),
		dict:      counter.Dictionary{},
	}
}

// OnProgress registers fn to be called with each input unit before it is read.
func (c *Collector) OnProgress(fn func(source string)) {
	c.progress = fn
}

// Collect counts the words of every path, in the order given, and returns the
// flattened result sorted by Params.SortBy. A nil paths reads standard input.
//
// Paths are handled as follows:
//   - missing paths fail with InvalidPath
//   - regular files are counted
//   - directories are traversed depth-first (subdirectories only when Recursive)
//   - anything else (devices, sockets, dangling links) fails with NotFileNorDir
//
// The first error aborts the whole collection and is returned as *Error.
func (c *Collector) Collect(paths []string) (counter.WordCountVec, error) {
	if c.used {
		return nil, ErrCollectorUsed
	}
	c.used = true

	if paths == nil {
		if err := c.readStdin(); err != nil {
			return nil, err
		}
		return c.count(), nil
	}

	for _, path := range paths {
		if err := c.readPath(path); err != nil {
			slog.Debug("Collection aborted", "path", path, "error", err)
			return nil, err
		}
	}

	return c.count(), nil
}

// readPath dispatches a single input path by its file type
func (c *Collector) readPath(path string) error {
	info, err := c.fsys.Stat(path)
	if err != nil {
		// a link whose target is gone exists, but is neither file nor directory
		if errors.Is(err, fs.ErrNotExist) {
			if _, lerr := c.fsys.Lstat(path); lerr == nil {
				return &Error{Kind: NotFileNorDir, Path: path}
			}
		}
		return &Error{Kind: InvalidPath, Path: path, Err: err}
	}

	switch {
	case info.Mode().IsRegular():
		return c.readFile(path)
	case info.IsDir():
		return c.readDir(path)
	default:
		return &Error{Kind: NotFileNorDir, Path: path}
	}
}

// readFile counts the words of a single file
func (c *Collector) readFile(path string) error {
	c.report(path)

	rc, err := c.fsys.Open(path)
	if err != nil {
		return &Error{Kind: ReadFile, Path: path, Err: err}
	}
	defer rc.Close()

	if err := c.countUnit(rc); err != nil {
		return &Error{Kind: ReadFile, Path: path, Err: err}
	}
	return nil
}

// readDir counts the words of every entry of a directory.
// Subdirectories are descended into only when Recursive is set; otherwise they
// are read as files, which fails.
func (c *Collector) readDir(path string) error {
	entries, err := c.fsys.ReadDir(path)
	if err != nil {
		return &Error{Kind: ReadDir, Path: path, Err: err}
	}

	slog.Debug("Reading directory", "path", path, "entries", len(entries))

	for _, entry := range entries {
		entryPath := filepath.Join(path, entry.Name())

		var err error
		if c.params.Recursive && c.isDir(entryPath) {
			err = c.readDir(entryPath)
		} else {
			err = c.readFile(entryPath)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// readStdin counts the words read from standard input
func (c *Collector) readStdin() error {
	c.report("stdin")

	if err := c.countUnit(c.fsys.Stdin()); err != nil {
		return &Error{Kind: ReadStdIn, Err: err}
	}
	return nil
}

// countUnit buffers one input unit, tokenizes it and clears the buffer
func (c *Collector) countUnit(r io.Reader) error {
	defer c.buf.Reset()

	if _, err := c.buf.ReadFrom(r); err != nil {
		return err
	}
	if !utf8.Valid(c.buf.Bytes()) {
		return ErrInvalidUTF8
	}

	text, err := c.text()
	if err != nil {
		return err
	}

	c.tokenizer.CountWords(text, c.dict)
	return nil
}

// text returns the buffered unit as countable text
func (c *Collector) text() (string, error) {
	if c.params.Content == extract.Raw {
		return c.buf.String(), nil
	}

	text, err := extract.ToText(&c.buf, c.params.Content, c.params.Selector)
	if err != nil {
		return "", fmt.Errorf("failed to extract %s content: %w", c.params.Content, err)
	}
	return text, nil
}

// isDir reports whether path is a directory, following symbolic links
func (c *Collector) isDir(path string) bool {
	info, err := c.fsys.Stat(path)
	return err == nil && info.IsDir()
}

// count flattens the dictionary and applies the configured sort order
func (c *Collector) count() counter.WordCountVec {
	v := c.dict.Flatten()
	c.params.SortBy.Sort(v)

	slog.Debug("Collection finished", "uniqueWords", len(v), "sortBy", c.params.SortBy)
	return v
}

func (c *Collector) report(source string) {
	slog.Debug("Counting words", "source", source)
	if c.progress != nil {
		c.progress(source)
	}
}
