// Package app contains the core application logic for the wordcount CLI tool.
// It collects word counts from the configured inputs and writes them out,
// separated from CLI concerns.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chriscorrea/wordcount/internal/counter"
	"github.com/chriscorrea/wordcount/internal/fetch"
	"github.com/chriscorrea/wordcount/internal/format"
	"github.com/chriscorrea/wordcount/internal/spinner"
)

// Config holds all configuration options for the wordcount application.
type Config struct {
	Params
	Paths       []string      // input files or directories; nil reads stdin
	Output      string        // output file; empty writes to stdout
	Format      format.Format // output format (plain/csv/json/json-strict/yaml)
	MaxFileSize int64         // per-unit byte limit, 0 for none
	Quiet       bool          // suppress the progress spinner
	Debug       bool
}

// Run executes the wordcount pipeline with the given configuration.
//
// Processing Pipeline:
// 1. Validate the output format
// 2. Collect word counts from all inputs (fail-fast, see Collector.Collect)
// 3. Create the output sink (the output file, or stdout)
// 4. Write the counts in the configured format
//
// The output file is only created once collection has succeeded.
// ctx bounds the lifetime of the progress spinner.
func Run(ctx context.Context, cfg Config, fsys fetch.FileSystem, stdout io.Writer) error {
	// reject an unknown format before any input is read or output created
	outputFormat, err := format.Parse(cfg.Format.String())
	if err != nil {
		return err
	}

	items, err := collect(ctx, cfg, fsys)
	if err != nil {
		return err
	}

	sink, closeSink, err := openSink(cfg.Output, stdout)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(sink)
	if err := format.Write(w, outputFormat, items); err != nil {
		closeSink()
		return fmt.Errorf("failed to write result: %w", err)
	}
	if err := w.Flush(); err != nil {
		closeSink()
		return fmt.Errorf("failed to write result: %w", err)
	}
	if err := closeSink(); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	slog.Debug("Result written", "format", outputFormat, "output", cfg.Output, "words", len(items))
	return nil
}

// collect runs a Collector, showing a spinner on an interactive stderr
func collect(ctx context.Context, cfg Config, fsys fetch.FileSystem) (counter.WordCountVec, error) {
	collector := NewCollector(cfg.Params, fsys)

	if !cfg.Quiet && spinner.IsTerminal(os.Stderr) {
		sp := spinner.New(ctx, os.Stderr, "Counting words")
		collector.OnProgress(sp.Step)
		sp.Start()
		defer sp.Stop()
	}

	return collector.Collect(cfg.Paths)
}

// openSink returns the output destination and a function releasing it
func openSink(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, &Error{Kind: OpenFile, Path: path, Err: err}
	}
	return file, file.Close, nil
}
