package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriscorrea/wordcount/internal/counter"
	"github.com/chriscorrea/wordcount/internal/fetch"
	"github.com/chriscorrea/wordcount/internal/format"
)

func TestRunToStdout(t *testing.T) {
	tests := []struct {
		name     string
		format   format.Format
		expected string
	}{
		{"plain", format.Plain, "apple 2\nbanana 1\n"},
		{"csv", format.CSV, "word, count\n\"apple\", 2\n\"banana\", 1\n"},
		{"legacy json", format.JSON, "{\n\t\"wordCount\": [\n\t\t\"apple\": 2,\n\t\t\"banana\": 1,\n\t]\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Params: Params{SortBy: counter.AlphaAsc},
				Paths:  []string{"a.txt"},
				Format: tt.format,
				Quiet:  true,
			}

			var out bytes.Buffer
			require.NoError(t, Run(context.Background(), cfg, newTree(), &out))
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestRunToFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	output := filepath.Join(dir, "counts.txt")
	require.NoError(t, os.WriteFile(input, []byte("The cat saw the CAT."), 0o644))

	cfg := Config{
		Params: Params{IgnoreCase: true, SortBy: counter.CountDesc},
		Paths:  []string{input},
		Output: output,
		Format: format.Plain,
		Quiet:  true,
	}

	var stdout bytes.Buffer
	require.NoError(t, Run(context.Background(), cfg, fetch.OS{}, &stdout))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "the 2\ncat 2\nsaw 1\n", string(data))
	assert.Empty(t, stdout.String())
}

func TestRunOutputNotCreated(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "counts.txt")

	cfg := Config{
		Paths:  []string{filepath.Join(dir, "missing.txt")},
		Output: output,
		Format: format.Plain,
		Quiet:  true,
	}

	err := Run(context.Background(), cfg, fetch.OS{}, &bytes.Buffer{})
	assert.True(t, IsKind(err, InvalidPath), "got %v", err)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "output file must not be created when collection fails")
}

func TestRunOutputOpenFails(t *testing.T) {
	cfg := Config{
		Paths:  []string{"a.txt"},
		Output: filepath.Join(t.TempDir(), "no-such-dir", "counts.txt"),
		Format: format.Plain,
		Quiet:  true,
	}

	err := Run(context.Background(), cfg, newTree(), &bytes.Buffer{})

	var wcErr *Error
	require.ErrorAs(t, err, &wcErr)
	assert.Equal(t, OpenFile, wcErr.Kind)
	assert.Equal(t, cfg.Output, wcErr.Path)
}

func TestRunUnsupportedFormat(t *testing.T) {
	output := filepath.Join(t.TempDir(), "counts.txt")
	fsys := newTree()
	cfg := Config{Paths: []string{"a.txt"}, Output: output, Format: format.Format("xml"), Quiet: true}

	err := Run(context.Background(), cfg, fsys, &bytes.Buffer{})
	assert.ErrorIs(t, err, format.ErrUnsupportedFormat)
	assert.Empty(t, fsys.opened, "inputs must not be read with an unknown format")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "output file must not be created for an unknown format")
}

func TestRunFormatCaseInsensitive(t *testing.T) {
	cfg := Config{Paths: []string{"a.txt"}, Format: format.Format("PLAIN"), Params: Params{SortBy: counter.AlphaAsc}, Quiet: true}

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), cfg, newTree(), &out))
	assert.Equal(t, "apple 2\nbanana 1\n", out.String())
}
