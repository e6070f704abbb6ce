package format_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/chriscorrea/wordcount/internal/counter"
	"github.com/chriscorrea/wordcount/internal/format"
)

var sample = counter.WordCountVec{
	{Word: "hello", Count: 3},
	{Word: "world", Count: 1},
}

func render(t *testing.T, f format.Format, items counter.WordCountVec) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, format.Write(&buf, f, items))
	return buf.String()
}

// --- plain ---

func TestPlain(t *testing.T) {
	assert.Equal(t, "hello 3\nworld 1\n", render(t, format.Plain, sample))
}

func TestPlainEmpty(t *testing.T) {
	assert.Empty(t, render(t, format.Plain, nil))
}

func TestPlainOneLinePerPair(t *testing.T) {
	out := render(t, format.Plain, sample)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, len(sample))
}

// --- csv ---

func TestCSV(t *testing.T) {
	expected := "word, count\n\"hello\", 3\n\"world\", 1\n"
	assert.Equal(t, expected, render(t, format.CSV, sample))
}

func TestCSVHeaderOnlyWhenEmpty(t *testing.T) {
	assert.Equal(t, "word, count\n", render(t, format.CSV, nil))
}

func TestCSVLineCount(t *testing.T) {
	out := render(t, format.CSV, sample)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, len(sample)+1)
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, `"`), "word field should be quoted: %q", line)
	}
}

// --- legacy json ---

func TestLegacyJSON(t *testing.T) {
	expected := "{\n\t\"wordCount\": [\n\t\t\"hello\": 3,\n\t\t\"world\": 1,\n\t]\n}"
	assert.Equal(t, expected, render(t, format.JSON, sample))
}

func TestLegacyJSONEmpty(t *testing.T) {
	assert.Equal(t, "{\n\t\"wordCount\": [\n\t]\n}", render(t, format.JSON, nil))
}

// --- strict json ---

func TestStrictJSON(t *testing.T) {
	out := render(t, format.JSONStrict, sample)

	var doc struct {
		WordCount []counter.WordPair `json:"wordCount"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []counter.WordPair(sample), doc.WordCount)
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestStrictJSONEmpty(t *testing.T) {
	out := render(t, format.JSONStrict, nil)
	assert.JSONEq(t, `{"wordCount": []}`, out)
}

// --- yaml ---

func TestYAML(t *testing.T) {
	out := render(t, format.YAML, sample)

	var doc struct {
		WordCount []counter.WordPair `yaml:"wordCount"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []counter.WordPair(sample), doc.WordCount)
	assert.Contains(t, out, "word: hello")
}

// --- parsing ---

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected format.Format
	}{
		{"plain", format.Plain},
		{"csv", format.CSV},
		{"CSV", format.CSV},
		{"json", format.JSON},
		{"Json", format.JSON},
		{"json-strict", format.JSONStrict},
		{"yaml", format.YAML},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := format.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestParseUnsupported(t *testing.T) {
	_, err := format.Parse("xml")
	assert.ErrorIs(t, err, format.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), `"xml"`)
}

func TestFormatsReturnsCopy(t *testing.T) {
	all := format.Formats()
	require.Len(t, all, 5)
	all[0] = "mutated"
	assert.Equal(t, format.Plain, format.Formats()[0])
}

func TestWriteUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := format.Write(&buf, format.Format("xml"), sample)
	assert.ErrorIs(t, err, format.ErrUnsupportedFormat)
	assert.Empty(t, buf.String())
}

// --- write failures ---

var errSink = errors.New("sink closed")

// failingWriter accepts n writes and fails afterwards
type failingWriter struct {
	n int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, errSink
	}
	w.n--
	return len(p), nil
}

func TestWriteErrorsPropagate(t *testing.T) {
	for _, f := range format.Formats() {
		t.Run(f.String(), func(t *testing.T) {
			err := format.Write(&failingWriter{n: 0}, f, sample)
			require.Error(t, err)
			if f != format.YAML {
				// yaml.v3 reports emitter failures without wrapping the cause
				assert.ErrorIs(t, err, errSink)
			}
		})
	}
}
