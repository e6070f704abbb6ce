// Extract provides content extraction utilities for the wordcount CLI tool.
// It turns HTML documents into the plain text whose words get counted.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// Mode selects how an input unit is turned into countable text.
type Mode int

const (
	// Raw counts the input as is (default)
	Raw Mode = iota
	// HTML counts the visible text of an HTML document
	HTML
	// Readable counts only the main article text of an HTML document
	Readable
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case Raw:
		return "raw"
	case HTML:
		return "html"
	case Readable:
		return "readable"
	default:
		return "unknown"
	}
}

// nonVisible lists elements whose text is never rendered
const nonVisible = "script, style, noscript, template"

// ToText extracts countable text from content.
//
// Parameters:
//   - content: io.Reader containing the input unit
//   - mode: Raw returns content unchanged, HTML and Readable parse it as HTML
//   - selector: optional CSS selector restricting HTML mode to matching elements
//
// Returns the text or an error if parsing or extraction fails.
func ToText(content io.Reader, mode Mode, selector string) (string, error) {
	switch mode {
	case HTML:
		if selector != "" {
			return extractWithSelector(content, selector)
		}
		return extractVisibleText(content)
	case Readable:
		return extractMainContent(content)
	default:
		raw, err := io.ReadAll(content)
		if err != nil {
			return "", fmt.Errorf("failed to read content: %w", err)
		}
		return string(raw), nil
	}
}

// extractVisibleText returns the text of every rendered element in the document
func extractVisibleText(content io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(nonVisible).Remove()
	return doc.Text(), nil
}

// extractWithSelector uses a CSS selector to extract specific content
func extractWithSelector(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}
	selection.Find(nonVisible).Remove()

	// keep element boundaries as word boundaries
	var parts []string
	selection.Each(func(i int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})

	return strings.Join(parts, "\n"), nil
}

// extractMainContent uses go-readability to extract the main article text
func extractMainContent(content io.Reader) (string, error) {
	article, err := readability.FromReader(content, &url.URL{})
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}

	return article.TextContent, nil
}
