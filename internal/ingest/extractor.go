// Package ingest converts operational documents (local files or remote
// pages) into clean sentence streams ready for classification.
package ingest

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Extracted is the result of format-aware text extraction
type Extracted struct {
	Text    string
	DocType string
}

// Extract converts raw document bytes into plain text based on the
// filename extension. Unknown formats fall back to plain-text decoding;
// extraction itself never fails.
func Extract(filename string, data []byte) Extracted {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return Extracted{Text: extractJSON(data), DocType: "json"}
	case ".html", ".htm":
		return Extracted{Text: extractHTML(data), DocType: "html"}
	case ".md", ".markdown":
		return Extracted{Text: extractMarkdown(data), DocType: "markdown"}
	default:
		return Extracted{Text: string(data), DocType: "text"}
	}
}

// Sentences runs the full extraction path: format-aware text, cleanup,
// sentence split
func Sentences(filename string, data []byte) ([]string, string) {
	extracted := Extract(filename, data)
	return SplitSentences(CleanText(extracted.Text)), extracted.DocType
}

// extractJSON pretty-prints JSON so nested values land on separate lines;
// invalid JSON is kept as-is
func extractJSON(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}
	return buf.String()
}

// extractHTML walks the DOM and keeps visible text, skipping script-like
// subtrees. An unparseable document degrades to raw text.
func extractHTML(data []byte) string {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return string(data)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return buf.String()
}

// extractMarkdown strips the markup that would otherwise glue sentences to
// headers and list bullets
func extractMarkdown(data []byte) string {
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimLeft(trimmed, "#>-*+ \t")
		trimmed = strings.ReplaceAll(trimmed, "`", "")
		lines[i] = trimmed
	}
	return strings.Join(lines, "\n")
}
