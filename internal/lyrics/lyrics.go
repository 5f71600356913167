// Package lyrics turns a free-form lyric file into a flat syllable list.
package lyrics

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// timestampRe matches LRC-style annotations like [01:23] or [01:23.45]
var timestampRe = regexp.MustCompile(`\[\d{2}:\d{2}(?:\.\d{2})?\]`)

// ParseFile reads a lyric file and tokenizes it
func ParseFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lyrics: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse strips timestamp annotations and splits the text into a flat word
// list. Surrounding punctuation is trimmed; the words carry no whitespace,
// so they are safe to embed in chart note lines without escaping.
func Parse(content string) []string {
	content = timestampRe.ReplaceAllString(content, "")

	var words []string
	for _, w := range strings.Fields(content) {
		w = strings.Trim(w, ".,!?;:")
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}
