package text

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// PlainLoader reads .txt and .md files as-is.
type PlainLoader struct{}

func NewPlainLoader() *PlainLoader {
	return &PlainLoader{}
}

func (l *PlainLoader) Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s is not valid UTF-8", path)
	}
	return &Document{Path: path, Text: string(data)}, nil
}
