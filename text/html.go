package text

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/go-shiori/go-readability"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// HTMLLoader extracts the article body from a local HTML file. It
// tries readability first and falls back to a plain text walk of the
// parsed tree when readability finds nothing usable. With
// RenderMarkdown set, the cleaned article HTML is also rendered to
// markdown, which tends to survive chunking better than raw text.
type HTMLLoader struct {
	RenderMarkdown bool
	logger         *zap.Logger
}

func NewHTMLLoader(renderMarkdown bool, logger *zap.Logger) *HTMLLoader {
	return &HTMLLoader{
		RenderMarkdown: renderMarkdown,
		logger:         logger,
	}
}

func (l *HTMLLoader) Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc := &Document{Path: path}

	fileURL := &url.URL{Scheme: "file", Path: path}
	article, err := readability.FromReader(bytes.NewReader(data), fileURL)
	if err != nil || strings.TrimSpace(article.TextContent) == "" {
		if err != nil {
			l.logger.Warn("readability extraction failed, using text walk",
				zap.String("path", path),
				zap.Error(err))
		}
		text, walkErr := textFromHTML(data)
		if walkErr != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, walkErr)
		}
		doc.Text = text
		return doc, nil
	}

	doc.Text = article.TextContent
	if l.RenderMarkdown && article.Content != "" {
		md, err := htmltomarkdown.ConvertString(article.Content)
		if err != nil {
			l.logger.Warn("markdown rendering failed",
				zap.String("path", path),
				zap.Error(err))
		} else {
			doc.Markdown = md
		}
	}
	return doc, nil
}

// textFromHTML collects the text nodes of a parsed document, skipping
// script and style subtrees. Block-level boundaries become newlines so
// paragraph structure survives for the chunkers.
func textFromHTML(data []byte) (string, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		case html.TextNode:
			text := strings.TrimSpace(n.Data)
			if text != "" {
				sb.WriteString(text)
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && isBlockElement(n.Data) {
			sb.WriteString("\n")
		}
	}
	walk(root)

	return strings.TrimSpace(sb.String()), nil
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "br", "li", "h1", "h2", "h3", "h4", "h5", "h6",
		"section", "article", "blockquote", "pre", "tr":
		return true
	}
	return false
}
