package text

// Document is one loaded input ready for chunking.
type Document struct {
	Path     string `json:"path"`
	Text     string `json:"text"`
	Markdown string `json:"markdown,omitempty"` // HTML sources rendered to markdown
}

// Loader turns a file on disk into a Document.
type Loader interface {
	Load(path string) (*Document, error)
}
