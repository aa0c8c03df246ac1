package chunker

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
)

// chunkNamespace gives every chunk a content-derived ID so downstream
// stages can dedup across re-runs of the same document.
var chunkNamespace = uuid.MustParse("7a3c8e5d-2b41-4f8a-9c16-d0e7b94f3a28")

// Manifest is the per-document record emitted next to the chunks.
type Manifest struct {
	DocumentID   string        `json:"document_id"`
	OriginalFile string        `json:"original_file,omitempty"`
	Method       string        `json:"method"`
	TotalChunks  int           `json:"total_chunks"`
	MaxChunkSize int           `json:"max_chunk_size"`
	MinChunkSize int           `json:"min_chunk_size"`
	Chunks       []ChunkRecord `json:"chunks"`
}

// ChunkRecord describes one emitted chunk.
type ChunkRecord struct {
	ChunkNumber    int    `json:"chunk_number"`
	ChunkID        string `json:"chunk_id"`
	Filename       string `json:"filename"`
	CharacterCount int    `json:"character_count"`
}

// BuildManifest derives the manifest for an ordered chunk list.
func BuildManifest(originalFile, method string, chunks []string, maxSize, minSize int) Manifest {
	m := Manifest{
		DocumentID:   uuid.NewString(),
		OriginalFile: originalFile,
		Method:       method,
		TotalChunks:  len(chunks),
		MaxChunkSize: maxSize,
		MinChunkSize: minSize,
		Chunks:       make([]ChunkRecord, 0, len(chunks)),
	}

	for i, chunk := range chunks {
		m.Chunks = append(m.Chunks, ChunkRecord{
			ChunkNumber:    i + 1,
			ChunkID:        uuid.NewSHA1(chunkNamespace, []byte(chunk)).String(),
			Filename:       fmt.Sprintf("chunk_%03d.txt", i+1),
			CharacterCount: utf8.RuneCountInString(chunk),
		})
	}
	return m
}
