// Package vectorstore persists chunk text paired with embeddings as JSON
// files, one file per ingested document.
package vectorstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abhisek/socratic/internal/topics"
)

// NotFoundError indicates no ingested data exists for a document name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no ingested data for %q", e.Name)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Chunk is a bounded span of source text stored with its embedding.
// IDs are dense, zero-based, and assigned in ingestion order; a chunk is
// immutable once stored.
type Chunk struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Embedding []float64 `json:"embedding"`
}

// document is the on-disk record for one ingested document.
type document struct {
	PDFName   string  `json:"pdf_name"`
	CreatedAt string  `json:"created_at"`
	NumChunks int     `json:"num_chunks"`
	Chunks    []Chunk `json:"chunks"`
}

// Store is a JSON file-based repository for chunks and topic maps.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create vector store dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save stores chunk texts paired with their embeddings under docName,
// replacing any prior record for that name as a whole. Chunk IDs are
// assigned from ingestion order.
func (s *Store) Save(docName string, chunkTexts []string, embeddings [][]float64) error {
	if len(chunkTexts) != len(embeddings) {
		return fmt.Errorf("chunk/embedding count mismatch: %d vs %d", len(chunkTexts), len(embeddings))
	}

	doc := document{
		PDFName:   docName,
		CreatedAt: time.Now().Format(time.RFC3339),
		NumChunks: len(chunkTexts),
		Chunks:    make([]Chunk, len(chunkTexts)),
	}
	for i := range chunkTexts {
		doc.Chunks[i] = Chunk{ID: i, Text: chunkTexts[i], Embedding: embeddings[i]}
	}

	return s.writeJSON(s.docPath(docName), doc)
}

// Load returns the stored chunks for docName in original order, or a
// NotFoundError when the document was never ingested.
func (s *Store) Load(docName string) ([]Chunk, error) {
	path := s.docPath(docName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Name: docName}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc.Chunks, nil
}

// SaveTopics stores the topic map for docName.
func (s *Store) SaveTopics(docName string, tm *topics.TopicMap) error {
	return s.writeJSON(s.topicsPath(docName), tm)
}

// LoadTopics returns the stored topic map for docName, or a NotFoundError.
func (s *Store) LoadTopics(docName string) (*topics.TopicMap, error) {
	path := s.topicsPath(docName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Name: docName}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var tm topics.TopicMap
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &tm, nil
}

// writeJSON writes v atomically: the whole record is replaced via a temp
// file rename, never merged or partially written.
func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func (s *Store) docPath(docName string) string {
	return filepath.Join(s.dir, docName+".json")
}

func (s *Store) topicsPath(docName string) string {
	return filepath.Join(s.dir, docName+"_topics.json")
}

// Texts extracts the chunk texts in order.
func Texts(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}

// Embeddings extracts the chunk embeddings in order.
func Embeddings(chunks []Chunk) [][]float64 {
	out := make([][]float64, len(chunks))
	for i, c := range chunks {
		out[i] = c.Embedding
	}
	return out
}
