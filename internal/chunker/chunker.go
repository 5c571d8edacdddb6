// Package chunker splits extracted document text into overlapping
// character-bounded segments for embedding.
package chunker

import (
	"fmt"
	"strings"
)

// Chunker greedily accumulates non-empty lines into chunks of roughly
// TargetSize characters, seeding each new chunk with the trailing Overlap
// characters of its predecessor for continuity.
type Chunker struct {
	targetSize int
	overlap    int
}

// Stats summarizes a chunking run for telemetry.
type Stats struct {
	Method       string // "chars"
	TargetSize   int
	Overlap      int
	NumChunks    int
	AvgChunkSize float64
}

// New creates a Chunker. Overlap must be strictly smaller than the target
// size: an overlap that covers a whole chunk would re-emit it forever.
func New(targetSize, overlap int) (*Chunker, error) {
	if targetSize <= 0 {
		return nil, fmt.Errorf("target size must be positive, got %d", targetSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("overlap must be non-negative, got %d", overlap)
	}
	if overlap >= targetSize {
		return nil, fmt.Errorf("overlap %d must be smaller than target size %d", overlap, targetSize)
	}
	return &Chunker{targetSize: targetSize, overlap: overlap}, nil
}

// Chunk splits text into overlapping chunks. The same input and parameters
// always produce a byte-identical chunk sequence.
//
// A chunk is closed when appending the next line would meet or exceed the
// target size; the next chunk starts with the trailing overlap characters
// of the closed one, then the triggering line. A single line longer than
// the target size is never split, so a chunk may exceed the target. The
// final non-empty buffer is always flushed.
func (c *Chunker) Chunk(text string) ([]string, Stats) {
	lines := splitLines(text)

	var chunks []string
	var buf string
	for _, line := range lines {
		if buf == "" {
			buf = line
			continue
		}
		if len([]rune(buf))+1+len([]rune(line)) >= c.targetSize {
			chunks = append(chunks, buf)
			buf = overlapTail(buf, c.overlap) + "\n" + line
		} else {
			buf = buf + "\n" + line
		}
	}
	if strings.TrimSpace(buf) != "" {
		chunks = append(chunks, buf)
	}

	stats := Stats{
		Method:     "chars",
		TargetSize: c.targetSize,
		Overlap:    c.overlap,
		NumChunks:  len(chunks),
	}
	if len(chunks) > 0 {
		total := 0
		for _, ch := range chunks {
			total += len([]rune(ch))
		}
		stats.AvgChunkSize = float64(total) / float64(len(chunks))
	}
	return chunks, stats
}

// splitLines segments text into trimmed non-empty lines with page-marker
// artifacts from extraction removed.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isPageMarker(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// isPageMarker reports whether a line is a page separator inserted during
// text extraction, e.g. "--- Page 12 ---".
func isPageMarker(line string) bool {
	return strings.HasPrefix(line, "--- Page ") && strings.HasSuffix(line, "---")
}

// overlapTail returns the trailing n characters of s.
func overlapTail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
