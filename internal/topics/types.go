// Package topics extracts a structured learning outline from a document.
package topics

import "sort"

// Topic is one teachable unit of a document.
type Topic struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	Concepts  []string `json:"concepts"`
}

// TopicMap is the structured outline of a document: an overall summary
// plus per-topic key points and learning concepts. Read-only reference
// data for the teaching loop and progress display.
type TopicMap struct {
	PDFSummary string           `json:"pdf_summary"`
	Topics     map[string]Topic `json:"topics"`
}

// Names returns topic names sorted for stable display.
func (tm *TopicMap) Names() []string {
	names := make([]string, 0, len(tm.Topics))
	for name := range tm.Topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConceptCount returns the authoritative concept count for a topic, or 0
// when the topic is unknown.
func (tm *TopicMap) ConceptCount(topic string) int {
	if tm == nil {
		return 0
	}
	t, ok := tm.Topics[topic]
	if !ok {
		return 0
	}
	return len(t.Concepts)
}
