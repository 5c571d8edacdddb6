// Package profile tracks per-student concept progress across teaching
// sessions, persisted as one JSON file per student.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ConceptStatus is the single progress state a concept can hold.
// A concept is either learned or weak, never both.
type ConceptStatus string

const (
	StatusLearned ConceptStatus = "learned"
	StatusWeak    ConceptStatus = "weak"
)

// conceptEntry pairs a concept name with its status, kept in the order
// the student first encountered each concept.
type conceptEntry struct {
	name   string
	status ConceptStatus
}

// TopicProgress is the per-topic record. The serialized form splits
// concepts into two lists, but internally each concept holds exactly one
// status so the lists can never overlap.
type TopicProgress struct {
	concepts    []conceptEntry
	LastStudied time.Time
}

// topicProgressJSON is the on-disk shape of a topic record.
type topicProgressJSON struct {
	ConceptsLearned []string `json:"concepts_learned"`
	ConceptsWeak    []string `json:"concepts_weak"`
	LastStudied     string   `json:"last_studied"`
}

// MarshalJSON serializes the single-status entries into the two lists.
func (p TopicProgress) MarshalJSON() ([]byte, error) {
	out := topicProgressJSON{
		ConceptsLearned: []string{},
		ConceptsWeak:    []string{},
	}
	for _, e := range p.concepts {
		switch e.status {
		case StatusLearned:
			out.ConceptsLearned = append(out.ConceptsLearned, e.name)
		case StatusWeak:
			out.ConceptsWeak = append(out.ConceptsWeak, e.name)
		}
	}
	if !p.LastStudied.IsZero() {
		out.LastStudied = p.LastStudied.Format(time.RFC3339)
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the entries from the two lists. A concept that
// somehow appears in both lists takes its learned status.
func (p *TopicProgress) UnmarshalJSON(data []byte) error {
	var raw topicProgressJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.concepts = nil
	seen := make(map[string]bool)
	for _, name := range raw.ConceptsLearned {
		if !seen[name] {
			p.concepts = append(p.concepts, conceptEntry{name: name, status: StatusLearned})
			seen[name] = true
		}
	}
	for _, name := range raw.ConceptsWeak {
		if !seen[name] {
			p.concepts = append(p.concepts, conceptEntry{name: name, status: StatusWeak})
			seen[name] = true
		}
	}

	if raw.LastStudied != "" {
		ts, err := time.Parse(time.RFC3339, raw.LastStudied)
		if err != nil {
			return fmt.Errorf("parse last_studied: %w", err)
		}
		p.LastStudied = ts
	}
	return nil
}

// Learned returns the learned concept names in first-encounter order.
func (p *TopicProgress) Learned() []string { return p.byStatus(StatusLearned) }

// Weak returns the weak concept names in first-encounter order.
func (p *TopicProgress) Weak() []string { return p.byStatus(StatusWeak) }

func (p *TopicProgress) byStatus(status ConceptStatus) []string {
	out := []string{}
	for _, e := range p.concepts {
		if e.status == status {
			out = append(out, e.name)
		}
	}
	return out
}

// StatusOf returns the status of a concept and whether it has one.
func (p *TopicProgress) StatusOf(concept string) (ConceptStatus, bool) {
	for _, e := range p.concepts {
		if e.name == concept {
			return e.status, true
		}
	}
	return "", false
}

// set records the status for a concept, replacing any prior status.
func (p *TopicProgress) set(concept string, status ConceptStatus) {
	for i, e := range p.concepts {
		if e.name == concept {
			p.concepts[i].status = status
			return
		}
	}
	p.concepts = append(p.concepts, conceptEntry{name: concept, status: status})
}

// Profile is one student's progress across all topics.
type Profile struct {
	StudentID string                    `json:"student_id"`
	CreatedAt string                    `json:"created_at"`
	Topics    map[string]*TopicProgress `json:"topics"`
}

// Store loads and persists student profiles under a directory.
type Store struct {
	dir string
}

// NewStore creates a profile Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Load returns the stored profile for studentID, or a fresh empty profile
// when none exists yet.
func (s *Store) Load(studentID string) (*Profile, error) {
	path := s.path(studentID)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Profile{
				StudentID: studentID,
				CreatedAt: time.Now().Format(time.RFC3339),
				Topics:    make(map[string]*TopicProgress),
			}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if p.Topics == nil {
		p.Topics = make(map[string]*TopicProgress)
	}
	return &p, nil
}

// Save persists the profile atomically.
func (s *Store) Save(p *Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	path := s.path(p.StudentID)
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

// UpdateConceptProgress records the status of a concept under a topic,
// stamps the topic's last-studied time, and persists the profile.
// Recording an already-held status is a no-op apart from the timestamp.
func (s *Store) UpdateConceptProgress(p *Profile, topic, concept string, status ConceptStatus) error {
	if status != StatusLearned && status != StatusWeak {
		return fmt.Errorf("unknown concept status %q", status)
	}

	tp := p.Topics[topic]
	if tp == nil {
		tp = &TopicProgress{}
		p.Topics[topic] = tp
	}
	tp.set(concept, status)
	tp.LastStudied = time.Now()

	return s.Save(p)
}

// GetTopicProgress returns the progress record for a topic. Topics never
// studied yield an empty record, not nil.
func (p *Profile) GetTopicProgress(topic string) *TopicProgress {
	if tp := p.Topics[topic]; tp != nil {
		return tp
	}
	return &TopicProgress{}
}

func (s *Store) path(studentID string) string {
	return filepath.Join(s.dir, studentID+".json")
}
