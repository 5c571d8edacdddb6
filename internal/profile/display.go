package profile

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/socratic/internal/topics"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	topicStyle   = lipgloss.NewStyle().Bold(true)
	learnedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	weakStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

const barWidth = 24

// renderBar draws a fixed-width mastery bar for a 0-1 fraction.
func renderBar(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(barWidth) + 0.5)
	return learnedStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", barWidth-filled))
}

// masteryFraction computes learned / total for a topic. The topic map's
// concept count is the preferred denominator; when the map does not know
// the topic, learned+weak is used instead.
func masteryFraction(tp *TopicProgress, tm *topics.TopicMap, topic string) (learned, total int, fraction float64) {
	learned = len(tp.Learned())
	if tm != nil {
		total = tm.ConceptCount(topic)
	}
	if total == 0 {
		total = learned + len(tp.Weak())
	}
	if total > 0 {
		fraction = float64(learned) / float64(total)
	}
	return learned, total, fraction
}

// RenderTopic formats the progress of a single topic.
func RenderTopic(p *Profile, tm *topics.TopicMap, topic string) string {
	tp := p.GetTopicProgress(topic)
	learned, total, fraction := masteryFraction(tp, tm, topic)

	var b strings.Builder
	b.WriteString(topicStyle.Render(topic) + "\n")

	if total == 0 {
		b.WriteString(dimStyle.Render("  not studied yet") + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  %s %3.0f%%  (%d/%d concepts)\n", renderBar(fraction), fraction*100, learned, total)

	if names := tp.Learned(); len(names) > 0 {
		b.WriteString("  " + learnedStyle.Render("learned: ") + strings.Join(names, ", ") + "\n")
	}
	if names := tp.Weak(); len(names) > 0 {
		b.WriteString("  " + weakStyle.Render("weak:    ") + strings.Join(names, ", ") + "\n")
	}
	if !tp.LastStudied.IsZero() {
		b.WriteString(dimStyle.Render("  last studied "+tp.LastStudied.Format("2006-01-02 15:04")) + "\n")
	}
	return b.String()
}

// Render formats the whole profile, one block per topic. Topics come from
// the topic map when available, with any extra studied topics appended.
func Render(p *Profile, tm *topics.TopicMap) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Progress for "+p.StudentID) + "\n\n")

	var names []string
	seen := make(map[string]bool)
	if tm != nil {
		for _, name := range tm.Names() {
			names = append(names, name)
			seen[name] = true
		}
	}
	var extra []string
	for name := range p.Topics {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	if len(names) == 0 {
		b.WriteString(dimStyle.Render("No topics studied yet.") + "\n")
		return b.String()
	}

	for _, name := range names {
		b.WriteString(RenderTopic(p, tm, name))
		b.WriteString("\n")
	}
	return b.String()
}
