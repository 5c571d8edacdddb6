package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/socratic/internal/profile"
	"github.com/abhisek/socratic/internal/socratic"
	"github.com/abhisek/socratic/internal/vectorstore"
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	partialStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

var teachCmd = &cobra.Command{
	Use:   "teach <doc>",
	Short: "Run a Socratic teaching session on an ingested document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docName := args[0]
		byConcept, _ := cmd.Flags().GetBool("by-concept")
		maxTurns, _ := cmd.Flags().GetInt("max-turns")
		studentID, _ := cmd.Flags().GetString("student")

		tk, err := newToolkit(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer tk.Close()

		if maxTurns <= 0 {
			maxTurns = tk.cfg.Teach.MaxTurns
		}
		if studentID == "" {
			studentID = tk.cfg.Teach.StudentID
		}

		tm, err := tk.vectors.LoadTopics(docName)
		if err != nil {
			if vectorstore.IsNotFound(err) {
				return fmt.Errorf("no topic map for %q; run: socratic ingest <file>", docName)
			}
			return err
		}

		reader := bufio.NewReader(os.Stdin)
		topic, err := chooseTopic(reader, tm.Names())
		if err != nil {
			return err
		}
		if topic == "" {
			return nil
		}

		engine := socratic.NewEngine(tk.provider, tk.retriever)

		if byConcept {
			concepts := tm.Topics[topic].Concepts
			if len(concepts) == 0 {
				return fmt.Errorf("topic %q has no concepts in the topic map", topic)
			}
			return runConceptMode(cmd, tk, engine, reader, topic, docName, studentID, concepts, maxTurns)
		}
		return runSessionMode(cmd, tk, engine, reader, topic, docName, maxTurns)
	},
}

// chooseTopic renders the topic menu and reads a selection. Returns ""
// when the student quits at the menu.
func chooseTopic(reader *bufio.Reader, names []string) (string, error) {
	fmt.Println(questionStyle.Render("Topics:"))
	for i, name := range names {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
	for {
		fmt.Print("\nPick a topic (number), or quit: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", nil
			}
			return "", err
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if isQuit(input) {
			return "", nil
		}
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(names) {
			fmt.Printf("Enter a number between 1 and %d.\n", len(names))
			continue
		}
		return names[n-1], nil
	}
}

// runSessionMode drives the topic-level question loop.
func runSessionMode(cmd *cobra.Command, tk *toolkit, engine *socratic.Engine, reader *bufio.Reader, topic, docName string, maxTurns int) error {
	session := socratic.NewSession(engine, topic, docName, maxTurns)

	fmt.Printf("\nTeaching %q (%d turns max). Answer in your own words; quit to stop.\n\n", topic, maxTurns)
	q, err := session.Start(cmd.Context())
	if err != nil {
		return err
	}

	for session.State() == socratic.StateAwaitingAnswer {
		fmt.Println(questionStyle.Render("Q: " + q.Question))
		if q.HintIfStuck != "" {
			fmt.Println(mutedStyle.Render("   (hint: " + q.HintIfStuck + ")"))
		}

		fmt.Print("\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				session.Quit()
				break
			}
			return err
		}
		answer := strings.TrimSpace(line)
		if isQuit(answer) {
			session.Quit()
			break
		}

		ev, err := session.SubmitAnswer(cmd.Context(), answer)
		if err != nil {
			if errors.Is(err, socratic.ErrEmptyAnswer) {
				continue
			}
			return err
		}
		printEvaluation(ev)
		q = session.CurrentQuestion()
	}

	fmt.Printf("\nSession over: %s after %d turn(s).\n", session.FinalAssessment, len(session.Transcript))

	if len(session.Transcript) > 0 {
		fmt.Print("Save transcript? [y/N] ")
		line, err := reader.ReadString('\n')
		if err == nil && strings.EqualFold(strings.TrimSpace(line), "y") {
			path, err := saveTranscript(tk.cfg.Store.SessionsDir, session)
			if err != nil {
				return err
			}
			fmt.Printf("Saved to %s\n", path)
		}
	}
	return nil
}

// runConceptMode drives the concept-by-concept loop with profile
// write-through.
func runConceptMode(cmd *cobra.Command, tk *toolkit, engine *socratic.Engine, reader *bufio.Reader, topic, docName, studentID string, concepts []string, maxTurns int) error {
	profiles, err := profile.NewStore(filepath.Join(tk.cfg.Store.DataDir, "profiles"))
	if err != nil {
		return err
	}
	prof, err := profiles.Load(studentID)
	if err != nil {
		return err
	}

	fmt.Printf("\nTeaching %q concept by concept (%d concepts, %d turns each). quit to stop.\n",
		topic, len(concepts), maxTurns)

	loop := socratic.NewConceptLoop(engine, profiles, maxTurns)
	prompter := &stdinPrompter{reader: reader}
	outcomes, err := loop.Run(cmd.Context(), topic, docName, concepts, prof, prompter)
	if err != nil && !errors.Is(err, socratic.ErrQuit) {
		return err
	}

	fmt.Println()
	for _, o := range outcomes {
		switch {
		case o.Skipped:
			fmt.Printf("  %s %s\n", mutedStyle.Render("skipped"), o.Concept)
		case o.Incomplete:
			fmt.Printf("  %s %s\n", mutedStyle.Render("stopped"), o.Concept)
		case o.Status == profile.StatusLearned:
			fmt.Printf("  %s %s\n", correctStyle.Render("learned"), o.Concept)
		default:
			fmt.Printf("  %s %s\n", partialStyle.Render("weak   "), o.Concept)
		}
	}
	fmt.Println(profile.RenderTopic(prof, nil, topic))
	return nil
}

// stdinPrompter reads answers from the terminal for the concept loop.
type stdinPrompter struct {
	reader *bufio.Reader
}

func (p *stdinPrompter) Ask(concept string, q *socratic.TeachingQuestion, turn, maxTurns int) (string, error) {
	fmt.Printf("\n%s %s\n", questionStyle.Render("["+concept+"]"), mutedStyle.Render(fmt.Sprintf("turn %d/%d", turn, maxTurns)))
	fmt.Println(questionStyle.Render("Q: " + q.Question))
	if q.HintIfStuck != "" {
		fmt.Println(mutedStyle.Render("   (hint: " + q.HintIfStuck + ")"))
	}
	fmt.Print("\n> ")

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return "", socratic.ErrQuit
		}
		return "", err
	}
	answer := strings.TrimSpace(line)
	if isQuit(answer) {
		return "", socratic.ErrQuit
	}
	return answer, nil
}

func (p *stdinPrompter) Feedback(_ string, ev *socratic.Evaluation) {
	printEvaluation(ev)
}

func printEvaluation(ev *socratic.Evaluation) {
	var style lipgloss.Style
	switch ev.Correctness {
	case socratic.CorrectnessCorrect:
		style = correctStyle
	case socratic.CorrectnessPartial:
		style = partialStyle
	default:
		style = wrongStyle
	}
	fmt.Println("\n" + style.Render(strings.ToUpper(string(ev.Correctness))))
	fmt.Println(ev.Feedback)
	for _, s := range ev.Strengths {
		fmt.Println(correctStyle.Render("  + ") + s)
	}
	for _, g := range ev.Gaps {
		fmt.Println(partialStyle.Render("  - ") + g)
	}
	for _, m := range ev.Misconceptions {
		fmt.Println(wrongStyle.Render("  ! ") + m)
	}
	fmt.Println()
}

// saveTranscript writes the session JSON under the sessions directory.
func saveTranscript(dir string, session *socratic.Session) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create sessions dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s-%s.json",
		session.DocName,
		sanitizeFilename(session.Topic),
		session.StartedAt.Format("20060102-150405"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return path, nil
}

func sanitizeFilename(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return b.String()
}

func init() {
	teachCmd.Flags().Bool("by-concept", false, "Teach concept by concept, tracking progress in the student profile")
	teachCmd.Flags().Int("max-turns", 0, "Turn budget per session or per concept (default from config)")
	teachCmd.Flags().String("student", "", "Student profile ID (default from config)")
}
