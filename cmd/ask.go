package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/socratic/internal/qa"
	"github.com/abhisek/socratic/internal/vectorstore"
)

var askCmd = &cobra.Command{
	Use:   "ask <doc>",
	Short: "Ask free-form questions about an ingested document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docName := args[0]
		topK, _ := cmd.Flags().GetInt("top-k")
		showContext, _ := cmd.Flags().GetBool("show-context")

		tk, err := newToolkit(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer tk.Close()

		answerer := qa.New(tk.retriever, tk.provider)

		fmt.Printf("Asking about %q. Type your question, or quit/exit to stop.\n", docName)
		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("\n? ")
			line, err := reader.ReadString('\n')
			if err != nil {
				if errors.Is(err, io.EOF) {
					fmt.Println()
					return nil
				}
				return err
			}

			query := strings.TrimSpace(line)
			if query == "" {
				continue
			}
			if isQuit(query) {
				return nil
			}

			ans, err := answerer.Answer(cmd.Context(), query, docName, topK)
			if err != nil {
				if vectorstore.IsNotFound(err) {
					return fmt.Errorf("%q has not been ingested yet; run: socratic ingest <file>", docName)
				}
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}

			fmt.Println()
			fmt.Println(ans.Text)
			if showContext {
				fmt.Println("\nsources:")
				for _, src := range ans.Sources {
					fmt.Printf("  [%.3f] %s\n", src.Score, firstLine(src.Text))
				}
			}
		}
	},
}

// isQuit reports whether the input is a session-ending command.
func isQuit(s string) bool {
	switch strings.ToLower(s) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 100 {
		s = s[:100] + "…"
	}
	return s
}

func init() {
	askCmd.Flags().IntP("top-k", "k", 3, "Number of chunks to ground the answer on")
	askCmd.Flags().Bool("show-context", false, "Show the retrieved chunks and their scores")
}
