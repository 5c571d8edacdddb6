package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/socratic/internal/chunker"
	"github.com/abhisek/socratic/internal/ingest"
	"github.com/abhisek/socratic/internal/topics"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Ingest a document: chunk, embed, and extract its topic map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skipTopics, _ := cmd.Flags().GetBool("skip-topics")

		tk, err := newToolkit(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer tk.Close()

		c, err := chunker.New(tk.cfg.Chunker.TargetSize, *tk.cfg.Chunker.Overlap)
		if err != nil {
			return fmt.Errorf("chunker config: %w", err)
		}

		pipeline := ingest.New(c, tk.embedder, tk.vectors, topics.NewExtractor(tk.provider))
		pipeline.SkipTopics = skipTopics

		stats, err := pipeline.Run(cmd.Context(), args[0], terminalProgress{})
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("Ingested %q\n", stats.DocName)
		fmt.Printf("  text:       %d chars\n", stats.TextChars)
		fmt.Printf("  chunks:     %d (target %d chars, overlap %d, avg %.0f)\n",
			stats.Chunks.NumChunks, stats.Chunks.TargetSize, stats.Chunks.Overlap, stats.Chunks.AvgChunkSize)
		fmt.Printf("  embeddings: %d tokens, est. $%.4f (%s)\n",
			stats.EmbedUsage.Tokens, stats.EmbedUsage.Cost, stats.EmbedUsage.Model)
		if stats.TopicsSkipped {
			fmt.Println("  topics:     skipped")
		} else {
			fmt.Printf("  topics:     %d\n", stats.TopicCount)
		}
		fmt.Printf("  run:        %s\n", stats.RunID)
		return nil
	},
}

// terminalProgress prints pipeline stages and a live embedding counter.
type terminalProgress struct{}

func (terminalProgress) Stage(name string) {
	fmt.Printf("» %s\n", name)
}

func (terminalProgress) Embedding(done, total int) {
	fmt.Printf("\r  embedded %d/%d chunks", done, total)
	if done == total {
		fmt.Println()
	}
}

func init() {
	ingestCmd.Flags().Bool("skip-topics", false, "Skip topic map extraction (re-embedding runs)")
}
