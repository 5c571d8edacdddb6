package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/socratic/internal/vectorstore"
)

var topicsCmd = &cobra.Command{
	Use:   "topics <doc>",
	Short: "Print the stored topic map for an ingested document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docName := args[0]

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		vectors, err := vectorstore.New(cfg.Store.DataDir)
		if err != nil {
			return err
		}

		tm, err := vectors.LoadTopics(docName)
		if err != nil {
			if vectorstore.IsNotFound(err) {
				return fmt.Errorf("no topic map for %q; run: socratic ingest <file>", docName)
			}
			return err
		}

		fmt.Println(tm.PDFSummary)
		for _, name := range tm.Names() {
			topic := tm.Topics[name]
			fmt.Printf("\n%s\n", questionStyle.Render(name))
			fmt.Printf("  %s\n", topic.Summary)
			for _, kp := range topic.KeyPoints {
				fmt.Printf("  • %s\n", kp)
			}
			if len(topic.Concepts) > 0 {
				fmt.Println(mutedStyle.Render("  concepts:"))
				for _, c := range topic.Concepts {
					fmt.Printf("    - %s\n", c)
				}
			}
		}
		return nil
	},
}
