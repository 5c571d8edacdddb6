package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/socratic/internal/profile"
	"github.com/abhisek/socratic/internal/topics"
	"github.com/abhisek/socratic/internal/vectorstore"
)

var progressCmd = &cobra.Command{
	Use:   "progress [doc]",
	Short: "Show the student's learning progress",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetString("student")
		topicFilter, _ := cmd.Flags().GetString("topic")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if studentID == "" {
			studentID = cfg.Teach.StudentID
		}

		profiles, err := profile.NewStore(filepath.Join(cfg.Store.DataDir, "profiles"))
		if err != nil {
			return err
		}
		prof, err := profiles.Load(studentID)
		if err != nil {
			return err
		}

		// The topic map is the preferred mastery denominator when a
		// document is named.
		var tm *topics.TopicMap
		if len(args) == 1 {
			vectors, err := vectorstore.New(cfg.Store.DataDir)
			if err != nil {
				return err
			}
			tm, err = vectors.LoadTopics(args[0])
			if err != nil && !vectorstore.IsNotFound(err) {
				return err
			}
		}

		if topicFilter != "" {
			fmt.Print(profile.RenderTopic(prof, tm, topicFilter))
			return nil
		}
		fmt.Print(profile.Render(prof, tm))
		return nil
	},
}

func init() {
	progressCmd.Flags().String("student", "", "Student profile ID (default from config)")
	progressCmd.Flags().String("topic", "", "Show a single topic only")
}
