package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/socratic/internal/config"
	"github.com/abhisek/socratic/internal/llm"
	"github.com/abhisek/socratic/internal/retriever"
	"github.com/abhisek/socratic/internal/store"
	"github.com/abhisek/socratic/internal/vectorstore"
)

var rootCmd = &cobra.Command{
	Use:           "socratic",
	Short:         "Socratic tutor for your own documents",
	Long:          "Socratic — ingest course material, ask grounded questions, and get tutored on it one probing question at a time.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	// Missing .env is fine; keys can come from the environment directly.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (default: ./socratic.yaml, then ~/.config/socratic/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite telemetry database (overrides SOCRATIC_DB env var)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for ingested data and profiles (overrides config)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: openai, anthropic, gemini (overrides config)")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(teachCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the app config honoring the --config, --data-dir,
// and --provider flags.
func loadConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	var cfg *config.AppConfig
	var err error
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.Store.DataDir = dir
	}
	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		cfg.LLM.Provider = provider
	}
	return cfg, nil
}

// resolveDBPath returns the telemetry database path using the --db flag
// (highest priority), then SOCRATIC_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the telemetry database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// toolkit bundles the wiring shared by the document-facing commands.
type toolkit struct {
	cfg       *config.AppConfig
	store     *store.Store
	vectors   *vectorstore.Store
	provider  llm.Provider
	embedder  llm.Embedder
	retriever *retriever.Retriever
}

// newToolkit wires config, telemetry, the vector store, and the LLM stack
// for a command. Callers must Close it.
func newToolkit(ctx context.Context, cmd *cobra.Command) (*toolkit, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	llmCfg, err := cfg.LLMConfig()
	if err != nil {
		return nil, err
	}

	s, err := openStore(cmd)
	if err != nil {
		return nil, err
	}

	vectors, err := vectorstore.New(cfg.Store.DataDir)
	if err != nil {
		s.Close()
		return nil, err
	}

	provider, err := llm.NewProvider(ctx, llmCfg, s.EventRepo())
	if err != nil {
		s.Close()
		return nil, err
	}

	embedder, err := llm.NewEmbedder(llmCfg, s.EventRepo())
	if err != nil {
		s.Close()
		return nil, err
	}

	return &toolkit{
		cfg:       cfg,
		store:     s,
		vectors:   vectors,
		provider:  provider,
		embedder:  embedder,
		retriever: retriever.New(vectors, embedder),
	}, nil
}

func (t *toolkit) Close() {
	t.store.Close()
}
