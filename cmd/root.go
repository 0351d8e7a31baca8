package cmd

import (
	"fmt"
	"os"

	"github.com/Yates-Labs/historian/internal/session"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "historian",
	Short: "Historian - Interactive historical event explorer",
	Long: `Historian answers questions about historical events.

It matches each question against a local dataset of events and asks a
language model to tell the story of the matching event. Run without a
subcommand to start an interactive session.

The API key is read from HISTORIAN_API_KEY, GOOGLE_API_KEY or
OPENAI_API_KEY, and may be placed in a .env file.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSession,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (TOML, YAML or JSON)")
	flags.String("data", "history_data.json", "Path of the historical events dataset")
	flags.String("provider", "gemini", "Model provider: gemini or openai")
	flags.String("model", "", "Model name (default depends on provider)")
	flags.String("base-url", "", "OpenAI-compatible endpoint overriding the provider's")
	flags.Float64("temperature", 0, "Sampling temperature (0 = provider default)")
	flags.Int("max-tokens", 1024, "Maximum tokens in an answer")
	flags.Duration("request-timeout", 0, "Timeout for each model call (0 = none)")
	flags.String("similarity", "sequence", "Question matching: sequence or tokens")
	flags.Bool("strict", false, "Fail when the dataset cannot be loaded")
	flags.String("log-format", "console", "Diagnostic log format: console or json")
	flags.BoolP("verbose", "v", false, "Log retrieval and generation details")
}

func runSession(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	s := session.New(a.pipeline, cmd.InOrStdin(), cmd.OutOrStdout(), session.WithLogger(a.log))
	return s.Run(cmd.Context())
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
