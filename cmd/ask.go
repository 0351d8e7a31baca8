package cmd

import (
	"fmt"
	"strings"

	"github.com/Yates-Labs/historian/internal/session"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question about a historical event",
	Long: `Ask one question, print the historian's answer and exit.

The question is matched against the dataset's event names and descriptions.
When nothing matches, no model call is made.

Examples:
  historian ask "What happened during the moon landing?"
  historian ask tell me about the french revolution --provider openai
  historian ask "Who fought at Waterloo?" --data events.json --verbose`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	styles := session.NewStyles(out)

	// Print question
	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Header.Render("Question:"))
	fmt.Fprintln(out, styles.Question.Render(question))
	fmt.Fprintln(out)

	answer, err := a.pipeline.Ask(cmd.Context(), question)
	if err != nil {
		return err
	}

	if !answer.Found {
		fmt.Fprintln(out, styles.Error.Render("❌ I couldn't find specific information about that event in my database."))
		fmt.Fprintln(out, styles.Progress.Render("💡 Run 'historian list' to see available events."))
		return nil
	}

	fmt.Fprintln(out, styles.Progress.Render(fmt.Sprintf("→ %s (%s)", answer.Record.Title(), answer.Record.When())))
	fmt.Fprintln(out)

	// Print answer
	fmt.Fprintln(out, styles.Header.Render("Answer:"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Answer.Render(strings.TrimSpace(answer.Narrative.Text)))
	fmt.Fprintln(out)

	return nil
}
