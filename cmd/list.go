package cmd

import (
	"fmt"

	"github.com/Yates-Labs/historian/internal/session"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the events in the dataset",
	Long: `List every event in the dataset with its year.

No API key is needed.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	if a.store.Empty() {
		fmt.Fprintln(out, "No historical events available.")
		return nil
	}
	session.WriteEvents(out, a.store)
	return nil
}
