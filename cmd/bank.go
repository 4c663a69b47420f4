package cmd

import (
	"fmt"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Question bank tools",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a question bank file against the schema and content rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var problems int
		for _, level := range cat.Levels() {
			for _, t := range cat.Topics(level) {
				problems += cat.ProblemCount(level, t.ID)
			}
		}
		fmt.Fprintf(out, "%s: OK (%d topics, %d problems)\n", args[0], cat.TotalTopics(), problems)
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankValidateCmd)
}
