package cmd

import (
	"fmt"
	"strings"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics in the question bank (optionally filtered by level)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		levels := cat.Levels()
		if l, _ := cmd.Flags().GetString("level"); l != "" {
			level, err := catalog.ParseLevel(l)
			if err != nil {
				return err
			}
			levels = []catalog.Level{level}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-36s  %-30s  %9s\n", "ID", "Name", "Questions")
		fmt.Fprintln(out, strings.Repeat("─", 79))

		var n int
		for _, level := range levels {
			for _, t := range cat.Topics(level) {
				fmt.Fprintf(out, "%-36s  %s  %9d\n",
					catalog.NewTopicID(level, t.ID), fit(t.Name, 30), cat.ProblemCount(level, t.ID))
				n++
			}
		}

		fmt.Fprintf(out, "\n%d topics\n", n)
		return nil
	},
}

func init() {
	topicsCmd.Flags().String("level", "", "Filter by level (alevel or further)")
}
