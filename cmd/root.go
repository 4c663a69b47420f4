package cmd

import (
	"fmt"
	"os"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/spf13/cobra"
)

// bankEnv names the environment variable holding an alternate question bank.
const bankEnv = "ALEVEL_BANK"

var rootCmd = &cobra.Command{
	Use:   "alevel",
	Short: "A-Level and Further Maths practice quizzes",
	Long:  "alevel is a terminal quiz for A-Level Mathematics and Further Mathematics: pick a topic, answer worked problems, track your best scores.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("bank", "", "Path to a question bank JSON file (overrides "+bankEnv+" env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveBankPath returns the bank path using --bank flag (highest
// priority), then ALEVEL_BANK. Empty means the embedded bank.
func resolveBankPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		return p
	}
	return os.Getenv(bankEnv)
}

// loadCatalog loads the question bank selected by flags and environment.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path := resolveBankPath(cmd)
	if path == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load question bank %s: %w", path, err)
	}
	return cat, nil
}
