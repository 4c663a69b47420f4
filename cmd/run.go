package cmd

import (
	"github.com/alevelmaths/alevel/internal/app"
	"github.com/alevelmaths/alevel/internal/store"
	"github.com/spf13/cobra"
)

// runApp loads the question bank and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	return app.Run(app.Options{
		Catalog: cat,
		Journal: store.NewMemoryStore(store.DefaultCapacity),
	})
}
