package cli

import (
	"fmt"

	"hirescope/internal/config"
	"hirescope/internal/engine"
	"hirescope/internal/errors"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the active skill catalog",
	Long: `Show the skill catalog used for resume matching. The catalog comes from
the configured catalog file when one is set and loads, otherwise the
built-in term list is used.`,
	RunE: runCatalog,
}

// loadCatalog loads the configured skill catalog, falling back to the
// built-in terms when no file is configured or the file cannot be loaded.
// The returned source names the built-in list or the catalog file.
func loadCatalog(cfg *config.Config, logger *errors.Logger) (*engine.Catalog, string) {
	if cfg.Engine.CatalogFile == "" {
		return engine.DefaultCatalog(), "built-in"
	}

	catalog, err := engine.LoadCatalogFile(cfg.Engine.CatalogFile)
	if err != nil {
		logger.LogError(err, "Failed to load skill catalog, using built-in terms",
			"file", cfg.Engine.CatalogFile)
		return engine.DefaultCatalog(), "built-in"
	}

	logger.Info("Loaded skill catalog",
		"file", cfg.Engine.CatalogFile,
		"terms", catalog.Len())
	return catalog, cfg.Engine.CatalogFile
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	catalog, source := loadCatalog(cfg, logger)

	fmt.Printf("Skill catalog (%s, %d terms):\n", source, catalog.Len())
	for _, term := range catalog.Terms() {
		fmt.Println(term)
	}
	return nil
}
