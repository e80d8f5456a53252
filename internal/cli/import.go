package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/topik-vocab-bot/internal/importer"
	"github.com/aliskhannn/topik-vocab-bot/internal/infra/postgres"
	"github.com/aliskhannn/topik-vocab-bot/internal/infra/postgres/repository"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import words from an .xlsx or .csv file",
	Long: "Import reads rows of category, subcategory, word_kr, meaning_zh, pos, example_kr, example_zh\n" +
		"and adds them to the catalog. Categories and subcategories are created by name.",
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringP("file", "f", "", "path to the .xlsx or .csv file")
	importCmd.Flags().String("sheet", "", "sheet name in an .xlsx file (default: first sheet)")
	_ = importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	sheet, _ := cmd.Flags().GetString("sheet")

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	ctx := cmd.Context()
	pool, err := e.openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	im := importer.New(
		postgres.NewTransactor(pool),
		func(db postgres.DBTX) importer.CatalogWriter { return repository.NewCatalogRepository(db) },
		e.logger,
	)

	res, err := im.ImportFile(ctx, path, sheet)
	if err != nil {
		return err
	}

	e.logger.Info("import finished",
		zap.String("file", path),
		zap.Int("processed", res.Processed),
		zap.Int("inserted", res.Inserted),
		zap.Int("updated", res.Updated),
		zap.Int("skipped", res.Skipped),
	)
	for _, msg := range res.Errors {
		cmd.PrintErrln("skipped:", msg)
	}
	cmd.Printf("processed %d, inserted %d, updated %d, skipped %d (categories %d, subcategories %d)\n",
		res.Processed, res.Inserted, res.Updated, res.Skipped, res.Categories, res.Subcategories)
	return nil
}
