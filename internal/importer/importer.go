package importer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/topik-vocab-bot/internal/infra/postgres"
)

// CatalogWriter creates catalog rows.
type CatalogWriter interface {
	EnsureCategory(ctx context.Context, name string) (int64, error)
	EnsureSubcategory(ctx context.Context, categoryID int64, name string) (int64, error)
	UpsertWord(ctx context.Context, w *entities.WordEntry) (id int64, inserted bool, err error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, db postgres.DBTX) error) error
}

// Result summarizes one import run.
type Result struct {
	Processed     int
	Inserted      int
	Updated       int // words already in the catalog, refreshed from the file
	Skipped       int
	Categories    int
	Subcategories int
	Errors        []string
}

// Importer writes rows into the catalog inside one transaction.
type Importer struct {
	tx        Transactor
	newWriter func(db postgres.DBTX) CatalogWriter
	logger    *zap.Logger
}

func New(tx Transactor, newWriter func(db postgres.DBTX) CatalogWriter, logger *zap.Logger) *Importer {
	return &Importer{tx: tx, newWriter: newWriter, logger: logger}
}

// ImportFile reads path and imports its rows.
func (im *Importer) ImportFile(ctx context.Context, path, sheet string) (*Result, error) {
	rows, err := ReadFile(path, sheet)
	if err != nil {
		return nil, err
	}
	return im.Import(ctx, rows)
}

// Import writes rows, creating categories and subcategories by name.
// Invalid rows and repeats of a word within the same subcategory are skipped
// and reported. A word already stored in its subcategory is updated, so
// re-importing a file does not duplicate entries. Any store error aborts the
// whole import.
func (im *Importer) Import(ctx context.Context, rows []Row) (*Result, error) {
	var result *Result

	err := im.tx.WithinTx(ctx, func(ctx context.Context, db postgres.DBTX) error {
		result = &Result{Errors: make([]string, 0)}
		w := im.newWriter(db)

		categories := make(map[string]int64)
		subcategories := make(map[string]int64)
		seen := make(map[string]struct{})

		for _, row := range rows {
			result.Processed++

			if err := row.Validate(); err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", row.Line, err))
				continue
			}

			catID, ok := categories[row.Category]
			if !ok {
				id, err := w.EnsureCategory(ctx, row.Category)
				if err != nil {
					return fmt.Errorf("line %d: %w", row.Line, err)
				}
				catID = id
				categories[row.Category] = id
				result.Categories++
			}

			subKey := fmt.Sprintf("%d/%s", catID, row.Subcategory)
			subID, ok := subcategories[subKey]
			if !ok {
				id, err := w.EnsureSubcategory(ctx, catID, row.Subcategory)
				if err != nil {
					return fmt.Errorf("line %d: %w", row.Line, err)
				}
				subID = id
				subcategories[subKey] = id
				result.Subcategories++
			}

			wordKey := fmt.Sprintf("%d/%s", subID, row.SurfaceForm)
			if _, dup := seen[wordKey]; dup {
				result.Skipped++
				result.Errors = append(result.Errors,
					fmt.Sprintf("line %d: duplicate word %q in %s / %s", row.Line, row.SurfaceForm, row.Category, row.Subcategory))
				continue
			}
			seen[wordKey] = struct{}{}

			_, inserted, err := w.UpsertWord(ctx, &entities.WordEntry{
				SurfaceForm:   row.SurfaceForm,
				Gloss:         row.Gloss,
				PartOfSpeech:  row.PartOfSpeech,
				ExampleKR:     row.ExampleKR,
				ExampleZH:     row.ExampleZH,
				CategoryID:    catID,
				SubcategoryID: subID,
			})
			if err != nil {
				return fmt.Errorf("line %d: %w", row.Line, err)
			}
			if inserted {
				result.Inserted++
			} else {
				result.Updated++
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import catalog: %w", err)
	}

	im.logger.Info("catalog imported",
		zap.Int("processed", result.Processed),
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}
