package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/topik-vocab-bot/internal/infra/postgres"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var wordColumns = []string{
	"id", "word_kr", "meaning_zh", "pos", "example_kr", "example_zh", "category_id", "subcategory_id",
}

// CatalogRepository provides read access to categories, subcategories and
// words, plus the inserts used by the catalog importer.
type CatalogRepository struct {
	db postgres.DBTX
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db postgres.DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListCategories returns all categories ordered by id.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]entities.Category, error) {
	query, args, err := psql.Select("id", "name").From("categories").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError("list categories", err)
	}
	defer rows.Close()

	categories := make([]entities.Category, 0)
	for rows.Next() {
		var c entities.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// ListSubcategories returns the subcategories of one category ordered by id.
// An unknown category yields an empty slice.
func (r *CatalogRepository) ListSubcategories(ctx context.Context, categoryID int64) ([]entities.Subcategory, error) {
	query, args, err := psql.Select("id", "name", "category_id").
		From("subcategories").
		Where(sq.Eq{"category_id": categoryID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list subcategories: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError("list subcategories", err)
	}
	defer rows.Close()

	subcategories := make([]entities.Subcategory, 0)
	for rows.Next() {
		var s entities.Subcategory
		if err := rows.Scan(&s.ID, &s.Name, &s.CategoryID); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		subcategories = append(subcategories, s)
	}

	return subcategories, rows.Err()
}

// ListWords returns at most limit words of a (category, subcategory) pair.
func (r *CatalogRepository) ListWords(ctx context.Context, categoryID, subcategoryID int64, limit int) ([]entities.WordEntry, error) {
	if limit <= 0 {
		return []entities.WordEntry{}, nil
	}

	query, args, err := psql.Select(wordColumns...).
		From("vocabularies").
		Where(sq.Eq{"category_id": categoryID, "subcategory_id": subcategoryID}).
		OrderBy("id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list words: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError("list words", err)
	}
	return collectWords(rows)
}

// SampleWords returns up to n random words of a (category, subcategory) pair.
func (r *CatalogRepository) SampleWords(ctx context.Context, categoryID, subcategoryID int64, n int) ([]entities.WordEntry, error) {
	if n <= 0 {
		return []entities.WordEntry{}, nil
	}

	query, args, err := psql.Select(wordColumns...).
		From("vocabularies").
		Where(sq.Eq{"category_id": categoryID, "subcategory_id": subcategoryID}).
		OrderBy("random()").
		Limit(uint64(n)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sample words: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError("sample words", err)
	}
	return collectWords(rows)
}

// FindWordsBySurfaceForm returns every word, across all categories, whose
// word_kr equals surfaceForm byte for byte.
func (r *CatalogRepository) FindWordsBySurfaceForm(ctx context.Context, surfaceForm string) ([]entities.WordEntry, error) {
	query, args, err := psql.Select(wordColumns...).
		From("vocabularies").
		Where(sq.Eq{"word_kr": surfaceForm}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find words: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError("find words by surface form", err)
	}
	return collectWords(rows)
}

// GetWord returns a single word by id.
func (r *CatalogRepository) GetWord(ctx context.Context, id int64) (*entities.WordEntry, error) {
	query, args, err := psql.Select(wordColumns...).
		From("vocabularies").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get word: %w", err)
	}

	var w entities.WordEntry
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&w.ID, &w.SurfaceForm, &w.Gloss, &w.PartOfSpeech,
		&w.ExampleKR, &w.ExampleZH, &w.CategoryID, &w.SubcategoryID,
	)
	if err != nil {
		return nil, postgres.MapError(fmt.Sprintf("get word %d", id), err)
	}

	return &w, nil
}

// EnsureCategory returns the id of the category named name, creating it if needed.
func (r *CatalogRepository) EnsureCategory(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO categories (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return 0, postgres.MapError("ensure category", err)
	}
	return id, nil
}

// EnsureSubcategory returns the id of the subcategory named name under
// categoryID, creating it if needed.
func (r *CatalogRepository) EnsureSubcategory(ctx context.Context, categoryID int64, name string) (int64, error) {
	query := `
		INSERT INTO subcategories (category_id, name) VALUES ($1, $2)
		ON CONFLICT (category_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRow(ctx, query, categoryID, name).Scan(&id); err != nil {
		return 0, postgres.MapError("ensure subcategory", err)
	}
	return id, nil
}

// UpsertWord stores a word, keyed by (subcategory, spelling). An existing
// entry gets the new gloss, part of speech and example. inserted reports
// whether a new row was created.
func (r *CatalogRepository) UpsertWord(ctx context.Context, w *entities.WordEntry) (id int64, inserted bool, err error) {
	query, args, err := psql.Insert("vocabularies").
		Columns(wordColumns[1:]...).
		Values(w.SurfaceForm, w.Gloss, w.PartOfSpeech, w.ExampleKR, w.ExampleZH, w.CategoryID, w.SubcategoryID).
		Suffix(`ON CONFLICT (subcategory_id, word_kr) DO UPDATE SET
			meaning_zh = EXCLUDED.meaning_zh,
			pos = EXCLUDED.pos,
			example_kr = EXCLUDED.example_kr,
			example_zh = EXCLUDED.example_zh
		RETURNING id, (xmax = 0) AS inserted`).
		ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("build upsert word: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&id, &inserted); err != nil {
		return 0, false, postgres.MapError("upsert word", err)
	}
	return id, inserted, nil
}

func collectWords(rows pgx.Rows) ([]entities.WordEntry, error) {
	defer rows.Close()

	words := make([]entities.WordEntry, 0)
	for rows.Next() {
		var w entities.WordEntry
		if err := rows.Scan(
			&w.ID, &w.SurfaceForm, &w.Gloss, &w.PartOfSpeech,
			&w.ExampleKR, &w.ExampleZH, &w.CategoryID, &w.SubcategoryID,
		); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}

	return words, rows.Err()
}
