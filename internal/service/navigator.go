package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain"
	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

// RandomWordsCount is the size of a random word sample.
const RandomWordsCount = 10

// NavigatorService resolves a session's selection into word lists.
// It holds no per-session state: the selection is passed in and returned.
type NavigatorService struct {
	catalog CatalogRepository
	limits  entities.WordLimits
}

func NewNavigatorService(catalog CatalogRepository, limits entities.WordLimits) *NavigatorService {
	return &NavigatorService{catalog: catalog, limits: limits}
}

// Limits returns the configured word list bounds.
func (s *NavigatorService) Limits() entities.WordLimits {
	return s.limits
}

// ListCategories returns every category. An empty catalog is not an error.
func (s *NavigatorService) ListCategories(ctx context.Context) ([]entities.Category, error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, domain.NewStoreError("list categories", err)
	}
	return categories, nil
}

// ListSubcategories returns the subcategories of a category. A category
// without subcategories yields an empty slice and a nil error.
func (s *NavigatorService) ListSubcategories(ctx context.Context, categoryID int64) ([]entities.Subcategory, error) {
	subcategories, err := s.catalog.ListSubcategories(ctx, categoryID)
	if err != nil {
		return nil, domain.NewStoreError("list subcategories", err)
	}
	return subcategories, nil
}

// ChooseCategory selects a category from any state and clears the subcategory.
func (s *NavigatorService) ChooseCategory(
	ctx context.Context, sel entities.Selection, categoryID int64,
) (entities.Selection, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return sel, err
	}

	for _, c := range categories {
		if c.ID == categoryID {
			return sel.WithCategory(c), nil
		}
	}

	return sel, fmt.Errorf("%w: unknown category %d", domain.ErrInvalidSelection, categoryID)
}

// ChooseSubcategory selects a subcategory of the current category and fetches
// its word list bounded by the clamped limit. On any error the input
// selection is returned unchanged.
func (s *NavigatorService) ChooseSubcategory(
	ctx context.Context, sel entities.Selection, subcategoryID int64, limit int,
) (entities.Selection, []entities.WordEntry, error) {
	if sel.State() == entities.StateNoCategory {
		return sel, nil, fmt.Errorf("%w: choose a category first", domain.ErrInvalidSelection)
	}

	subcategories, err := s.ListSubcategories(ctx, sel.Category.ID)
	if err != nil {
		return sel, nil, err
	}

	var (
		sub   entities.Subcategory
		found bool
	)
	for _, candidate := range subcategories {
		if candidate.ID == subcategoryID {
			sub, found = candidate, true
			break
		}
	}
	if !found {
		return sel, nil, fmt.Errorf("%w: subcategory %d does not belong to category %d",
			domain.ErrInvalidSelection, subcategoryID, sel.Category.ID)
	}

	next, err := sel.WithSubcategory(sub)
	if err != nil {
		return sel, nil, err
	}

	words, err := s.ListWords(ctx, next, limit)
	if err != nil {
		return sel, nil, err
	}

	return next, words, nil
}

// ListWords fetches the word list of a fully resolved selection.
func (s *NavigatorService) ListWords(
	ctx context.Context, sel entities.Selection, limit int,
) ([]entities.WordEntry, error) {
	if !sel.HasSubcategory() {
		return nil, fmt.Errorf("%w: choose a subcategory first", domain.ErrInvalidSelection)
	}

	words, err := s.catalog.ListWords(ctx, sel.Category.ID, sel.Subcategory.ID, s.limits.Clamp(limit))
	if err != nil {
		return nil, domain.NewStoreError("list words", err)
	}
	return words, nil
}

// RandomWords samples up to RandomWordsCount words of the selected
// subcategory in random order.
func (s *NavigatorService) RandomWords(ctx context.Context, sel entities.Selection) ([]entities.WordEntry, error) {
	if !sel.HasSubcategory() {
		return nil, fmt.Errorf("%w: choose a subcategory first", domain.ErrInvalidSelection)
	}

	words, err := s.catalog.SampleWords(ctx, sel.Category.ID, sel.Subcategory.ID, RandomWordsCount)
	if err != nil {
		return nil, domain.NewStoreError("sample words", err)
	}
	if len(words) == 0 {
		return nil, domain.ErrNoWords
	}
	return words, nil
}
