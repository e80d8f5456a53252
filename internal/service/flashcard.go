package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain"
	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

// OutcomeRecorder propagates a learner outcome to all entries sharing a spelling.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, surfaceForm string, status entities.Status, userID int64) (*entities.ReconciliationResult, error)
}

type FlashcardService struct {
	catalog  CatalogRepository
	outcomes OutcomeRecorder
}

func NewFlashcardService(catalog CatalogRepository, outcomes OutcomeRecorder) *FlashcardService {
	return &FlashcardService{catalog: catalog, outcomes: outcomes}
}

// Draw picks a random word of the selected subcategory.
func (s *FlashcardService) Draw(ctx context.Context, sel entities.Selection) (*entities.Flashcard, error) {
	if !sel.HasSubcategory() {
		return nil, fmt.Errorf("%w: choose a subcategory first", domain.ErrInvalidSelection)
	}

	words, err := s.catalog.SampleWords(ctx, sel.Category.ID, sel.Subcategory.ID, 1)
	if err != nil {
		return nil, domain.NewStoreError("sample words", err)
	}
	if len(words) == 0 {
		return nil, domain.ErrNoWords
	}

	return &entities.Flashcard{Word: words[0], Title: sel.Title()}, nil
}

// Mark records the learner's verdict on a card. The card is addressed by
// word id; the outcome applies to every entry with the same spelling.
func (s *FlashcardService) Mark(
	ctx context.Context, userID, wordID int64, status entities.Status,
) (*entities.ReconciliationResult, error) {
	word, err := s.catalog.GetWord(ctx, wordID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.NewStoreError("get word", err)
	}

	return s.outcomes.RecordOutcome(ctx, word.SurfaceForm, status, userID)
}
