package service

import (
	"context"
	"time"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain"
	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

// WordFinder looks up catalog entries by exact spelling.
type WordFinder interface {
	FindWordsBySurfaceForm(ctx context.Context, surfaceForm string) ([]entities.WordEntry, error)
}

// ProgressService reconciles learner outcomes into progress records and
// reads them back as summaries.
type ProgressService struct {
	words    WordFinder
	progress ProgressRepository
	now      func() time.Time
}

func NewProgressService(words WordFinder, progress ProgressRepository) *ProgressService {
	return &ProgressService{
		words:    words,
		progress: progress,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecordOutcome applies status to every catalog entry spelled exactly
// surfaceForm, across all categories, for userID. Part of speech is not
// considered. No match is a valid result with Upserted == 0.
//
// A store failure may leave some matches written and others not; repeating
// the call converges since each write is an upsert.
func (s *ProgressService) RecordOutcome(
	ctx context.Context, surfaceForm string, status entities.Status, userID int64,
) (*entities.ReconciliationResult, error) {
	if err := validateOutcome(surfaceForm, status, userID); err != nil {
		return nil, err
	}

	matches, err := s.words.FindWordsBySurfaceForm(ctx, surfaceForm)
	if err != nil {
		return nil, domain.NewStoreError("find words by surface form", err)
	}

	result := &entities.ReconciliationResult{
		SurfaceForm: surfaceForm,
		Status:      status,
		WordIDs:     make([]int64, 0, len(matches)),
	}

	now := s.now()
	for _, w := range matches {
		if err := s.progress.Upsert(ctx, entities.NewProgressRecord(userID, w.ID, status, now)); err != nil {
			return nil, domain.NewStoreError("upsert progress", err)
		}
		result.Upserted++
		result.WordIDs = append(result.WordIDs, w.ID)
	}

	return result, nil
}

func validateOutcome(surfaceForm string, status entities.Status, userID int64) error {
	var errs []domain.FieldError
	if surfaceForm == "" {
		errs = append(errs, domain.FieldError{Field: "surface_form", Message: "must not be empty"})
	}
	if !status.Valid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be known or wrong"})
	}
	if userID <= 0 {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// GetSummary counts the user's records by status. A user without records
// gets zero counts.
func (s *ProgressService) GetSummary(ctx context.Context, userID int64) (*entities.ProgressSummary, error) {
	records, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewStoreError("list progress", err)
	}

	summary := entities.SummarizeProgress(records)
	return &summary, nil
}

// GetStatuses returns the user's statuses for a displayed word list.
func (s *ProgressService) GetStatuses(
	ctx context.Context, userID int64, words []entities.WordEntry,
) (map[int64]entities.Status, error) {
	ids := make([]int64, 0, len(words))
	for _, w := range words {
		ids = append(ids, w.ID)
	}

	statuses, err := s.progress.GetStatuses(ctx, userID, ids)
	if err != nil {
		return nil, domain.NewStoreError("get statuses", err)
	}
	return statuses, nil
}
