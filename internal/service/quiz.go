package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain"
	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

// DefaultQuizOptions is the number of choices offered in choice mode.
const DefaultQuizOptions = 4

// distractor pool drawn per question; some may share the target's gloss
const sampleFactor = 3

type QuizService struct {
	catalog  CatalogRepository
	outcomes OutcomeRecorder
	options  int
}

func NewQuizService(catalog CatalogRepository, outcomes OutcomeRecorder, options int) *QuizService {
	if options < 2 {
		options = DefaultQuizOptions
	}
	return &QuizService{catalog: catalog, outcomes: outcomes, options: options}
}

// NextQuestion builds a question about a random word of the selected subcategory.
func (s *QuizService) NextQuestion(
	ctx context.Context, sel entities.Selection, mode entities.QuizMode,
) (*entities.Question, error) {
	if mode != entities.QuizModeTyped && mode != entities.QuizModeChoice {
		return nil, domain.NewValidationError("mode", "must be typed or choice")
	}
	if !sel.HasSubcategory() {
		return nil, fmt.Errorf("%w: choose a subcategory first", domain.ErrInvalidSelection)
	}

	n := 1
	if mode == entities.QuizModeChoice {
		n = s.options * sampleFactor
	}

	words, err := s.catalog.SampleWords(ctx, sel.Category.ID, sel.Subcategory.ID, n)
	if err != nil {
		return nil, domain.NewStoreError("sample words", err)
	}
	if len(words) == 0 {
		return nil, domain.ErrNoWords
	}

	target := words[0]
	q := &entities.Question{
		Word:          target,
		Mode:          mode,
		Prompt:        fmt.Sprintf("韩语：%s 的中文意思是？", target.SurfaceForm),
		CorrectAnswer: target.Gloss,
		AskedAt:       time.Now(),
	}

	if mode == entities.QuizModeChoice {
		distractors := getRandomDistractors(words[1:], target.Gloss, s.options-1)
		q.Options, q.CorrectIndex = buildOptionsWithCorrect(target.Gloss, distractors)
	}

	return q, nil
}

// CheckAnswer compares a typed answer with the gloss and records the outcome.
func (s *QuizService) CheckAnswer(
	ctx context.Context, userID int64, q *entities.Question, answer string,
) (*entities.QuizAnswer, error) {
	qa := entities.NewQuizAnswer(userID, q)
	qa.CheckAnswer(answer)

	res, err := s.outcomes.RecordOutcome(ctx, q.Word.SurfaceForm, qa.Status(), userID)
	if err != nil {
		return nil, err
	}
	qa.Reconciliation = res

	return qa, nil
}

// CheckChoice checks the option at index of a choice question.
func (s *QuizService) CheckChoice(
	ctx context.Context, userID int64, q *entities.Question, index int,
) (*entities.QuizAnswer, error) {
	answer, ok := q.Answer(index)
	if !ok {
		return nil, domain.NewValidationError("option", fmt.Sprintf("index %d out of range", index))
	}
	return s.CheckAnswer(ctx, userID, q, answer)
}

// getRandomDistractors picks up to count distinct glosses different from correct.
func getRandomDistractors(candidates []entities.WordEntry, correct string, count int) []string {
	seen := map[string]struct{}{correct: {}}
	out := make([]string, 0, count)

	for _, w := range candidates {
		if len(out) == count {
			break
		}
		if _, dup := seen[w.Gloss]; dup || w.Gloss == "" {
			continue
		}
		seen[w.Gloss] = struct{}{}
		out = append(out, w.Gloss)
	}

	return out
}

func buildOptionsWithCorrect(correct string, distractors []string) ([]string, int) {
	options := make([]string, 0, 1+len(distractors))
	options = append(options, correct)
	options = append(options, distractors...)

	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correctIndex := 0
	for i, opt := range options {
		if opt == correct {
			correctIndex = i
			break
		}
	}

	return options, correctIndex
}
