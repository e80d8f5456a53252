package entities

import (
	"strings"
	"time"
)

// QuizMode selects how a question is answered.
type QuizMode string

const (
	QuizModeTyped  QuizMode = "typed"  // the learner types the meaning
	QuizModeChoice QuizMode = "choice" // the learner picks one of the options
)

// Question asks for the meaning of one word entry.
type Question struct {
	Word          WordEntry
	Mode          QuizMode
	Prompt        string
	Options       []string // choice mode only
	CorrectIndex  int      // choice mode only
	CorrectAnswer string
	AskedAt       time.Time
}

// Answer returns the text of the option at index i, or false when i is out of range.
func (q *Question) Answer(i int) (string, bool) {
	if i < 0 || i >= len(q.Options) {
		return "", false
	}
	return q.Options[i], true
}

// QuizAnswer is the checked answer to a question.
type QuizAnswer struct {
	UserID        int64
	WordID        int64
	SurfaceForm   string
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
	AnsweredAt    time.Time

	Reconciliation *ReconciliationResult
}

// NewQuizAnswer creates a quiz answer for a user and question.
func NewQuizAnswer(userID int64, q *Question) *QuizAnswer {
	return &QuizAnswer{
		UserID:        userID,
		WordID:        q.Word.ID,
		SurfaceForm:   q.Word.SurfaceForm,
		CorrectAnswer: q.CorrectAnswer,
		AnsweredAt:    time.Now(),
	}
}

// CheckAnswer sets the user's answer and compares it with the correct one
// after trimming surrounding whitespace.
func (qa *QuizAnswer) CheckAnswer(userAnswer string) {
	qa.UserAnswer = userAnswer
	qa.IsCorrect = strings.TrimSpace(userAnswer) == strings.TrimSpace(qa.CorrectAnswer)
}

// Status maps the answer to the outcome recorded in progress.
func (qa *QuizAnswer) Status() Status {
	if qa.IsCorrect {
		return StatusKnown
	}
	return StatusWrong
}
