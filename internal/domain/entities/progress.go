package entities

import (
	"fmt"
	"time"
)

// Status is the learner outcome recorded for a word entry.
type Status string

const (
	StatusKnown Status = "known" // the learner passed the word
	StatusWrong Status = "wrong" // the learner failed the word
)

// ParseStatus converts a raw value into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// Valid reports whether s is one of the two recognized values.
func (s Status) Valid() bool {
	return s == StatusKnown || s == StatusWrong
}

// ProgressRecord is the learning status of one user for one word entry.
// It is unique per (UserID, WordID); the last write wins.
type ProgressRecord struct {
	UserID    int64
	WordID    int64
	Status    Status
	UpdatedAt time.Time
}

// NewProgressRecord creates a record stamped with now.
func NewProgressRecord(userID, wordID int64, status Status, now time.Time) *ProgressRecord {
	return &ProgressRecord{
		UserID:    userID,
		WordID:    wordID,
		Status:    status,
		UpdatedAt: now,
	}
}

// ReconciliationResult describes one propagated outcome.
type ReconciliationResult struct {
	SurfaceForm string
	Status      Status
	Upserted    int     // number of progress records written
	WordIDs     []int64 // entries that matched the surface form
}

// ProgressSummary counts a user's progress records by status.
type ProgressSummary struct {
	KnownCount int
	WrongCount int
}

// Total returns the number of words the user has any status for.
func (s ProgressSummary) Total() int {
	return s.KnownCount + s.WrongCount
}

// KnownPercentage returns the share of known words among all tracked words.
func (s ProgressSummary) KnownPercentage() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(s.KnownCount) / float64(total) * 100
}

// SummarizeProgress partitions records by status.
func SummarizeProgress(records []*ProgressRecord) ProgressSummary {
	var summary ProgressSummary
	for _, r := range records {
		switch r.Status {
		case StatusKnown:
			summary.KnownCount++
		case StatusWrong:
			summary.WrongCount++
		}
	}
	return summary
}
