package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

// DefaultReminderSchedule runs the review digest once a day at 09:00 UTC.
const DefaultReminderSchedule = "0 9 * * *"

const (
	reminderBatchSize     = 100
	reminderMaxConcurrent = 10
)

// ReminderService sends daily "words to review" digests in batches.
type ReminderService struct {
	digests  ReviewDigestRepository
	notifier ReminderNotifier
	schedule string
	location *time.Location
	logger   *zap.Logger
}

// NewReminderService creates a new reminder service. The schedule is read
// in location; nil means UTC.
func NewReminderService(
	digests ReviewDigestRepository, schedule string, location *time.Location, logger *zap.Logger,
) *ReminderService {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	if location == nil {
		location = time.UTC
	}
	return &ReminderService{
		digests:  digests,
		schedule: schedule,
		location: location,
		logger:   logger,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the cron scheduler until ctx is done.
func (s *ReminderService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.location))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Info("cron triggered: sending review digests")
		if _, err := s.SendDigests(ctx); err != nil {
			s.logger.Error("failed to send review digests", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("reminder service started",
		zap.String("schedule", s.schedule),
		zap.String("location", s.location.String()),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")
	return nil
}

// SendDigests walks all users with wrong words and notifies each of them.
// It returns the number of digests sent.
func (s *ReminderService) SendDigests(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, errors.New("notifier not initialized")
	}

	offset := 0
	totalSent := 0
	now := time.Now().UTC()

	for {
		digests, err := s.digests.ListReviewDigests(ctx, reminderBatchSize, offset)
		if err != nil {
			return totalSent, fmt.Errorf("list review digests: %w", err)
		}

		if len(digests) == 0 {
			break
		}

		totalSent += s.processBatch(digests, now)

		if len(digests) < reminderBatchSize {
			break
		}
		offset += reminderBatchSize
	}

	s.logger.Info("review digests processed", zap.Int("total_sent", totalSent))
	return totalSent, nil
}

// processBatch sends a batch of digests concurrently.
func (s *ReminderService) processBatch(digests []*entities.ReviewDigest, now time.Time) int {
	sem := make(chan struct{}, reminderMaxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0

	for _, d := range digests {
		wg.Add(1)
		sem <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := s.notifier.SendReminder(d.ChatID, entities.NewReminderPayload(d, now)); err != nil {
				s.logger.Error("failed to send review digest",
					zap.Int64("user_id", d.UserID),
					zap.Error(err))
				return
			}

			mu.Lock()
			sent++
			mu.Unlock()
		}()
	}

	wg.Wait()
	return sent
}
