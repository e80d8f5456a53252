package service

import (
	"context"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

// CatalogRepository is the read side of the word catalog.
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]entities.Category, error)
	ListSubcategories(ctx context.Context, categoryID int64) ([]entities.Subcategory, error)
	ListWords(ctx context.Context, categoryID, subcategoryID int64, limit int) ([]entities.WordEntry, error)
	SampleWords(ctx context.Context, categoryID, subcategoryID int64, n int) ([]entities.WordEntry, error)
	FindWordsBySurfaceForm(ctx context.Context, surfaceForm string) ([]entities.WordEntry, error)
	GetWord(ctx context.Context, id int64) (*entities.WordEntry, error)
}

// ProgressRepository stores per-user, per-word statuses.
type ProgressRepository interface {
	Upsert(ctx context.Context, p *entities.ProgressRecord) error
	ListByUser(ctx context.Context, userID int64) ([]*entities.ProgressRecord, error)
	GetStatuses(ctx context.Context, userID int64, wordIDs []int64) (map[int64]entities.Status, error)
}

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
}

type MembershipRepository interface {
	Upsert(ctx context.Context, m *entities.Membership) error
	Get(ctx context.Context, userID int64) (*entities.Membership, error)
}

// ReviewDigestRepository pages through users that have words to review.
type ReviewDigestRepository interface {
	ListReviewDigests(ctx context.Context, limit, offset int) ([]*entities.ReviewDigest, error)
}

// ReminderNotifier sends reminder notifications to users.
type ReminderNotifier interface {
	SendReminder(chatID int64, payload entities.ReminderPayload) error
}
