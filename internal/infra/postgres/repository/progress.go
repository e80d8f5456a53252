package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/topik-vocab-bot/internal/infra/postgres"
)

// ProgressRepository provides access to user progress data in the database.
type ProgressRepository struct {
	db postgres.DBTX
}

// NewProgressRepository creates a new ProgressRepository with the provided database pool.
func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Upsert creates or overwrites the record for (user, word). Concurrent writers
// to the same key are serialized by the row lock; the last one wins.
func (r *ProgressRepository) Upsert(ctx context.Context, p *entities.ProgressRecord) error {
	query := `
		INSERT INTO user_progress (user_id, word_id, status, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, word_id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query, p.UserID, p.WordID, string(p.Status), p.UpdatedAt)
	if err != nil {
		return postgres.MapError("upsert progress", err)
	}

	return nil
}

// ListByUser returns every progress record of a user.
func (r *ProgressRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.ProgressRecord, error) {
	query := `
		SELECT user_id, word_id, status, updated_at
		FROM user_progress
		WHERE user_id = $1
		ORDER BY word_id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, postgres.MapError("list progress", err)
	}
	defer rows.Close()

	records := make([]*entities.ProgressRecord, 0)
	for rows.Next() {
		var p entities.ProgressRecord
		var status string
		if err := rows.Scan(&p.UserID, &p.WordID, &status, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		p.Status = entities.Status(status)
		records = append(records, &p)
	}

	return records, rows.Err()
}

// GetStatuses returns the statuses a user has for the given words. Words
// without a record are absent from the map.
func (r *ProgressRepository) GetStatuses(ctx context.Context, userID int64, wordIDs []int64) (map[int64]entities.Status, error) {
	res := make(map[int64]entities.Status, len(wordIDs))
	if len(wordIDs) == 0 {
		return res, nil
	}

	query, args, err := psql.Select("word_id", "status").
		From("user_progress").
		Where(sq.Eq{"user_id": userID}).
		Where("word_id = ANY(?)", wordIDs).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get statuses: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError("get statuses", err)
	}
	defer rows.Close()

	for rows.Next() {
		var wordID int64
		var status string
		if err := rows.Scan(&wordID, &status); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		res[wordID] = entities.Status(status)
	}

	return res, rows.Err()
}

// ListReviewDigests returns a page of users that have at least one word
// marked wrong, with their chat ids and counts.
func (r *ProgressRepository) ListReviewDigests(ctx context.Context, limit, offset int) ([]*entities.ReviewDigest, error) {
	query := `
		SELECT u.id, u.chat_id,
		       COUNT(*) FILTER (WHERE p.status = 'wrong') AS wrong_count,
		       COUNT(*) FILTER (WHERE p.status = 'known') AS known_count
		FROM users u
		JOIN user_progress p ON p.user_id = u.id
		GROUP BY u.id, u.chat_id
		HAVING COUNT(*) FILTER (WHERE p.status = 'wrong') > 0
		ORDER BY u.id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, postgres.MapError("list review digests", err)
	}
	defer rows.Close()

	digests := make([]*entities.ReviewDigest, 0, limit)
	for rows.Next() {
		var d entities.ReviewDigest
		if err := rows.Scan(&d.UserID, &d.ChatID, &d.WrongCount, &d.KnownCount); err != nil {
			return nil, fmt.Errorf("scan review digest: %w", err)
		}
		digests = append(digests, &d)
	}

	return digests, rows.Err()
}
