package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain"
	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/topik-vocab-bot/internal/infra/postgres"
)

// UserRepository provides access to user data in the database.
type UserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new UserRepository with the provided database pool.
func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Save inserts a new user or refreshes the profile of an existing one.
// It reports whether the user was created.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (bool, error) {
	query := `
		INSERT INTO users (id, chat_id, username, first_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			chat_id = EXCLUDED.chat_id,
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name
		RETURNING (xmax = 0) AS created
	`

	var created bool
	err := r.db.QueryRow(ctx, query,
		user.ID, user.ChatID, user.Username, user.FirstName, user.CreatedAt,
	).Scan(&created)
	if err != nil {
		return false, postgres.MapError("save user", err)
	}

	return created, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	query := `
		SELECT id, chat_id, username, first_name, created_at
		FROM users
		WHERE id = $1
	`

	return r.getOne(ctx, "get user by id", query, userID)
}

// GetByUsername retrieves a user by Telegram username, case-insensitively.
// A leading "@" is ignored. Users without a username never match.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	username = strings.TrimPrefix(username, "@")
	if username == "" {
		return nil, fmt.Errorf("get user by username: %w", domain.ErrNotFound)
	}

	query := `
		SELECT id, chat_id, username, first_name, created_at
		FROM users
		WHERE lower(username) = lower($1) AND username <> ''
	`

	return r.getOne(ctx, "get user by username", query, username)
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, arg any) (*entities.User, error) {
	var user entities.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.ChatID,
		&user.Username,
		&user.FirstName,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(fmt.Sprintf("%s %v", op, arg), err)
	}

	return &user, nil
}
