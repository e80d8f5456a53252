package repository

import (
	"context"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/topik-vocab-bot/internal/infra/postgres"
)

// MembershipRepository stores manually granted memberships.
type MembershipRepository struct {
	db postgres.DBTX
}

func NewMembershipRepository(db postgres.DBTX) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Upsert activates or replaces the membership of m.UserID.
func (r *MembershipRepository) Upsert(ctx context.Context, m *entities.Membership) error {
	query := `
		INSERT INTO memberships (user_id, is_active, plan, granted_by, granted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			is_active = EXCLUDED.is_active,
			plan = EXCLUDED.plan,
			granted_by = EXCLUDED.granted_by,
			granted_at = EXCLUDED.granted_at
	`

	_, err := r.db.Exec(ctx, query, m.UserID, m.IsActive, m.Plan, m.GrantedBy, m.GrantedAt)
	if err != nil {
		return postgres.MapError("upsert membership", err)
	}
	return nil
}

// Get returns the membership of a user or domain.ErrNotFound.
func (r *MembershipRepository) Get(ctx context.Context, userID int64) (*entities.Membership, error) {
	query := `
		SELECT user_id, is_active, plan, granted_by, granted_at
		FROM memberships
		WHERE user_id = $1
	`

	var m entities.Membership
	err := r.db.QueryRow(ctx, query, userID).Scan(&m.UserID, &m.IsActive, &m.Plan, &m.GrantedBy, &m.GrantedAt)
	if err != nil {
		return nil, postgres.MapError("get membership", err)
	}
	return &m, nil
}
