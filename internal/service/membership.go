package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain"
	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

// MembershipService lets admins grant manual memberships.
type MembershipService struct {
	users       UserRepository
	memberships MembershipRepository
	admins      map[int64]struct{}
}

func NewMembershipService(users UserRepository, memberships MembershipRepository, adminIDs []int64) *MembershipService {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &MembershipService{users: users, memberships: memberships, admins: admins}
}

// IsAdmin reports whether userID may grant memberships.
func (s *MembershipService) IsAdmin(userID int64) bool {
	_, ok := s.admins[userID]
	return ok
}

// Grant activates a manual membership for target, given as "@username",
// "username" or a numeric Telegram id.
func (s *MembershipService) Grant(ctx context.Context, adminID int64, target string) (*entities.User, error) {
	if !s.IsAdmin(adminID) {
		return nil, domain.ErrForbidden
	}

	target = strings.TrimSpace(target)
	if strings.TrimSpace(strings.TrimPrefix(target, "@")) == "" {
		return nil, domain.NewValidationError("user", "must not be empty")
	}

	user, err := s.resolve(ctx, target)
	if err != nil {
		return nil, err
	}

	m := entities.NewManualMembership(user.ID, adminID, time.Now().UTC())
	if err := s.memberships.Upsert(ctx, m); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", target, domain.ErrNotFound)
		}
		return nil, domain.NewStoreError("upsert membership", err)
	}

	return user, nil
}

func (s *MembershipService) resolve(ctx context.Context, target string) (*entities.User, error) {
	var (
		user *entities.User
		err  error
	)
	if id, convErr := strconv.ParseInt(target, 10, 64); convErr == nil {
		user, err = s.users.GetByID(ctx, id)
	} else {
		user, err = s.users.GetByUsername(ctx, target)
	}

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("user %s: %w", target, domain.ErrNotFound)
	default:
		return nil, domain.NewStoreError("get user", err)
	}
}

// IsActive reports whether the user holds an active membership.
func (s *MembershipService) IsActive(ctx context.Context, userID int64) (bool, error) {
	m, err := s.memberships.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, domain.NewStoreError("get membership", err)
	}
	return m.IsActive, nil
}
