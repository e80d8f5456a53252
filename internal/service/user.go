package service

import (
	"context"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain"
	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository}
}

// EnsureUser registers the Telegram user or refreshes their profile.
// It reports whether the user is new.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64, username, firstName string) (bool, error) {
	created, err := s.repository.Save(ctx, entities.NewUser(userID, chatID, username, firstName))
	if err != nil {
		return false, domain.NewStoreError("save user", err)
	}
	return created, nil
}
