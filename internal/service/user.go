package service

import (
	"context"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
)

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.repo.ByID(id)
}

// Directory lists all registered users as summaries, for member pickers.
func (s *UserService) Directory(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, *u.Summary())
	}
	return summaries, nil
}
