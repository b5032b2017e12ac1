package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/google/uuid"
)

var ErrInvalidProgress = errors.New("progress must be between 0 and 100")

type GoalService struct {
	repo         repository.GoalRepository
	gamification *GamificationService
}

func NewGoalService(repo repository.GoalRepository, gamification *GamificationService) *GoalService {
	return &GoalService{
		repo:         repo,
		gamification: gamification,
	}
}

func (s *GoalService) Create(userID, title, description string, targetDate *time.Time, categoryID, timeframeID *string) (*model.Goal, error) {
	now := time.Now()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      model.GoalStatusActive,
		Progress:    0,
		TargetDate:  targetDate,
		CategoryID:  categoryID,
		TimeframeID: timeframeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(userID, goalID)
}

func (s *GoalService) Goals(userID string) ([]*model.Goal, error) {
	return s.repo.Goals(userID)
}

func (s *GoalService) Update(userID, goalID, title, description, status string, targetDate *time.Time, categoryID, timeframeID *string) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.Title = title
	goal.Description = description
	goal.Status = status
	goal.TargetDate = targetDate
	goal.CategoryID = categoryID
	goal.TimeframeID = timeframeID
	goal.UpdatedAt = time.Now()

	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// UpdateProgress sets progress; reaching 100 completes the goal and pays out
// the party-goal bonus when the goal carries one.
func (s *GoalService) UpdateProgress(userID, goalID string, progress int) (*model.Goal, error) {
	if progress < 0 || progress > 100 {
		return nil, ErrInvalidProgress
	}

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	wasCompleted := goal.Status == model.GoalStatusCompleted

	goal.Progress = progress
	if progress == 100 {
		goal.Status = model.GoalStatusCompleted
	} else if goal.Status == model.GoalStatusCompleted {
		goal.Status = model.GoalStatusActive
	}
	goal.UpdatedAt = time.Now()

	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	if !wasCompleted && goal.Status == model.GoalStatusCompleted {
		s.gamification.AwardGoalCompletion(userID, goalID)
	}

	return goal, nil
}

func (s *GoalService) Delete(userID, goalID string) error {
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return err
	}

	return s.repo.Delete(userID, goalID)
}
