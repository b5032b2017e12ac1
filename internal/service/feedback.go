package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/google/uuid"
)

// PipelinePageSize caps how many queued items the pipeline reader returns.
const PipelinePageSize = 5

type FeedbackService struct {
	repo   repository.FeedbackRepository
	notify *NotifyService
}

func NewFeedbackService(repo repository.FeedbackRepository, notify *NotifyService) *FeedbackService {
	return &FeedbackService{
		repo:   repo,
		notify: notify,
	}
}

func (s *FeedbackService) Create(userID, feedbackType, body string, priority *int, tags string) (*model.FeedbackItem, error) {
	now := time.Now()
	item := &model.FeedbackItem{
		ID:             uuid.New().String(),
		UserID:         userID,
		Type:           feedbackType,
		Body:           body,
		Priority:       priority,
		Tags:           tags,
		Status:         model.FeedbackStatusOpen,
		PipelineStatus: model.PipelineStatusNone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.repo.Create(item)
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	return item, nil
}

func (s *FeedbackService) ByID(id string) (*model.FeedbackItem, error) {
	return s.repo.ByID(id)
}

func (s *FeedbackService) List() ([]*model.FeedbackItem, error) {
	return s.repo.List()
}

// SetStatus moves an item through the pipeline. Entering the queued state is
// announced on the messaging webhook.
func (s *FeedbackService) SetStatus(ctx context.Context, id, status, pipelineStatus string) (*model.FeedbackItem, error) {
	item, err := s.repo.ByID(id)
	if err != nil {
		return nil, err
	}

	err = s.repo.UpdateStatus(id, status, pipelineStatus)
	if err != nil {
		return nil, err
	}

	if pipelineStatus == model.PipelineStatusQueued && item.PipelineStatus != model.PipelineStatusQueued {
		msg := fmt.Sprintf("Feedback queued for implementation: %.80s", item.Body)
		if err := s.notify.Send(ctx, msg); err != nil {
			slog.Warn("failed to announce queued feedback", "error", err, "feedback_id", id)
		}
	}

	return s.repo.ByID(id)
}

// ToggleVote flips the caller's vote on an item and returns the new state
// with the item's total vote count. The delete-then-conditional-insert
// sequence stays correct when two toggles race: the unique constraint lets
// at most one insert through.
func (s *FeedbackService) ToggleVote(feedbackID, userID string) (bool, int, error) {
	_, err := s.repo.ByID(feedbackID)
	if err != nil {
		return false, 0, err
	}

	deleted, err := s.repo.DeleteVote(feedbackID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to remove vote: %w", err)
	}

	voted := !deleted
	if voted {
		vote := &model.FeedbackVote{
			ID:         uuid.New().String(),
			FeedbackID: feedbackID,
			UserID:     userID,
			CreatedAt:  time.Now(),
		}

		// A lost race against a concurrent toggle still leaves a vote row
		// in place, so the caller is voted either way.
		_, err = s.repo.InsertVote(vote)
		if err != nil {
			return false, 0, fmt.Errorf("failed to record vote: %w", err)
		}
	}

	votes, err := s.repo.VoteCount(feedbackID)
	if err != nil {
		return voted, 0, fmt.Errorf("failed to count votes: %w", err)
	}

	return voted, votes, nil
}

// Queue returns up to PipelinePageSize planned+queued items, priority
// ascending with nil priorities last, ties broken by oldest creation first.
func (s *FeedbackService) Queue() ([]*model.FeedbackItem, error) {
	items, err := s.repo.Queued()
	if err != nil {
		return nil, err
	}

	sortQueue(items)

	if len(items) > PipelinePageSize {
		items = items[:PipelinePageSize]
	}

	return items, nil
}

// sortQueue orders by priority ascending, nil priorities after all set ones,
// then by creation time ascending.
func sortQueue(items []*model.FeedbackItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.Priority == nil && b.Priority == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.Priority == nil:
			return false
		case b.Priority == nil:
			return true
		case *a.Priority != *b.Priority:
			return *a.Priority < *b.Priority
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}
