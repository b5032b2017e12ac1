package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrHabitArchived    = errors.New("habit is archived")
	ErrAlreadyCheckedIn = errors.New("habit already checked in today")
)

// XPPerCheckin is awarded to the member on every successful habit check-in.
const XPPerCheckin = 10

type HabitService struct {
	repo         repository.HabitRepository
	gamification *GamificationService
	notify       *NotifyService
}

func NewHabitService(repo repository.HabitRepository, gamification *GamificationService, notify *NotifyService) *HabitService {
	return &HabitService{
		repo:         repo,
		gamification: gamification,
		notify:       notify,
	}
}

func (s *HabitService) Create(userID, name string, frequencyID, timePreferenceID *string) (*model.Habit, error) {
	now := time.Now()
	habit := &model.Habit{
		ID:               uuid.New().String(),
		UserID:           userID,
		Name:             name,
		FrequencyID:      frequencyID,
		TimePreferenceID: timePreferenceID,
		CurrentStreak:    0,
		Archived:         false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := s.repo.Create(habit)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return habit, nil
}

func (s *HabitService) ByID(userID, habitID string) (*model.Habit, error) {
	return s.repo.ByID(userID, habitID)
}

func (s *HabitService) Habits(userID string, includeArchived bool) ([]*model.Habit, error) {
	return s.repo.Habits(userID, includeArchived)
}

func (s *HabitService) Update(userID, habitID, name string, frequencyID, timePreferenceID *string) (*model.Habit, error) {
	habit, err := s.repo.ByID(userID, habitID)
	if err != nil {
		return nil, err
	}

	habit.Name = name
	habit.FrequencyID = frequencyID
	habit.TimePreferenceID = timePreferenceID
	habit.UpdatedAt = time.Now()

	err = s.repo.Update(habit)
	if err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) SetArchived(userID, habitID string, archived bool) error {
	return s.repo.SetArchived(userID, habitID, archived)
}

func (s *HabitService) Delete(userID, habitID string) error {
	return s.repo.Delete(userID, habitID)
}

// CheckIn records today's check-in and advances the streak. A habit can only
// be checked in once per calendar day (UTC).
func (s *HabitService) CheckIn(userID, habitID string) (*model.Habit, error) {
	habit, err := s.repo.ByID(userID, habitID)
	if err != nil {
		return nil, err
	}

	if habit.Archived {
		return nil, ErrHabitArchived
	}

	now := time.Now().UTC()
	startOfDay := now.Truncate(24 * time.Hour)

	exists, err := s.repo.CheckinSince(habitID, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing check-in: %w", err)
	}
	if exists {
		return nil, ErrAlreadyCheckedIn
	}

	checkin := &model.HabitCheckin{
		ID:        uuid.New().String(),
		HabitID:   habitID,
		UserID:    userID,
		CheckedAt: now,
	}

	err = s.repo.CreateCheckin(checkin)
	if err != nil {
		return nil, fmt.Errorf("failed to record check-in: %w", err)
	}

	habit.CurrentStreak++
	habit.UpdatedAt = now
	err = s.repo.Update(habit)
	if err != nil {
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}

	s.gamification.AwardXP(userID, XPPerCheckin)

	return habit, nil
}

// StreakReport summarizes one streak-check run.
type StreakReport struct {
	Checked int      `json:"checked"`
	AtRisk  []string `json:"at_risk"`
	Reset   int      `json:"reset"`
	RanAt   string   `json:"ran_at"`
}

// StreakCheck finds daily habits whose streak was broken (no check-in during
// the previous day's window), resets their streaks, and posts a summary to
// the messaging webhook. It always returns a report; per-habit reset errors
// are logged and skipped.
func (s *HabitService) StreakCheck(ctx context.Context) (*StreakReport, error) {
	habits, err := s.repo.ActiveStreakHabits()
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}

	now := time.Now().UTC()
	windowStart, windowEnd := checkinWindow(now)
	report := &StreakReport{
		Checked: len(habits),
		AtRisk:  []string{},
		RanAt:   now.Format(time.RFC3339),
	}

	for _, habit := range habits {
		kept, err := s.streakKept(habit, windowStart, windowEnd)
		if err != nil {
			slog.Error("failed to inspect check-ins", "error", err, "habit_id", habit.ID)
			continue
		}
		if kept {
			continue
		}

		report.AtRisk = append(report.AtRisk, habit.Name)

		err = s.repo.ResetStreak(habit.ID)
		if err != nil {
			slog.Error("failed to reset streak", "error", err, "habit_id", habit.ID)
			continue
		}
		report.Reset++
	}

	if len(report.AtRisk) > 0 {
		msg := fmt.Sprintf("Streak check: %d habit(s) missed yesterday's check-in and were reset.", report.Reset)
		if err := s.notify.Send(ctx, msg); err != nil {
			slog.Warn("failed to post streak summary", "error", err)
		}
	}

	return report, nil
}

// checkinWindow returns the prior day's window
// [startOfDay(now)-24h, startOfDay(now)) in UTC.
func checkinWindow(now time.Time) (start, end time.Time) {
	end = now.UTC().Truncate(24 * time.Hour)
	return end.Add(-24 * time.Hour), end
}

// streakKept reports whether the habit has a check-in inside the window. The
// joined latest check-in settles most habits without another query; a
// check-in made after the window closed says nothing about the window
// itself, so those habits fall through to a range query.
func (s *HabitService) streakKept(habit *model.HabitWithCheckin, windowStart, windowEnd time.Time) (bool, error) {
	last := habit.LastCheckin
	if last == nil || last.Before(windowStart) {
		return false, nil
	}
	if last.Before(windowEnd) {
		return true, nil
	}
	return s.repo.CheckinBetween(habit.ID, windowStart, windowEnd)
}
