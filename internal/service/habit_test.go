package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
)

type fakeHabitRepo struct {
	habits       map[string]*model.Habit
	checkins     []*model.HabitCheckin
	streakHabits []*model.HabitWithCheckin
	resets       []string
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{habits: make(map[string]*model.Habit)}
}

func (f *fakeHabitRepo) Create(habit *model.Habit) error {
	f.habits[habit.ID] = habit
	return nil
}

func (f *fakeHabitRepo) ByID(userID, habitID string) (*model.Habit, error) {
	habit, ok := f.habits[habitID]
	if !ok || habit.UserID != userID {
		return nil, repository.ErrHabitNotFound
	}
	return habit, nil
}

func (f *fakeHabitRepo) Habits(userID string, includeArchived bool) ([]*model.Habit, error) {
	var out []*model.Habit
	for _, h := range f.habits {
		if h.UserID != userID {
			continue
		}
		if h.Archived && !includeArchived {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHabitRepo) Update(habit *model.Habit) error {
	f.habits[habit.ID] = habit
	return nil
}

func (f *fakeHabitRepo) Delete(userID, habitID string) error {
	delete(f.habits, habitID)
	return nil
}

func (f *fakeHabitRepo) SetArchived(userID, habitID string, archived bool) error {
	habit, ok := f.habits[habitID]
	if !ok {
		return repository.ErrHabitNotFound
	}
	habit.Archived = archived
	return nil
}

func (f *fakeHabitRepo) CreateCheckin(checkin *model.HabitCheckin) error {
	f.checkins = append(f.checkins, checkin)
	return nil
}

func (f *fakeHabitRepo) CheckinSince(habitID string, since time.Time) (bool, error) {
	for _, c := range f.checkins {
		if c.HabitID == habitID && !c.CheckedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHabitRepo) CheckinBetween(habitID string, from, to time.Time) (bool, error) {
	for _, c := range f.checkins {
		if c.HabitID == habitID && !c.CheckedAt.Before(from) && c.CheckedAt.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHabitRepo) ResetStreak(habitID string) error {
	f.resets = append(f.resets, habitID)
	return nil
}

func (f *fakeHabitRepo) ActiveStreakHabits() ([]*model.HabitWithCheckin, error) {
	return f.streakHabits, nil
}

func newTestHabitService(repo *fakeHabitRepo) *HabitService {
	household := newFakeHouseholdRepo()
	gamification := NewGamificationService(nil, nil, household)
	return NewHabitService(repo, gamification, NewNotifyService("", ""))
}

func TestCheckinWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)

	start, end := checkinWindow(now)

	if want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("got window start %v, want %v", start, want)
	}
	if want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("got window end %v, want %v", end, want)
	}
}

func TestStreakKept(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	twoDaysAgo := time.Date(2026, 3, 8, 23, 59, 0, 0, time.UTC)
	windowStart := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		lastCheckin *time.Time
		checkins    []time.Time
		want        bool
	}{
		{"no check-in ever", nil, nil, false},
		{"checked in yesterday", &yesterday, nil, true},
		{"checked in two days ago", &twoDaysAgo, nil, false},
		{"exactly at window start", &windowStart, nil, true},
		// a check-in made today must not mask a missed prior day
		{"today only", &today, []time.Time{today}, false},
		{"today and yesterday", &today, []time.Time{today, yesterday}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeHabitRepo()
			for _, at := range tt.checkins {
				repo.checkins = append(repo.checkins, &model.HabitCheckin{HabitID: "h1", CheckedAt: at})
			}
			svc := newTestHabitService(repo)

			habit := &model.HabitWithCheckin{
				Habit:       model.Habit{ID: "h1"},
				LastCheckin: tt.lastCheckin,
			}
			start, end := checkinWindow(now)
			got, err := svc.streakKept(habit, start, end)
			if err != nil {
				t.Fatalf("streakKept: %v", err)
			}
			if got != tt.want {
				t.Errorf("streakKept(last=%v) = %v, want %v", tt.lastCheckin, got, tt.want)
			}
		})
	}
}

func TestCheckInOncePerDay(t *testing.T) {
	repo := newFakeHabitRepo()
	repo.habits["h1"] = &model.Habit{ID: "h1", UserID: "u1", Name: "Stretch"}
	svc := newTestHabitService(repo)

	habit, err := svc.CheckIn("u1", "h1")
	if err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	if habit.CurrentStreak != 1 {
		t.Errorf("got streak %d, want 1", habit.CurrentStreak)
	}

	_, err = svc.CheckIn("u1", "h1")
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("got %v, want ErrAlreadyCheckedIn", err)
	}

	if len(repo.checkins) != 1 {
		t.Errorf("got %d check-in rows, want 1", len(repo.checkins))
	}
}

func TestCheckInArchivedHabit(t *testing.T) {
	repo := newFakeHabitRepo()
	repo.habits["h1"] = &model.Habit{ID: "h1", UserID: "u1", Archived: true}
	svc := newTestHabitService(repo)

	_, err := svc.CheckIn("u1", "h1")
	if !errors.Is(err, ErrHabitArchived) {
		t.Fatalf("got %v, want ErrHabitArchived", err)
	}
}

func TestCheckInOtherUsersHabit(t *testing.T) {
	repo := newFakeHabitRepo()
	repo.habits["h1"] = &model.Habit{ID: "h1", UserID: "u1"}
	svc := newTestHabitService(repo)

	_, err := svc.CheckIn("u2", "h1")
	if !errors.Is(err, repository.ErrHabitNotFound) {
		t.Fatalf("got %v, want ErrHabitNotFound", err)
	}
}

func TestStreakCheck(t *testing.T) {
	now := time.Now().UTC()
	yesterday := now.Truncate(24 * time.Hour).Add(-12 * time.Hour)
	today := now.Truncate(24 * time.Hour).Add(time.Hour)
	stale := now.Truncate(24 * time.Hour).Add(-72 * time.Hour)

	repo := newFakeHabitRepo()
	repo.streakHabits = []*model.HabitWithCheckin{
		{Habit: model.Habit{ID: "kept", UserID: "u1", Name: "Run", CurrentStreak: 4}, LastCheckin: &yesterday},
		{Habit: model.Habit{ID: "broken", UserID: "u1", Name: "Read", CurrentStreak: 9}, LastCheckin: &stale},
		{Habit: model.Habit{ID: "never", UserID: "u2", Name: "Meditate", CurrentStreak: 2}, LastCheckin: nil},
		// checked in early today but skipped yesterday entirely
		{Habit: model.Habit{ID: "masked", UserID: "u2", Name: "Journal", CurrentStreak: 6}, LastCheckin: &today},
		// checked in both yesterday and today
		{Habit: model.Habit{ID: "kept-today", UserID: "u1", Name: "Walk", CurrentStreak: 3}, LastCheckin: &today},
	}
	repo.checkins = []*model.HabitCheckin{
		{HabitID: "masked", CheckedAt: today},
		{HabitID: "kept-today", CheckedAt: today},
		{HabitID: "kept-today", CheckedAt: yesterday},
	}
	svc := newTestHabitService(repo)

	report, err := svc.StreakCheck(context.Background())
	if err != nil {
		t.Fatalf("StreakCheck: %v", err)
	}

	if report.Checked != 5 {
		t.Errorf("got checked %d, want 5", report.Checked)
	}
	if report.Reset != 3 {
		t.Errorf("got reset %d, want 3", report.Reset)
	}
	if len(repo.resets) != 3 {
		t.Fatalf("got %d resets, want 3: %v", len(repo.resets), repo.resets)
	}
	for _, id := range repo.resets {
		if id == "kept" || id == "kept-today" {
			t.Errorf("habit %q with a prior-day check-in must not be reset", id)
		}
	}
}
