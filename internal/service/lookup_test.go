package service

import (
	"context"
	"errors"
	"testing"

	"github.com/desperadoclub/desperado/internal/model"
)

type fakeLookupRepo struct {
	categories      []*model.Category
	timeframes      []*model.Timeframe
	frequencies     []*model.Frequency
	timePreferences []*model.TimePreference

	categoriesErr error
}

func (f *fakeLookupRepo) Categories(ctx context.Context) ([]*model.Category, error) {
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return f.categories, nil
}

func (f *fakeLookupRepo) Timeframes(ctx context.Context) ([]*model.Timeframe, error) {
	return f.timeframes, nil
}

func (f *fakeLookupRepo) Frequencies(ctx context.Context) ([]*model.Frequency, error) {
	return f.frequencies, nil
}

func (f *fakeLookupRepo) TimePreferences(ctx context.Context) ([]*model.TimePreference, error) {
	return f.timePreferences, nil
}

type fakeUserRepo struct {
	users []*model.User
}

func (f *fakeUserRepo) Create(user *model.User) error            { return nil }
func (f *fakeUserRepo) ByID(id string) (*model.User, error)      { return nil, nil }
func (f *fakeUserRepo) ByEmail(email string) (*model.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(user *model.User) error            { return nil }
func (f *fakeUserRepo) Delete(id string) error                   { return nil }

func (f *fakeUserRepo) All(ctx context.Context) ([]*model.User, error) {
	return f.users, nil
}

func strPtr(s string) *string { return &s }

func testLookupSet() *LookupSet {
	return &LookupSet{
		Categories: map[string]*model.Category{
			"cat1": {ID: "cat1", Name: "Health"},
		},
		Timeframes: map[string]*model.Timeframe{
			"tf1": {ID: "tf1", Name: "This Month"},
		},
		Frequencies: map[string]*model.Frequency{
			"freq1": {ID: "freq1", Name: "daily"},
		},
		TimePreferences: map[string]*model.TimePreference{
			"tp1": {ID: "tp1", Name: "Morning"},
		},
		Users: map[string]*model.User{
			"u1": {ID: "u1", Name: "Dana", Email: "dana@example.com"},
		},
	}
}

func TestEnrichGoal(t *testing.T) {
	set := testLookupSet()

	tests := []struct {
		name          string
		goal          *model.Goal
		wantCategory  bool
		wantTimeframe bool
		wantOwner     bool
	}{
		{
			name:          "all references resolve",
			goal:          &model.Goal{ID: "g1", UserID: "u1", CategoryID: strPtr("cat1"), TimeframeID: strPtr("tf1")},
			wantCategory:  true,
			wantTimeframe: true,
			wantOwner:     true,
		},
		{
			name:      "nil references stay nil",
			goal:      &model.Goal{ID: "g2", UserID: "u1"},
			wantOwner: true,
		},
		{
			name: "stale references resolve to nil without error",
			goal: &model.Goal{ID: "g3", UserID: "ghost", CategoryID: strPtr("deleted"), TimeframeID: strPtr("deleted")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enriched := EnrichGoal(tt.goal, set)

			if (enriched.Category != nil) != tt.wantCategory {
				t.Errorf("category resolved = %v, want %v", enriched.Category != nil, tt.wantCategory)
			}
			if (enriched.Timeframe != nil) != tt.wantTimeframe {
				t.Errorf("timeframe resolved = %v, want %v", enriched.Timeframe != nil, tt.wantTimeframe)
			}
			if (enriched.Owner != nil) != tt.wantOwner {
				t.Errorf("owner resolved = %v, want %v", enriched.Owner != nil, tt.wantOwner)
			}

			// Raw id fields must survive enrichment untouched
			if enriched.ID != tt.goal.ID || enriched.UserID != tt.goal.UserID {
				t.Error("enrichment must not mutate base fields")
			}
		})
	}
}

func TestEnrichGoalsPreservesOrder(t *testing.T) {
	set := testLookupSet()
	goals := []*model.Goal{
		{ID: "g3", UserID: "u1"},
		{ID: "g1", UserID: "u1", CategoryID: strPtr("cat1")},
		{ID: "g2", UserID: "ghost"},
	}

	enriched := EnrichGoals(goals, set)
	if len(enriched) != len(goals) {
		t.Fatalf("got %d enriched, want %d", len(enriched), len(goals))
	}
	for i := range goals {
		if enriched[i].ID != goals[i].ID {
			t.Errorf("position %d: got %s, want %s", i, enriched[i].ID, goals[i].ID)
		}
	}
}

func TestEnrichHabit(t *testing.T) {
	set := testLookupSet()

	habit := &model.Habit{ID: "h1", UserID: "u1", FrequencyID: strPtr("freq1"), TimePreferenceID: strPtr("gone")}
	enriched := EnrichHabit(habit, set)

	if enriched.Frequency == nil || enriched.Frequency.Name != "daily" {
		t.Error("frequency should resolve")
	}
	if enriched.TimePreference != nil {
		t.Error("stale time preference should resolve to nil")
	}
	if enriched.Owner == nil || enriched.Owner.Name != "Dana" {
		t.Error("owner should resolve to a summary")
	}
}

func TestLoadFailsAsAWhole(t *testing.T) {
	repo := &fakeLookupRepo{
		categoriesErr: errors.New("db down"),
		timeframes:    []*model.Timeframe{{ID: "tf1"}},
	}
	svc := NewLookupService(repo, &fakeUserRepo{})

	set, err := svc.Load(context.Background())
	if err == nil {
		t.Fatal("expected error when one read fails")
	}
	if set != nil {
		t.Error("partial lookup set must not be returned")
	}
}

func TestLoadBuildsAllMaps(t *testing.T) {
	repo := &fakeLookupRepo{
		categories:      []*model.Category{{ID: "cat1"}, {ID: "cat2"}},
		timeframes:      []*model.Timeframe{{ID: "tf1"}},
		frequencies:     []*model.Frequency{{ID: "freq1"}},
		timePreferences: []*model.TimePreference{{ID: "tp1"}},
	}
	users := &fakeUserRepo{users: []*model.User{{ID: "u1"}, {ID: "u2"}}}
	svc := NewLookupService(repo, users)

	set, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(set.Categories) != 2 {
		t.Errorf("got %d categories, want 2", len(set.Categories))
	}
	if len(set.Timeframes) != 1 || len(set.Frequencies) != 1 || len(set.TimePreferences) != 1 {
		t.Error("lookup maps incomplete")
	}
	if len(set.Users) != 2 {
		t.Errorf("got %d users, want 2", len(set.Users))
	}
}
