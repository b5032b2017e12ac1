package service

import (
	"context"
	"fmt"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
	"golang.org/x/sync/errgroup"
)

// LookupSet holds the reference tables and the user directory as id-keyed
// maps, loaded once per request and treated as immutable afterwards.
type LookupSet struct {
	Categories      map[string]*model.Category
	Timeframes      map[string]*model.Timeframe
	Frequencies     map[string]*model.Frequency
	TimePreferences map[string]*model.TimePreference
	Users           map[string]*model.User
}

type LookupService struct {
	lookupRepo repository.LookupRepository
	userRepo   repository.UserRepository
}

func NewLookupService(lookupRepo repository.LookupRepository, userRepo repository.UserRepository) *LookupService {
	return &LookupService{
		lookupRepo: lookupRepo,
		userRepo:   userRepo,
	}
}

// Load fetches all five reference reads concurrently and fails as a whole if
// any single read fails. Partial results are never returned.
func (s *LookupService) Load(ctx context.Context) (*LookupSet, error) {
	set := &LookupSet{
		Categories:      make(map[string]*model.Category),
		Timeframes:      make(map[string]*model.Timeframe),
		Frequencies:     make(map[string]*model.Frequency),
		TimePreferences: make(map[string]*model.TimePreference),
		Users:           make(map[string]*model.User),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		categories, err := s.lookupRepo.Categories(ctx)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		for _, c := range categories {
			set.Categories[c.ID] = c
		}
		return nil
	})

	g.Go(func() error {
		timeframes, err := s.lookupRepo.Timeframes(ctx)
		if err != nil {
			return fmt.Errorf("failed to load timeframes: %w", err)
		}
		for _, t := range timeframes {
			set.Timeframes[t.ID] = t
		}
		return nil
	})

	g.Go(func() error {
		frequencies, err := s.lookupRepo.Frequencies(ctx)
		if err != nil {
			return fmt.Errorf("failed to load frequencies: %w", err)
		}
		for _, f := range frequencies {
			set.Frequencies[f.ID] = f
		}
		return nil
	})

	g.Go(func() error {
		preferences, err := s.lookupRepo.TimePreferences(ctx)
		if err != nil {
			return fmt.Errorf("failed to load time preferences: %w", err)
		}
		for _, p := range preferences {
			set.TimePreferences[p.ID] = p
		}
		return nil
	})

	g.Go(func() error {
		users, err := s.userRepo.All(ctx)
		if err != nil {
			return fmt.Errorf("failed to load user directory: %w", err)
		}
		for _, u := range users {
			set.Users[u.ID] = u
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return set, nil
}

// EnrichGoal resolves a goal's foreign keys against the loaded lookups. A nil
// or stale reference yields a nil resolved field; a lookup miss is never an
// error. The raw id fields are preserved unchanged on the copy.
func EnrichGoal(goal *model.Goal, set *LookupSet) *model.EnrichedGoal {
	enriched := &model.EnrichedGoal{Goal: *goal}

	if goal.CategoryID != nil {
		enriched.Category = set.Categories[*goal.CategoryID]
	}
	if goal.TimeframeID != nil {
		enriched.Timeframe = set.Timeframes[*goal.TimeframeID]
	}
	if owner, ok := set.Users[goal.UserID]; ok {
		enriched.Owner = owner.Summary()
	}

	return enriched
}

// EnrichGoals maps EnrichGoal over the slice, preserving input order.
func EnrichGoals(goals []*model.Goal, set *LookupSet) []*model.EnrichedGoal {
	enriched := make([]*model.EnrichedGoal, 0, len(goals))
	for _, goal := range goals {
		enriched = append(enriched, EnrichGoal(goal, set))
	}
	return enriched
}

func EnrichHabit(habit *model.Habit, set *LookupSet) *model.EnrichedHabit {
	enriched := &model.EnrichedHabit{Habit: *habit}

	if habit.FrequencyID != nil {
		enriched.Frequency = set.Frequencies[*habit.FrequencyID]
	}
	if habit.TimePreferenceID != nil {
		enriched.TimePreference = set.TimePreferences[*habit.TimePreferenceID]
	}
	if owner, ok := set.Users[habit.UserID]; ok {
		enriched.Owner = owner.Summary()
	}

	return enriched
}

func EnrichHabits(habits []*model.Habit, set *LookupSet) []*model.EnrichedHabit {
	enriched := make([]*model.EnrichedHabit, 0, len(habits))
	for _, habit := range habits {
		enriched = append(enriched, EnrichHabit(habit, set))
	}
	return enriched
}
