package service

import (
	"errors"
	"testing"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
)

type fakeGoalRepo struct {
	goals map[string]*model.Goal
}

func (f *fakeGoalRepo) Create(goal *model.Goal) error {
	f.goals[goal.ID] = goal
	return nil
}

func (f *fakeGoalRepo) ByID(userID, goalID string) (*model.Goal, error) {
	goal, ok := f.goals[goalID]
	if !ok || goal.UserID != userID {
		return nil, repository.ErrGoalNotFound
	}
	return goal, nil
}

func (f *fakeGoalRepo) Goals(userID string) ([]*model.Goal, error) {
	var out []*model.Goal
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalRepo) Update(goal *model.Goal) error {
	f.goals[goal.ID] = goal
	return nil
}

func (f *fakeGoalRepo) Delete(userID, goalID string) error {
	delete(f.goals, goalID)
	return nil
}

type fakePartyGoalRepo struct {
	byGoal map[string]*model.PartyGoal
}

func (f *fakePartyGoalRepo) Upsert(partyGoal *model.PartyGoal) error {
	existing, ok := f.byGoal[partyGoal.GoalID]
	if ok {
		existing.XPBonus = partyGoal.XPBonus
		return nil
	}
	f.byGoal[partyGoal.GoalID] = partyGoal
	return nil
}

func (f *fakePartyGoalRepo) ByGoalID(goalID string) (*model.PartyGoal, error) {
	pg, ok := f.byGoal[goalID]
	if !ok {
		return nil, repository.ErrPartyGoalNotFound
	}
	return pg, nil
}

func (f *fakePartyGoalRepo) List() ([]*model.PartyGoal, error) {
	var out []*model.PartyGoal
	for _, pg := range f.byGoal {
		out = append(out, pg)
	}
	return out, nil
}

func (f *fakePartyGoalRepo) Delete(goalID string) error {
	if _, ok := f.byGoal[goalID]; !ok {
		return repository.ErrPartyGoalNotFound
	}
	delete(f.byGoal, goalID)
	return nil
}

func newTestGamification() (*GamificationService, *fakePartyGoalRepo, *fakeHouseholdRepo) {
	goals := &fakeGoalRepo{goals: map[string]*model.Goal{
		"g1": {ID: "g1", UserID: "u1", Title: "Save for trip"},
	}}
	party := &fakePartyGoalRepo{byGoal: make(map[string]*model.PartyGoal)}
	household := newFakeHouseholdRepo()
	return NewGamificationService(party, goals, household), party, household
}

func TestUpsertPartyGoalIdempotent(t *testing.T) {
	svc, _, _ := newTestGamification()

	first, err := svc.UpsertPartyGoal("u1", "g1", 25)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := svc.UpsertPartyGoal("u1", "g1", 40)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("reapply created a new row: %s vs %s", second.ID, first.ID)
	}
	if second.XPBonus != 40 {
		t.Errorf("got bonus %d, want 40", second.XPBonus)
	}

	goals, err := svc.PartyGoals()
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 1 {
		t.Errorf("got %d party goals, want 1", len(goals))
	}
}

func TestUpsertPartyGoalUnknownGoal(t *testing.T) {
	svc, _, _ := newTestGamification()

	_, err := svc.UpsertPartyGoal("u1", "missing", 10)
	if !errors.Is(err, repository.ErrGoalNotFound) {
		t.Fatalf("got %v, want ErrGoalNotFound", err)
	}
}

func TestUpsertPartyGoalForeignGoal(t *testing.T) {
	svc, _, _ := newTestGamification()

	_, err := svc.UpsertPartyGoal("u2", "g1", 10)
	if !errors.Is(err, repository.ErrGoalNotFound) {
		t.Fatalf("got %v, want ErrGoalNotFound", err)
	}
}

func TestAwardGoalCompletionIncludesPartyBonus(t *testing.T) {
	svc, party, household := newTestGamification()
	household.memberships["u1"] = &model.HouseholdMembership{ID: "m1", UserID: "u1", HouseholdID: "hh1"}
	party.byGoal["g1"] = &model.PartyGoal{ID: "pg1", GoalID: "g1", XPBonus: 30}

	svc.AwardGoalCompletion("u1", "g1")

	if got := household.xp["m1"]; got != XPGoalCompleted+30 {
		t.Errorf("got %d xp, want %d", got, XPGoalCompleted+30)
	}
}

func TestAwardXPWithoutHousehold(t *testing.T) {
	svc, _, household := newTestGamification()

	// Must not error or create anything
	svc.AwardXP("nomad", 10)

	if len(household.xp) != 0 {
		t.Error("xp awarded to a user with no membership")
	}
}
