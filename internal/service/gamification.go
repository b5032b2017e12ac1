package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/google/uuid"
)

// XPGoalCompleted is the base award for completing any goal; party goals add
// their configured bonus on top.
const XPGoalCompleted = 50

type GamificationService struct {
	partyGoalRepo repository.PartyGoalRepository
	goalRepo      repository.GoalRepository
	householdRepo repository.HouseholdRepository
}

func NewGamificationService(
	partyGoalRepo repository.PartyGoalRepository,
	goalRepo repository.GoalRepository,
	householdRepo repository.HouseholdRepository,
) *GamificationService {
	return &GamificationService{
		partyGoalRepo: partyGoalRepo,
		goalRepo:      goalRepo,
		householdRepo: householdRepo,
	}
}

// AwardXP credits XP to the user's household membership. Users without a
// household accrue nothing; that is not an error.
func (s *GamificationService) AwardXP(userID string, amount int) {
	membership, err := s.householdRepo.MembershipByUser(userID)
	if err != nil {
		if !errors.Is(err, repository.ErrMembershipNotFound) {
			slog.Error("failed to load membership for xp award", "error", err, "user_id", userID)
		}
		return
	}

	err = s.householdRepo.AddXP(membership.ID, amount)
	if err != nil {
		slog.Error("failed to award xp", "error", err, "membership_id", membership.ID, "amount", amount)
	}
}

// AwardGoalCompletion pays the base completion award plus the party-goal
// bonus when the goal is flagged as a party goal.
func (s *GamificationService) AwardGoalCompletion(userID, goalID string) {
	amount := XPGoalCompleted

	partyGoal, err := s.partyGoalRepo.ByGoalID(goalID)
	if err == nil {
		amount += partyGoal.XPBonus
	} else if !errors.Is(err, repository.ErrPartyGoalNotFound) {
		slog.Error("failed to load party goal", "error", err, "goal_id", goalID)
	}

	s.AwardXP(userID, amount)
}

// UpsertPartyGoal flags a goal as a party goal. Posting the same goal twice
// updates the existing row in place.
func (s *GamificationService) UpsertPartyGoal(userID, goalID string, xpBonus int) (*model.PartyGoal, error) {
	// Ownership check doubles as existence check
	_, err := s.goalRepo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if xpBonus < 0 {
		xpBonus = 0
	}

	partyGoal := &model.PartyGoal{
		ID:        uuid.New().String(),
		GoalID:    goalID,
		XPBonus:   xpBonus,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}

	err = s.partyGoalRepo.Upsert(partyGoal)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert party goal: %w", err)
	}

	// Re-read so an update returns the original row id, not the discarded one
	return s.partyGoalRepo.ByGoalID(goalID)
}

func (s *GamificationService) PartyGoals() ([]*model.PartyGoal, error) {
	return s.partyGoalRepo.List()
}

func (s *GamificationService) DeletePartyGoal(goalID string) error {
	return s.partyGoalRepo.Delete(goalID)
}
