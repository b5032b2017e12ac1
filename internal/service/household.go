package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrAlreadyMember  = errors.New("user already belongs to a household")
	ErrNotMember      = errors.New("user does not belong to a household")
	ErrInviteNotFound = errors.New("invite code is invalid")
	ErrInviteGone     = errors.New("invite code is expired or exhausted")
)

// inviteCodeAlphabet omits easily confused characters (0/O, 1/I).
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type HouseholdService struct {
	repo         repository.HouseholdRepository
	emailService *EmailService
}

func NewHouseholdService(repo repository.HouseholdRepository, emailService *EmailService) *HouseholdService {
	return &HouseholdService{
		repo:         repo,
		emailService: emailService,
	}
}

func (s *HouseholdService) Create(userID, name string) (*model.Household, error) {
	if _, err := s.repo.MembershipByUser(userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, repository.ErrMembershipNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	now := time.Now()
	household := &model.Household{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedBy: userID,
		CreatedAt: now,
	}
	owner := &model.HouseholdMembership{
		ID:          uuid.New().String(),
		HouseholdID: household.ID,
		UserID:      userID,
		Role:        model.RoleOwner,
		CreatedAt:   now,
	}

	err := s.repo.CreateWithOwner(household, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to create household: %w", err)
	}

	return household, nil
}

func (s *HouseholdService) Membership(userID string) (*model.HouseholdMembership, error) {
	membership, err := s.repo.MembershipByUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	return membership, nil
}

func (s *HouseholdService) Members(householdID string) ([]*model.HouseholdMembership, error) {
	return s.repo.Members(householdID)
}

func (s *HouseholdService) Household(id string) (*model.Household, error) {
	return s.repo.ByID(id)
}

// CreateInvite issues a new invite code for the caller's household. When an
// email address is given the code is also sent via the email service.
func (s *HouseholdService) CreateInvite(userID string, maxUses int, expiresIn time.Duration, email string) (*model.HouseholdInvite, error) {
	membership, err := s.Membership(userID)
	if err != nil {
		return nil, err
	}

	if maxUses < 1 {
		maxUses = 1
	}

	code, err := generateInviteCode(8)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	var expiresAt *time.Time
	if expiresIn > 0 {
		t := time.Now().Add(expiresIn)
		expiresAt = &t
	}

	invite := &model.HouseholdInvite{
		ID:          uuid.New().String(),
		HouseholdID: membership.HouseholdID,
		Code:        code,
		Role:        model.RoleMember,
		MaxUses:     maxUses,
		TimesUsed:   0,
		IsActive:    true,
		ExpiresAt:   expiresAt,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}

	err = s.repo.CreateInvite(invite)
	if err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	if email != "" && s.emailService != nil {
		household, err := s.repo.ByID(membership.HouseholdID)
		if err == nil {
			err = s.emailService.SendInviteEmail(email, code, household.Name)
		}
		if err != nil {
			// Invite creation already succeeded; the code is still usable
			slog.Warn("failed to send invite email", "error", err, "invite_id", invite.ID)
		}
	}

	return invite, nil
}

func (s *HouseholdService) Invites(userID string) ([]*model.HouseholdInvite, error) {
	membership, err := s.Membership(userID)
	if err != nil {
		return nil, err
	}
	return s.repo.Invites(membership.HouseholdID)
}

// Redeem runs the invite redemption state machine. Checks run in a fixed
// order against a single read of the invite row:
//
//  1. caller already holds a membership -> ErrAlreadyMember
//  2. no active invite for the normalized code -> ErrInviteNotFound
//  3. expired -> deactivate, ErrInviteGone
//  4. usage limit reached -> deactivate, ErrInviteGone
//  5. otherwise membership insert + usage increment in one transaction;
//     hitting max_uses on this redemption deactivates the invite
func (s *HouseholdService) Redeem(userID, code, displayName string) (*model.HouseholdMembership, error) {
	if _, err := s.repo.MembershipByUser(userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, repository.ErrMembershipNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	invite, err := s.repo.InviteByCode(NormalizeInviteCode(code))
	if err != nil {
		if errors.Is(err, repository.ErrInviteNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to look up invite: %w", err)
	}

	if invite.Expired(time.Now()) {
		if err := s.repo.DeactivateInvite(invite.ID); err != nil {
			slog.Error("failed to deactivate expired invite", "error", err, "invite_id", invite.ID)
		}
		return nil, ErrInviteGone
	}

	if invite.Exhausted() {
		if err := s.repo.DeactivateInvite(invite.ID); err != nil {
			slog.Error("failed to deactivate exhausted invite", "error", err, "invite_id", invite.ID)
		}
		return nil, ErrInviteGone
	}

	membership := &model.HouseholdMembership{
		ID:          uuid.New().String(),
		HouseholdID: invite.HouseholdID,
		UserID:      userID,
		Role:        invite.Role,
		CreatedAt:   time.Now(),
	}
	if displayName != "" {
		membership.DisplayName = &displayName
	}

	err = s.repo.Redeem(invite, membership)
	if err != nil {
		if errors.Is(err, repository.ErrInviteStale) {
			// Someone else consumed the last slot between our read and write
			return nil, ErrInviteGone
		}
		return nil, fmt.Errorf("failed to redeem invite: %w", err)
	}

	return membership, nil
}

func (s *HouseholdService) Leave(userID string) error {
	err := s.repo.DeleteMembership(userID)
	if errors.Is(err, repository.ErrMembershipNotFound) {
		return ErrNotMember
	}
	return err
}

// NormalizeInviteCode uppercases and trims a user-entered code.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func generateInviteCode(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	for i, b := range bytes {
		bytes[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(bytes), nil
}
