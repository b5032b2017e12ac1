package service

import (
	"errors"
	"testing"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
)

type fakeHouseholdRepo struct {
	households  map[string]*model.Household
	invites     map[string]*model.HouseholdInvite // keyed by code
	memberships map[string]*model.HouseholdMembership // keyed by user id
	xp          map[string]int                        // keyed by membership id

	redeemErr error
}

func newFakeHouseholdRepo() *fakeHouseholdRepo {
	return &fakeHouseholdRepo{
		households:  make(map[string]*model.Household),
		invites:     make(map[string]*model.HouseholdInvite),
		memberships: make(map[string]*model.HouseholdMembership),
		xp:          make(map[string]int),
	}
}

func (f *fakeHouseholdRepo) CreateWithOwner(household *model.Household, owner *model.HouseholdMembership) error {
	f.households[household.ID] = household
	f.memberships[owner.UserID] = owner
	return nil
}

func (f *fakeHouseholdRepo) ByID(id string) (*model.Household, error) {
	h, ok := f.households[id]
	if !ok {
		return nil, repository.ErrHouseholdNotFound
	}
	return h, nil
}

func (f *fakeHouseholdRepo) CreateInvite(invite *model.HouseholdInvite) error {
	f.invites[invite.Code] = invite
	return nil
}

func (f *fakeHouseholdRepo) InviteByCode(code string) (*model.HouseholdInvite, error) {
	invite, ok := f.invites[code]
	if !ok || !invite.IsActive {
		return nil, repository.ErrInviteNotFound
	}
	return invite, nil
}

func (f *fakeHouseholdRepo) Invites(householdID string) ([]*model.HouseholdInvite, error) {
	var out []*model.HouseholdInvite
	for _, invite := range f.invites {
		if invite.HouseholdID == householdID {
			out = append(out, invite)
		}
	}
	return out, nil
}

func (f *fakeHouseholdRepo) DeactivateInvite(id string) error {
	for _, invite := range f.invites {
		if invite.ID == id {
			invite.IsActive = false
			return nil
		}
	}
	return repository.ErrInviteNotFound
}

func (f *fakeHouseholdRepo) Redeem(invite *model.HouseholdInvite, membership *model.HouseholdMembership) error {
	if f.redeemErr != nil {
		return f.redeemErr
	}
	invite.TimesUsed++
	if invite.TimesUsed >= invite.MaxUses {
		invite.IsActive = false
	}
	f.memberships[membership.UserID] = membership
	return nil
}

func (f *fakeHouseholdRepo) MembershipByUser(userID string) (*model.HouseholdMembership, error) {
	m, ok := f.memberships[userID]
	if !ok {
		return nil, repository.ErrMembershipNotFound
	}
	return m, nil
}

func (f *fakeHouseholdRepo) Members(householdID string) ([]*model.HouseholdMembership, error) {
	var out []*model.HouseholdMembership
	for _, m := range f.memberships {
		if m.HouseholdID == householdID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeHouseholdRepo) DeleteMembership(userID string) error {
	if _, ok := f.memberships[userID]; !ok {
		return repository.ErrMembershipNotFound
	}
	delete(f.memberships, userID)
	return nil
}

func (f *fakeHouseholdRepo) AddXP(membershipID string, amount int) error {
	f.xp[membershipID] += amount
	return nil
}

func activeInvite(code string, maxUses, timesUsed int, expiresAt *time.Time) *model.HouseholdInvite {
	return &model.HouseholdInvite{
		ID:          "inv-" + code,
		HouseholdID: "hh1",
		Code:        code,
		Role:        model.RoleMember,
		MaxUses:     maxUses,
		TimesUsed:   timesUsed,
		IsActive:    true,
		ExpiresAt:   expiresAt,
		CreatedBy:   "owner",
	}
}

func TestRedeem(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name    string
		setup   func(*fakeHouseholdRepo)
		userID  string
		code    string
		wantErr error
	}{
		{
			name: "valid invite joins the household",
			setup: func(f *fakeHouseholdRepo) {
				f.invites["ABCD2345"] = activeInvite("ABCD2345", 5, 0, &future)
			},
			userID: "newcomer",
			code:   "ABCD2345",
		},
		{
			name: "code is normalized before lookup",
			setup: func(f *fakeHouseholdRepo) {
				f.invites["ABCD2345"] = activeInvite("ABCD2345", 5, 0, nil)
			},
			userID: "newcomer",
			code:   "  abcd2345 ",
		},
		{
			name: "existing member is rejected",
			setup: func(f *fakeHouseholdRepo) {
				f.invites["ABCD2345"] = activeInvite("ABCD2345", 5, 0, nil)
				f.memberships["insider"] = &model.HouseholdMembership{ID: "m1", UserID: "insider", HouseholdID: "hh2"}
			},
			userID:  "insider",
			code:    "ABCD2345",
			wantErr: ErrAlreadyMember,
		},
		{
			name:    "unknown code",
			setup:   func(f *fakeHouseholdRepo) {},
			userID:  "newcomer",
			code:    "NOSUCH99",
			wantErr: ErrInviteNotFound,
		},
		{
			name: "expired invite",
			setup: func(f *fakeHouseholdRepo) {
				f.invites["EXPIRED9"] = activeInvite("EXPIRED9", 5, 0, &past)
			},
			userID:  "newcomer",
			code:    "EXPIRED9",
			wantErr: ErrInviteGone,
		},
		{
			name: "exhausted invite",
			setup: func(f *fakeHouseholdRepo) {
				f.invites["USEDUP99"] = activeInvite("USEDUP99", 2, 2, nil)
			},
			userID:  "newcomer",
			code:    "USEDUP99",
			wantErr: ErrInviteGone,
		},
		{
			name: "concurrent exhaustion surfaces as gone",
			setup: func(f *fakeHouseholdRepo) {
				f.invites["RACY2345"] = activeInvite("RACY2345", 1, 0, nil)
				f.redeemErr = repository.ErrInviteStale
			},
			userID:  "newcomer",
			code:    "RACY2345",
			wantErr: ErrInviteGone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeHouseholdRepo()
			tt.setup(repo)
			svc := NewHouseholdService(repo, nil)

			membership, err := svc.Redeem(tt.userID, tt.code, "")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				if _, ok := repo.memberships[tt.userID]; ok {
					t.Error("failed redemption must not create a membership")
				}
				return
			}

			if err != nil {
				t.Fatalf("Redeem: %v", err)
			}
			if membership.HouseholdID != "hh1" {
				t.Errorf("got household %s, want hh1", membership.HouseholdID)
			}
			if membership.UserID != tt.userID {
				t.Errorf("got user %s, want %s", membership.UserID, tt.userID)
			}
		})
	}
}

func TestRedeemIncrementsUsage(t *testing.T) {
	repo := newFakeHouseholdRepo()
	invite := activeInvite("ABCD2345", 2, 0, nil)
	repo.invites["ABCD2345"] = invite
	svc := NewHouseholdService(repo, nil)

	if _, err := svc.Redeem("user1", "ABCD2345", "U1"); err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	if invite.TimesUsed != 1 {
		t.Errorf("got times_used %d, want 1", invite.TimesUsed)
	}

	if _, err := svc.Redeem("user2", "ABCD2345", "U2"); err != nil {
		t.Fatalf("second redeem: %v", err)
	}
	if invite.IsActive {
		t.Error("invite should deactivate once max_uses is reached")
	}

	// Third user sees the exhausted invite as gone
	_, err := svc.Redeem("user3", "ABCD2345", "U3")
	if !errors.Is(err, ErrInviteNotFound) && !errors.Is(err, ErrInviteGone) {
		t.Fatalf("got %v, want invite rejection", err)
	}
}

func TestCreateRejectsSecondHousehold(t *testing.T) {
	repo := newFakeHouseholdRepo()
	svc := NewHouseholdService(repo, nil)

	if _, err := svc.Create("user1", "First"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := svc.Create("user1", "Second")
	if !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("got %v, want ErrAlreadyMember", err)
	}
}

func TestNormalizeInviteCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abcd2345", "ABCD2345"},
		{"  ABCD2345  ", "ABCD2345"},
		{"AbCd2345", "ABCD2345"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeInviteCode(tt.in); got != tt.want {
			t.Errorf("NormalizeInviteCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := generateInviteCode(8)
		if err != nil {
			t.Fatalf("generateInviteCode: %v", err)
		}
		if len(code) != 8 {
			t.Fatalf("got length %d, want 8", len(code))
		}
		if code != NormalizeInviteCode(code) {
			t.Errorf("code %q is not already normalized", code)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("codes should not repeat constantly")
	}
}
