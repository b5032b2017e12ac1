package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desperadoclub/desperado/internal/ctxkeys"
	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/desperadoclub/desperado/internal/service"
)

type fakeHouseholdRepo struct {
	invites     map[string]*model.HouseholdInvite
	memberships map[string]*model.HouseholdMembership
}

func newFakeHouseholdRepo() *fakeHouseholdRepo {
	return &fakeHouseholdRepo{
		invites:     make(map[string]*model.HouseholdInvite),
		memberships: make(map[string]*model.HouseholdMembership),
	}
}

func (f *fakeHouseholdRepo) CreateWithOwner(household *model.Household, owner *model.HouseholdMembership) error {
	f.memberships[owner.UserID] = owner
	return nil
}

func (f *fakeHouseholdRepo) ByID(id string) (*model.Household, error) {
	return nil, repository.ErrHouseholdNotFound
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
	return nil, nil
}

func (f *fakeHouseholdRepo) DeactivateInvite(id string) error {
	for _, invite := range f.invites {
		if invite.ID == id {
			invite.IsActive = false
		}
	}
	return nil
}

func (f *fakeHouseholdRepo) Redeem(invite *model.HouseholdInvite, membership *model.HouseholdMembership) error {
	invite.TimesUsed++
	f.memberships[membership.UserID] = membership
	return nil
}

func (f *fakeHouseholdRepo) MembershipByUser(userID string) (*model.HouseholdMembership, error) {
	membership, ok := f.memberships[userID]
	if !ok {
		return nil, repository.ErrMembershipNotFound
	}
	return membership, nil
}

func (f *fakeHouseholdRepo) Members(householdID string) ([]*model.HouseholdMembership, error) {
	return nil, nil
}

func (f *fakeHouseholdRepo) DeleteMembership(userID string) error {
	if _, ok := f.memberships[userID]; !ok {
		return repository.ErrMembershipNotFound
	}
	delete(f.memberships, userID)
	return nil
}

func (f *fakeHouseholdRepo) AddXP(membershipID string, amount int) error {
	return nil
}

func postRedeem(t *testing.T, h *HouseholdHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/household/invite/redeem", strings.NewReader(body))
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "u1"}))
	rec := httptest.NewRecorder()

	h.Redeem(rec, req)
	return rec
}

func TestRedeemAcceptsInviteCodeField(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.invites["ABCD2345"] = &model.HouseholdInvite{
		ID:          "inv1",
		HouseholdID: "house-1",
		Code:        "ABCD2345",
		Role:        model.RoleMember,
		MaxUses:     5,
		IsActive:    true,
	}
	h := NewHouseholdHandler(service.NewHouseholdService(repo, nil))

	rec := postRedeem(t, h, `{"invite_code":"ABCD2345","display_name":"Dez"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		HouseholdID string `json:"household_id"`
		Message     string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.HouseholdID != "house-1" {
		t.Errorf("got household_id %q, want %q", resp.HouseholdID, "house-1")
	}
	if resp.Message == "" {
		t.Error("expected a message in the response")
	}

	if _, err := repo.MembershipByUser("u1"); err != nil {
		t.Errorf("membership not created: %v", err)
	}
}

func TestRedeemErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"unknown code", `{"invite_code":"ZZZZ9999"}`, http.StatusNotFound},
		{"malformed code", `{"invite_code":"ab!"}`, http.StatusBadRequest},
		{"empty body", `{}`, http.StatusBadRequest},
		{"unknown field", `{"invite_code":"ABCD2345","bogus":true}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHouseholdHandler(service.NewHouseholdService(newFakeHouseholdRepo(), nil))
			rec := postRedeem(t, h, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
