package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/desperadoclub/desperado/internal/ctxkeys"
	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/service"
	"github.com/desperadoclub/desperado/internal/validation"
)

type HouseholdHandler struct {
	householdService *service.HouseholdService
}

func NewHouseholdHandler(householdService *service.HouseholdService) *HouseholdHandler {
	return &HouseholdHandler{
		householdService: householdService,
	}
}

func (h *HouseholdHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.ValidateName(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	household, err := h.householdService.Create(user.ID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyMember) {
			respondError(w, http.StatusConflict, "already a household member")
			return
		}
		slog.Error("failed to create household", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to create household")
		return
	}

	respondJSON(w, http.StatusCreated, household)
}

// Get returns the requester's household with its member roster.
func (h *HouseholdHandler) Get(w http.ResponseWriter, r *http.Request) {
	membership := ctxkeys.Membership(r.Context())

	household, err := h.householdService.Household(membership.HouseholdID)
	if err != nil {
		slog.Error("failed to get household", "error", err, "household_id", membership.HouseholdID)
		respondError(w, http.StatusInternalServerError, "failed to load household")
		return
	}

	members, err := h.householdService.Members(membership.HouseholdID)
	if err != nil {
		slog.Error("failed to get members", "error", err, "household_id", membership.HouseholdID)
		respondError(w, http.StatusInternalServerError, "failed to load household")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"household": household,
		"members":   members,
	})
}

func (h *HouseholdHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	cfg := ctxkeys.Config(r.Context())

	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email != "" {
		if err := validation.ValidateEmail(req.Email); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	invite, err := h.householdService.CreateInvite(user.ID, cfg.InviteMaxUses, cfg.InviteExpiry, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrNotMember) {
			respondError(w, http.StatusForbidden, "household membership required")
			return
		}
		slog.Error("failed to create invite", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to create invite")
		return
	}

	respondJSON(w, http.StatusCreated, invite)
}

func (h *HouseholdHandler) Invites(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	invites, err := h.householdService.Invites(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotMember) {
			respondError(w, http.StatusForbidden, "household membership required")
			return
		}
		slog.Error("failed to list invites", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to list invites")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"invites": invites})
}

// Redeem joins the requester to a household via an invite code.
// Responses distinguish unknown codes (404) from expired or exhausted
// ones (410) and from users who already belong to a household (409).
func (h *HouseholdHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		InviteCode  string `json:"invite_code"`
		DisplayName string `json:"display_name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.ValidateInviteCode(req.InviteCode, model.InviteCodeMaxLen); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	membership, err := h.householdService.Redeem(user.ID, req.InviteCode, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyMember):
			respondError(w, http.StatusConflict, "already a household member")
		case errors.Is(err, service.ErrInviteNotFound):
			respondError(w, http.StatusNotFound, "invite code not found")
		case errors.Is(err, service.ErrInviteGone):
			respondError(w, http.StatusGone, "invite code is no longer valid")
		default:
			slog.Error("failed to redeem invite", "error", err, "user_id", user.ID)
			respondError(w, http.StatusInternalServerError, "failed to redeem invite")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"household_id": membership.HouseholdID,
		"message":      "joined household",
	})
}

func (h *HouseholdHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.householdService.Leave(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotMember) {
			respondError(w, http.StatusForbidden, "household membership required")
			return
		}
		slog.Error("failed to leave household", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to leave household")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "left"})
}
