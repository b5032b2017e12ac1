package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrHouseholdNotFound  = errors.New("household not found")
	ErrInviteNotFound     = errors.New("invite not found")
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrInviteStale signals that the invite row changed between the read and
	// the redemption write (optimistic precondition failed).
	ErrInviteStale = errors.New("invite was modified concurrently")
)

type HouseholdRepository interface {
	CreateWithOwner(household *model.Household, owner *model.HouseholdMembership) error
	ByID(id string) (*model.Household, error)

	CreateInvite(invite *model.HouseholdInvite) error
	InviteByCode(code string) (*model.HouseholdInvite, error)
	Invites(householdID string) ([]*model.HouseholdInvite, error)
	DeactivateInvite(id string) error
	Redeem(invite *model.HouseholdInvite, membership *model.HouseholdMembership) error

	MembershipByUser(userID string) (*model.HouseholdMembership, error)
	Members(householdID string) ([]*model.HouseholdMembership, error)
	DeleteMembership(userID string) error
	AddXP(membershipID string, amount int) error
}

type householdRepository struct {
	db *sqlx.DB
}

func NewHouseholdRepository(db *sqlx.DB) HouseholdRepository {
	return &householdRepository{db: db}
}

// CreateWithOwner inserts the household and its owner membership in one
// transaction so a household never exists without a member.
func (r *householdRepository) CreateWithOwner(household *model.Household, owner *model.HouseholdMembership) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO households (id, name, created_by, created_at) VALUES ($1, $2, $3, $4)`,
		household.ID, household.Name, household.CreatedBy, household.CreatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT INTO household_memberships (id, household_id, user_id, role, display_name, xp, created_at)
	                  VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		owner.ID, owner.HouseholdID, owner.UserID, owner.Role, owner.DisplayName, owner.XP, owner.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *householdRepository) ByID(id string) (*model.Household, error) {
	household := &model.Household{}
	query := `SELECT * FROM households WHERE id = $1`

	err := r.db.Get(household, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrHouseholdNotFound
	}

	return household, err
}

func (r *householdRepository) CreateInvite(invite *model.HouseholdInvite) error {
	query := `INSERT INTO household_invites (id, household_id, code, role, max_uses, times_used, is_active, expires_at, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		invite.ID,
		invite.HouseholdID,
		invite.Code,
		invite.Role,
		invite.MaxUses,
		invite.TimesUsed,
		invite.IsActive,
		invite.ExpiresAt,
		invite.CreatedBy,
		invite.CreatedAt,
	)

	return err
}

func (r *householdRepository) InviteByCode(code string) (*model.HouseholdInvite, error) {
	invite := &model.HouseholdInvite{}
	query := `SELECT * FROM household_invites WHERE code = $1 AND is_active = TRUE`

	err := r.db.Get(invite, query, code)
	if err == sql.ErrNoRows {
		return nil, ErrInviteNotFound
	}

	return invite, err
}

func (r *householdRepository) Invites(householdID string) ([]*model.HouseholdInvite, error) {
	var invites []*model.HouseholdInvite
	query := `SELECT * FROM household_invites WHERE household_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&invites, query, householdID)
	if err != nil {
		return nil, err
	}

	return invites, nil
}

func (r *householdRepository) DeactivateInvite(id string) error {
	query := `UPDATE household_invites SET is_active = FALSE WHERE id = $1`

	_, err := r.db.Exec(query, id)
	return err
}

// Redeem inserts the membership and advances the invite's usage count as one
// transaction. The update carries an optimistic precondition on times_used so
// two concurrent redemptions of the last slot cannot both succeed.
func (r *householdRepository) Redeem(invite *model.HouseholdInvite, membership *model.HouseholdMembership) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO household_memberships (id, household_id, user_id, role, display_name, xp, created_at)
	                  VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		membership.ID,
		membership.HouseholdID,
		membership.UserID,
		membership.Role,
		membership.DisplayName,
		membership.XP,
		membership.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}

	stillActive := invite.TimesUsed+1 < invite.MaxUses

	result, err := tx.Exec(`UPDATE household_invites
	                        SET times_used = times_used + 1, is_active = $1
	                        WHERE id = $2 AND is_active = TRUE AND times_used = $3`,
		stillActive, invite.ID, invite.TimesUsed)
	if err != nil {
		return fmt.Errorf("failed to update invite usage: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInviteStale
	}

	return tx.Commit()
}

func (r *householdRepository) MembershipByUser(userID string) (*model.HouseholdMembership, error) {
	membership := &model.HouseholdMembership{}
	query := `SELECT * FROM household_memberships WHERE user_id = $1`

	err := r.db.Get(membership, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrMembershipNotFound
	}

	return membership, err
}

func (r *householdRepository) Members(householdID string) ([]*model.HouseholdMembership, error) {
	var members []*model.HouseholdMembership
	query := `SELECT * FROM household_memberships WHERE household_id = $1 ORDER BY created_at ASC`

	err := r.db.Select(&members, query, householdID)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *householdRepository) DeleteMembership(userID string) error {
	result, err := r.db.Exec(`DELETE FROM household_memberships WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrMembershipNotFound
	}

	return nil
}

func (r *householdRepository) AddXP(membershipID string, amount int) error {
	query := `UPDATE household_memberships SET xp = xp + $1 WHERE id = $2`

	_, err := r.db.Exec(query, amount, membershipID)
	return err
}
