package model

import (
	"time"
)

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// InviteCodeMaxLen is the fixed maximum length of a household invite code.
const InviteCodeMaxLen = 12

type Household struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedBy string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type HouseholdInvite struct {
	ID          string     `db:"id" json:"id"`
	HouseholdID string     `db:"household_id" json:"household_id"`
	Code        string     `db:"code" json:"code"`
	Role        string     `db:"role" json:"role"`
	MaxUses     int        `db:"max_uses" json:"max_uses"`
	TimesUsed   int        `db:"times_used" json:"times_used"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	ExpiresAt   *time.Time `db:"expires_at" json:"expires_at"`
	CreatedBy   string     `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// Expired reports whether the invite's expiry has passed at the given instant.
// Invites without an expiry never expire.
func (i *HouseholdInvite) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && i.ExpiresAt.Before(now)
}

// Exhausted reports whether the invite has reached its usage limit.
func (i *HouseholdInvite) Exhausted() bool {
	return i.TimesUsed >= i.MaxUses
}

type HouseholdMembership struct {
	ID          string    `db:"id" json:"id"`
	HouseholdID string    `db:"household_id" json:"household_id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Role        string    `db:"role" json:"role"`
	DisplayName *string   `db:"display_name" json:"display_name"`
	XP          int       `db:"xp" json:"xp"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
