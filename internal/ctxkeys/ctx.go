package ctxkeys

import (
	"context"

	"github.com/desperadoclub/desperado/internal/config"
	"github.com/desperadoclub/desperado/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	UserKey       contextKey = "user"
	MembershipKey contextKey = "membership"
	ConfigKey     contextKey = "config"
)

func User(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserKey).(*model.User)
	return user
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// Membership returns the requester's household membership, or nil when the
// user has not joined a household yet.
func Membership(ctx context.Context) *model.HouseholdMembership {
	membership, _ := ctx.Value(MembershipKey).(*model.HouseholdMembership)
	return membership
}

func WithMembership(ctx context.Context, membership *model.HouseholdMembership) context.Context {
	return context.WithValue(ctx, MembershipKey, membership)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}
