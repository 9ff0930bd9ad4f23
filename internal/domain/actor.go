package domain

import "context"

// Actor is the authenticated principal performing an operation. The core
// treats authorization as opaque capability checks against the actor; policy
// lives outside.
type Actor struct {
	ID        string
	AccountID string
	Role      Role
}

// Role is the actor's access level.
type Role string

const (
	// RoleSiteAdmin has elevated privileges (markAsUnpaid, refunds).
	RoleSiteAdmin Role = "site_admin"
	// RoleHostAdmin administers a fiscal host and can pay expenses.
	RoleHostAdmin Role = "host_admin"
	// RoleCollectiveAdmin administers a collective and can approve expenses.
	RoleCollectiveAdmin Role = "collective_admin"
	// RoleMember can submit expenses for a collective.
	RoleMember Role = "member"
)

type actorContextKey struct{}

// WithActor attaches an actor to the context.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the actor from the context.
func ActorFromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(*Actor)
	return actor, ok
}
