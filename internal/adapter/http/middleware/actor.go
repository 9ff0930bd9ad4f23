package middleware

import (
	"net/http"

	"github.com/fundhost/ledger/internal/domain"
)

// Header names for the actor identity forwarded by the API gateway.
// Authentication happens upstream; this service only consumes the verified
// identity.
const (
	ActorIDHeader        = "X-Actor-Id"
	ActorAccountIDHeader = "X-Actor-Account-Id"
	ActorRoleHeader      = "X-Actor-Role"
)

// Actor extracts the forwarded actor identity and attaches it to the request
// context. Requests without an actor pass through anonymous; authorization
// checks downstream reject them where it matters.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(ActorIDHeader)
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}

		actor := &domain.Actor{
			ID:        id,
			AccountID: r.Header.Get(ActorAccountIDHeader),
			Role:      domain.Role(r.Header.Get(ActorRoleHeader)),
		}
		next.ServeHTTP(w, r.WithContext(domain.WithActor(r.Context(), actor)))
	})
}
