package http

import (
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// scopeFromRequest resolves the acting user's access scope from the verified
// token. Handlers pass the scope down; nothing below this layer reads the
// request context for identity.
func scopeFromRequest(r *http.Request) (user.Scope, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.Scope{}, user.ErrAccessDenied
	}
	return user.ScopeFromClaims(claims)
}
