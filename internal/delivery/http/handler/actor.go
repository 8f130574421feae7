package handler

import (
	"net/http"

	"fundihub/internal/delivery/http/middleware"
	"fundihub/internal/usecase"
)

// actorFromRequest builds the acting identity from the authenticated
// request context
func actorFromRequest(r *http.Request) (usecase.Actor, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}
	role, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}
	return usecase.Actor{ID: userID, Role: role}, true
}
