package handler

import (
	"net/http"

	"shepherd/internal/authz"
	"shepherd/internal/httputil"
)

// requireActor extracts the authenticated actor or writes a 401. The auth
// middleware guarantees an actor on protected routes; this guards against
// mis-wired route tables.
func requireActor(w http.ResponseWriter, r *http.Request) (authz.Actor, bool) {
	actor, ok := httputil.GetActor(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return authz.Actor{}, false
	}
	return actor, true
}
