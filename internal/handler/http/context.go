package http

import (
	"net/http"

	"github.com/qssun/attendance-backend-go/internal/handler/http/middleware"
)

// currentUserID resolves the authenticated user from the request JWT.
func currentUserID(r *http.Request) string {
	return middleware.UserID(r)
}
