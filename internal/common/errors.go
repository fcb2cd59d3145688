package common

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("requested resource not found")

	// ErrInvalidCredentials covers every login failure (unknown name, wrong
	// password, admin mismatch) so responses never reveal which one it was.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrUnauthenticated means the presented token is missing, malformed,
	// expired, or names a principal that no longer exists.
	ErrUnauthenticated = errors.New("invalid or expired token")

	// ErrForbidden means the principal resolved fine but lacks the role.
	ErrForbidden = errors.New("administrator role required")

	ErrBadRequest         = errors.New("bad request")
	ErrConflict           = errors.New("resource conflict") // e.g., username already exists
	ErrRateLimited        = errors.New("too many attempts")
	ErrInternalServer     = errors.New("internal server error")
	ErrServiceUnavailable = errors.New("service unavailable") // e.g. chat backend down
)

// HTTPStatusFromError maps domain errors to HTTP status codes. Unauthenticated
// and Forbidden are deliberately distinct so clients can tell "log in again"
// apart from "logged in but not allowed".
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrUnauthenticated) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrRateLimited) {
		return http.StatusTooManyRequests
	}
	if errors.Is(err, ErrServiceUnavailable) {
		return http.StatusServiceUnavailable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // Unique violation
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}
