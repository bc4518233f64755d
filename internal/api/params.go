package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/qinwen/learning-buddy-api/internal/api/shared"
	"github.com/qinwen/learning-buddy-api/internal/domain"
)

// parseUUIDParam parses a UUID taken from a request body field or query
// parameter. On failure it writes the error response itself and returns
// false; the field name appears in both the client message and the logged
// error.
func parseUUIDParam(
	w http.ResponseWriter,
	r *http.Request,
	field, raw string,
) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		wrapped := fmt.Errorf("%w: %s %q", domain.ErrInvalidID, field, raw)
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(wrapped), "Invalid "+field, wrapped,
		)
		return uuid.Nil, false
	}
	return id, true
}
