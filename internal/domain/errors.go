package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrOwnershipMismatch   = errors.New("attachment owner belongs to a different user")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrValidation          = errors.New("validation failed")
	ErrConflict            = errors.New("already exists")
	ErrApplicationsClosed  = errors.New("land applications are closed")
	ErrCommonerNotApproved = errors.New("commoner registration is not approved")
)

// RequirementsNotMetError reports an approval attempted while required
// document kinds are still missing. Missing preserves the canonical required
// order so callers can show the exact gap.
type RequirementsNotMetError struct {
	Owner   OwnerKind
	Missing []AttachmentKind
}

func (e *RequirementsNotMetError) Error() string {
	kinds := make([]string, len(e.Missing))
	for i, k := range e.Missing {
		kinds[i] = string(k)
	}
	return fmt.Sprintf("required documents missing for %s: %s", e.Owner, strings.Join(kinds, ", "))
}
