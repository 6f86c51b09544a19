package errors

import (
	"fmt"
	"net/http"
)

// Error code namespacing:
//
//	0-999   generic / validation
//	1000s   authentication
//	3000s   forbidden (per-entity offsets: project 3100, page 3200,
//	        object 3300, event 3400)
//	4000s   not found (same per-entity offsets)
//	9000s   conflict
const (
	CodeInvalidRequest      = 1
	CodeConstraintViolation = 2
	CodeLinkNonRelatedPage  = 3
	CodeInternal            = 999

	CodeUnauthorized = 1000
	CodeTokenExpired = 1001
	CodeTokenInvalid = 1002

	CodeNonAccessibleProject    = 3100
	CodeNonAccessiblePage       = 3200
	CodeNonAccessiblePageObject = 3300
	CodeNonAccessibleEvent      = 3400

	CodeUserNotFound       = 4000
	CodeProjectNotFound    = 4100
	CodePageNotFound       = 4200
	CodePageObjectNotFound = 4300
	CodeEventNotFound      = 4400

	CodeDuplicateUserID         = 9000
	CodeMultipleEventAllocation = 9400
)

// Convenience constructors. The detail string echoes the offending id so a
// client can correlate the failure with the request it sent.

// ErrProjectNotFound reports a missing or soft-deleted project.
func ErrProjectNotFound(id int64) *AppError {
	return NotFound(CodeProjectNotFound, "project not found", fmt.Sprintf("project id: %d", id))
}

// ErrPageNotFound reports a missing or soft-deleted page.
func ErrPageNotFound(id int64) *AppError {
	return NotFound(CodePageNotFound, "page not found", fmt.Sprintf("page id: %d", id))
}

// ErrPageObjectNotFound reports a missing or soft-deleted page object.
func ErrPageObjectNotFound(id int64) *AppError {
	return NotFound(CodePageObjectNotFound, "page object not found", fmt.Sprintf("object id: %d", id))
}

// ErrEventNotFound reports a missing or soft-deleted event.
func ErrEventNotFound(id int64) *AppError {
	return NotFound(CodeEventNotFound, "event not found", fmt.Sprintf("event id: %d", id))
}

// ErrUserNotFound reports a missing or soft-deleted user.
func ErrUserNotFound(id int64) *AppError {
	return NotFound(CodeUserNotFound, "user not found", fmt.Sprintf("user id: %d", id))
}

// ErrNonAccessibleProject reports a project owned by another user.
func ErrNonAccessibleProject(id int64) *AppError {
	return Forbidden(CodeNonAccessibleProject, "non-accessible project", fmt.Sprintf("project id: %d", id))
}

// ErrNonAccessiblePage reports a page whose project is owned by another user.
func ErrNonAccessiblePage(id int64) *AppError {
	return Forbidden(CodeNonAccessiblePage, "non-accessible page", fmt.Sprintf("page id: %d", id))
}

// ErrNonAccessiblePageObject reports an object on a non-accessible page.
func ErrNonAccessiblePageObject(id int64) *AppError {
	return Forbidden(CodeNonAccessiblePageObject, "non-accessible page object", fmt.Sprintf("object id: %d", id))
}

// ErrNonAccessibleEvent reports an event on a non-accessible object.
func ErrNonAccessibleEvent(id int64) *AppError {
	return Forbidden(CodeNonAccessibleEvent, "non-accessible event", fmt.Sprintf("event id: %d", id))
}

// ErrMultipleEventAllocation reports a second active event on one object.
func ErrMultipleEventAllocation(objectID int64) *AppError {
	return Conflict(CodeMultipleEventAllocation, "object already has an active event", fmt.Sprintf("object id: %d", objectID))
}

// ErrLinkNonRelatedPage reports a next-page reference outside the project.
func ErrLinkNonRelatedPage(pageID int64) *AppError {
	return BadRequest(CodeLinkNonRelatedPage, "next page belongs to a different project", fmt.Sprintf("page id: %d", pageID))
}

// ErrDuplicateUserID reports an already-taken login handle.
func ErrDuplicateUserID(handle string) *AppError {
	return Conflict(CodeDuplicateUserID, "user id already taken", fmt.Sprintf("user id: %s", handle))
}

// ErrConstraintViolation reports an invalid path or query parameter.
func ErrConstraintViolation(param string) *AppError {
	return BadRequest(CodeConstraintViolation, "constraint violation", param)
}

// ErrInternal wraps an unexpected failure as a 500. The detail names the
// operation, never the underlying error text.
func ErrInternal(err error, op string) *AppError {
	return Wrap(err, CodeInternal, "internal server error", op, http.StatusInternalServerError)
}
