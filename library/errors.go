package library

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy. Every service operation either
// succeeds or fails with exactly one of these kinds; callers match with
// errors.Is and present their own message.
var (
	// ErrNotFound indicates a referenced patron, book, branch, record or
	// reservation id is not in the store.
	ErrNotFound = errors.New("not found")

	// ErrNotAvailable indicates the book's status forbids the requested
	// transition (checkout of a non-AVAILABLE book, reservation of an
	// AVAILABLE one, transfer or removal of a circulating copy).
	ErrNotAvailable = errors.New("book not available")

	// ErrLimitExceeded indicates the patron has reached their type's
	// borrowing cap.
	ErrLimitExceeded = errors.New("borrowing limit reached")

	// ErrDuplicateReservation indicates the patron already holds an active
	// reservation for the ISBN.
	ErrDuplicateReservation = errors.New("duplicate reservation")

	// ErrNoActiveLoan indicates no open borrowing record matches the
	// (patron, isbn) pair for a return or renewal.
	ErrNoActiveLoan = errors.New("no active loan")

	// ErrAlreadyExists indicates an id collision on catalog or patron
	// registration.
	ErrAlreadyExists = errors.New("already exists")

	// ErrWrongBranch indicates a transfer named a source branch the book
	// is not actually at.
	ErrWrongBranch = errors.New("book not at source branch")

	// ErrReservationMismatch indicates the head of a book's wait queue
	// belongs to a different patron than the one fulfilling it.
	ErrReservationMismatch = errors.New("reservation held by another patron")

	// ErrHasBorrowedBooks indicates a patron cannot be removed while
	// still holding books.
	ErrHasBorrowedBooks = errors.New("patron has borrowed books")
)

// NotFoundError carries the kind and id of the missing entity.
// It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
