package library

import (
	"fmt"

	"github.com/rs/zerolog"
)

// TransferService moves books between branches while keeping each book's
// BranchID and the two branch inventories in agreement.
type TransferService struct {
	store *Store
	log   zerolog.Logger
}

// NewTransferService wires a transfer service over the store.
func NewTransferService(store *Store, log zerolog.Logger) *TransferService {
	return &TransferService{store: store, log: log}
}

// Transfer moves an AVAILABLE book from one branch to another. The book
// must actually be at the source branch.
func (s *TransferService) Transfer(isbn, fromBranchID, toBranchID string) error {
	from, ok := s.store.Branch(fromBranchID)
	if !ok {
		s.log.Error().Str("branch", fromBranchID).Msg("transfer: source branch not found")
		return &NotFoundError{Resource: "branch", ID: fromBranchID}
	}
	to, ok := s.store.Branch(toBranchID)
	if !ok {
		s.log.Error().Str("branch", toBranchID).Msg("transfer: destination branch not found")
		return &NotFoundError{Resource: "branch", ID: toBranchID}
	}
	book, ok := s.store.Book(isbn)
	if !ok {
		s.log.Error().Str("isbn", isbn).Msg("transfer: book not found")
		return &NotFoundError{Resource: "book", ID: isbn}
	}

	if book.BranchID != fromBranchID {
		s.log.Error().Str("isbn", isbn).Str("at", book.BranchID).Msg("transfer: book not at source branch")
		return fmt.Errorf("book %s is at branch %s: %w", isbn, book.BranchID, ErrWrongBranch)
	}
	if book.Status != StatusAvailable {
		s.log.Warn().Str("isbn", isbn).Str("status", string(book.Status)).Msg("transfer: book not available")
		return fmt.Errorf("book %s is %s: %w", isbn, book.Status, ErrNotAvailable)
	}

	from.RemoveFromInventory(isbn)
	to.AddToInventory(isbn)
	book.BranchID = toBranchID

	s.store.SaveBranch(from)
	s.store.SaveBranch(to)
	s.store.SaveBook(book)

	s.log.Info().Str("title", book.Title).Str("from", from.Name).Str("to", to.Name).Msg("book transferred")
	return nil
}

// CanTransfer reports whether the book is at the source branch and free
// to move.
func (s *TransferService) CanTransfer(isbn, fromBranchID string) bool {
	book, ok := s.store.Book(isbn)
	if !ok {
		return false
	}
	return book.BranchID == fromBranchID && book.Status == StatusAvailable
}
