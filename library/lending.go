package library

import (
	"fmt"

	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// LendingService validates and executes checkout, return and renewal
// against the store, and broadcasts notifications for each.
type LendingService struct {
	store    *Store
	policies Config
	notifier *Notifier
	log      zerolog.Logger
}

// NewLendingService wires a lending core. The notifier is shared with the
// reservation core; the logger is injected per the construct-once,
// share-by-reference lifecycle.
func NewLendingService(store *Store, cfg Config, notifier *Notifier, log zerolog.Logger) *LendingService {
	return &LendingService{store: store, policies: cfg, notifier: notifier, log: log}
}

// Checkout lends an AVAILABLE book to a patron and returns the new
// borrowing record. The due date is the checkout date plus the patron
// type's max borrow days.
func (s *LendingService) Checkout(patronID, isbn, branchID string) (*BorrowingRecord, error) {
	patron, ok := s.store.Patron(patronID)
	if !ok {
		s.log.Error().Str("patron", patronID).Msg("checkout: patron not found")
		return nil, &NotFoundError{Resource: "patron", ID: patronID}
	}

	policy := s.policies.Policy(patron.Type)
	if len(patron.Borrowed) >= policy.MaxBooks {
		s.log.Warn().Str("patron", patronID).Int("limit", policy.MaxBooks).Msg("checkout: borrowing limit reached")
		return nil, fmt.Errorf("patron %s holds %d of %d books: %w",
			patronID, len(patron.Borrowed), policy.MaxBooks, ErrLimitExceeded)
	}

	book, ok := s.store.Book(isbn)
	if !ok {
		s.log.Error().Str("isbn", isbn).Msg("checkout: book not found")
		return nil, &NotFoundError{Resource: "book", ID: isbn}
	}
	if book.Status != StatusAvailable {
		s.log.Warn().Str("isbn", isbn).Str("status", string(book.Status)).Msg("checkout: book not available")
		return nil, fmt.Errorf("book %s is %s: %w", isbn, book.Status, ErrNotAvailable)
	}

	now := s.store.Now()
	record := &BorrowingRecord{
		ID:           NewRecordID(),
		PatronID:     patronID,
		ISBN:         isbn,
		BranchID:     branchID,
		CheckoutDate: now,
		DueDate:      now.AddDate(0, 0, policy.MaxBorrowDays),
	}

	book.Status = StatusCheckedOut
	s.store.SaveBook(book)

	patron.Borrowed = append(patron.Borrowed, isbn)
	patron.History = append(patron.History, *record)
	s.store.SavePatron(patron)

	s.store.SaveRecord(record)

	s.log.Info().Str("title", book.Title).Str("patron", patron.Name).Msg("book checked out")
	s.notifier.Broadcast(fmt.Sprintf("Book %q checked out successfully. Due date: %s",
		book.Title, record.DueDate.Format(dateLayout)))

	return record, nil
}

// Return closes the open loan for the (patron, isbn) pair, makes the book
// AVAILABLE again and broadcasts a return notice. The notice differs when
// the loan came back late.
func (s *LendingService) Return(isbn, patronID string) error {
	patron, ok := s.store.Patron(patronID)
	if !ok {
		s.log.Error().Str("patron", patronID).Msg("return: patron not found")
		return &NotFoundError{Resource: "patron", ID: patronID}
	}

	book, ok := s.store.Book(isbn)
	if !ok {
		s.log.Error().Str("isbn", isbn).Msg("return: book not found")
		return &NotFoundError{Resource: "book", ID: isbn}
	}

	record, err := s.openRecord(patronID, isbn)
	if err != nil {
		return err
	}

	now := s.store.Now()
	wasOverdue := now.After(record.DueDate)
	record.ReturnDate = &now
	s.store.SaveRecord(record)

	book.Status = StatusAvailable
	s.store.SaveBook(book)

	patron.Borrowed = removeFirst(patron.Borrowed, isbn)
	s.store.SavePatron(patron)

	s.log.Info().Str("title", book.Title).Str("patron", patron.Name).Bool("overdue", wasOverdue).Msg("book returned")
	if wasOverdue {
		s.notifier.Broadcast(fmt.Sprintf("Book %q was returned late. Please check for any late fees.", book.Title))
	} else {
		s.notifier.Broadcast(fmt.Sprintf("Book %q returned successfully. Thank you!", book.Title))
	}
	return nil
}

// Renew extends the open loan by the patron type's max borrow days,
// counted from the current due date rather than from today.
//
// Renewal deliberately does not consult the reservation queue; a waiting
// reservation does not block it.
func (s *LendingService) Renew(isbn, patronID string) error {
	record, err := s.openRecord(patronID, isbn)
	if err != nil {
		return err
	}

	book, ok := s.store.Book(isbn)
	if !ok {
		return &NotFoundError{Resource: "book", ID: isbn}
	}
	patron, ok := s.store.Patron(patronID)
	if !ok {
		return &NotFoundError{Resource: "patron", ID: patronID}
	}

	policy := s.policies.Policy(patron.Type)
	record.DueDate = record.DueDate.AddDate(0, 0, policy.MaxBorrowDays)
	s.store.SaveRecord(record)

	s.log.Info().Str("title", book.Title).Str("patron", patron.Name).
		Str("due", record.DueDate.Format(dateLayout)).Msg("book renewed")
	s.notifier.Broadcast(fmt.Sprintf("Book %q renewed successfully. New due date: %s",
		book.Title, record.DueDate.Format(dateLayout)))
	return nil
}

// openRecord finds the first open borrowing record for the pair, oldest
// checkout first.
func (s *LendingService) openRecord(patronID, isbn string) (*BorrowingRecord, error) {
	for _, r := range s.store.RecordsByPatron(patronID) {
		if r.ISBN == isbn && !r.Returned() {
			return r, nil
		}
	}
	s.log.Warn().Str("patron", patronID).Str("isbn", isbn).Msg("no open borrowing record")
	return nil, fmt.Errorf("patron %s, book %s: %w", patronID, isbn, ErrNoActiveLoan)
}

// BorrowingHistory returns every record for a patron, oldest first.
func (s *LendingService) BorrowingHistory(patronID string) []*BorrowingRecord {
	return s.store.RecordsByPatron(patronID)
}

// ActiveBorrowings returns all open loans.
func (s *LendingService) ActiveBorrowings() []*BorrowingRecord {
	return s.store.ActiveRecords()
}

// OverdueBorrowings returns all open loans past their due date.
func (s *LendingService) OverdueBorrowings() []*BorrowingRecord {
	return s.store.OverdueRecords()
}
