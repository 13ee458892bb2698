package library

import (
	"fmt"

	"github.com/rs/zerolog"
)

// BookService manages the catalog: add, update, remove and look up books,
// and run matcher-based searches over the whole catalog.
type BookService struct {
	store *Store
	log   zerolog.Logger
}

// NewBookService wires a catalog service over the store.
func NewBookService(store *Store, log zerolog.Logger) *BookService {
	return &BookService{store: store, log: log}
}

// AddBook registers a new book. The ISBN must be unused.
func (s *BookService) AddBook(b *Book) error {
	if s.store.HasBook(b.ISBN) {
		s.log.Warn().Str("isbn", b.ISBN).Msg("book already exists")
		return fmt.Errorf("book %s: %w", b.ISBN, ErrAlreadyExists)
	}
	s.store.SaveBook(b)
	s.log.Info().Str("title", b.Title).Str("isbn", b.ISBN).Msg("book added")
	return nil
}

// UpdateBook rewrites the mutable metadata of an existing book.
func (s *BookService) UpdateBook(isbn, title, author string, year int) error {
	book, ok := s.store.Book(isbn)
	if !ok {
		return &NotFoundError{Resource: "book", ID: isbn}
	}
	book.Title = title
	book.Author = author
	book.PublicationYear = year
	s.store.SaveBook(book)
	s.log.Info().Str("isbn", isbn).Msg("book updated")
	return nil
}

// RemoveBook deletes a book from the catalog. A checked-out copy cannot
// be removed.
func (s *BookService) RemoveBook(isbn string) error {
	book, ok := s.store.Book(isbn)
	if !ok {
		return &NotFoundError{Resource: "book", ID: isbn}
	}
	if book.Status == StatusCheckedOut {
		s.log.Warn().Str("isbn", isbn).Msg("cannot remove checked-out book")
		return fmt.Errorf("book %s is checked out: %w", isbn, ErrNotAvailable)
	}
	s.store.DeleteBook(isbn)
	s.log.Info().Str("title", book.Title).Str("isbn", isbn).Msg("book removed")
	return nil
}

// Book fetches a single book.
func (s *BookService) Book(isbn string) (*Book, error) {
	book, ok := s.store.Book(isbn)
	if !ok {
		return nil, &NotFoundError{Resource: "book", ID: isbn}
	}
	return book, nil
}

// AllBooks returns the catalog in ISBN order.
func (s *BookService) AllBooks() []*Book { return s.store.Books() }

// AvailableBooks returns the books open for checkout.
func (s *BookService) AvailableBooks() []*Book {
	return s.store.BooksByStatus(StatusAvailable)
}

// BooksByBranch returns the books currently located at a branch.
func (s *BookService) BooksByBranch(branchID string) []*Book {
	return s.store.BooksByBranch(branchID)
}

// UpdateStatus forces a book into the given status. Lending and
// reservation normally drive status; this is for MAINTENANCE and LOST.
func (s *BookService) UpdateStatus(isbn string, status BookStatus) error {
	book, ok := s.store.Book(isbn)
	if !ok {
		return &NotFoundError{Resource: "book", ID: isbn}
	}
	book.Status = status
	s.store.SaveBook(book)
	s.log.Info().Str("title", book.Title).Str("status", string(status)).Msg("book status updated")
	return nil
}

// Search filters the catalog with the given matcher. An empty query
// returns no results.
func (s *BookService) Search(query string, match Matcher) []*Book {
	if query == "" {
		return nil
	}
	var out []*Book
	for _, book := range s.store.Books() {
		if match(book, query) {
			out = append(out, book)
		}
	}
	s.log.Info().Str("query", query).Int("count", len(out)).Msg("search completed")
	return out
}

// Count returns the catalog size.
func (s *BookService) Count() int { return len(s.store.Books()) }
