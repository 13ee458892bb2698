package library

import (
	"sort"
	"time"
)

// Store holds every entity in plain in-memory maps. It assumes a single
// logical caller at a time; there is no locking.
//
// Every finder returns copies, not live views. A caller that mutates a
// returned entity must save it back for the change to take effect.
type Store struct {
	books    map[string]*Book
	patrons  map[string]*Patron
	branches map[string]*Branch
	records  map[string]*BorrowingRecord

	now func() time.Time
}

// NewStore returns an empty store using the wall clock.
func NewStore() *Store {
	return &Store{
		books:    make(map[string]*Book),
		patrons:  make(map[string]*Patron),
		branches: make(map[string]*Branch),
		records:  make(map[string]*BorrowingRecord),
		now:      time.Now,
	}
}

// SetClock replaces the store's time source. Test hook; overdue derivation
// and all service timestamps flow through it.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// Now returns the store's current time.
func (s *Store) Now() time.Time { return s.now() }

// ------------------ Books ------------------

// SaveBook upserts a book keyed by ISBN.
func (s *Store) SaveBook(b *Book) {
	s.books[b.ISBN] = cloneBook(b)
}

// Book fetches a single book by ISBN.
func (s *Store) Book(isbn string) (*Book, bool) {
	b, ok := s.books[isbn]
	if !ok {
		return nil, false
	}
	return cloneBook(b), true
}

// HasBook reports whether the ISBN is in the catalog.
func (s *Store) HasBook(isbn string) bool {
	_, ok := s.books[isbn]
	return ok
}

// DeleteBook removes a book; it reports whether anything was deleted.
func (s *Store) DeleteBook(isbn string) bool {
	_, ok := s.books[isbn]
	delete(s.books, isbn)
	return ok
}

// Books returns the whole catalog in ISBN order. The fixed order keeps
// every ranking built on top of a catalog scan deterministic.
func (s *Store) Books() []*Book {
	out := make([]*Book, 0, len(s.books))
	for _, isbn := range sortedKeys(s.books) {
		out = append(out, cloneBook(s.books[isbn]))
	}
	return out
}

// BooksByStatus returns books currently in the given status, ISBN order.
func (s *Store) BooksByStatus(status BookStatus) []*Book {
	var out []*Book
	for _, isbn := range sortedKeys(s.books) {
		if b := s.books[isbn]; b.Status == status {
			out = append(out, cloneBook(b))
		}
	}
	return out
}

// BooksByBranch returns books whose current branch matches, ISBN order.
func (s *Store) BooksByBranch(branchID string) []*Book {
	var out []*Book
	for _, isbn := range sortedKeys(s.books) {
		if b := s.books[isbn]; b.BranchID == branchID {
			out = append(out, cloneBook(b))
		}
	}
	return out
}

// ------------------ Patrons ------------------

// SavePatron upserts a patron keyed by id.
func (s *Store) SavePatron(p *Patron) {
	s.patrons[p.ID] = clonePatron(p)
}

// Patron fetches a single patron by id.
func (s *Store) Patron(id string) (*Patron, bool) {
	p, ok := s.patrons[id]
	if !ok {
		return nil, false
	}
	return clonePatron(p), true
}

// HasPatron reports whether the patron id is registered.
func (s *Store) HasPatron(id string) bool {
	_, ok := s.patrons[id]
	return ok
}

// DeletePatron removes a patron; it reports whether anything was deleted.
func (s *Store) DeletePatron(id string) bool {
	_, ok := s.patrons[id]
	delete(s.patrons, id)
	return ok
}

// Patrons returns all patrons in id order.
func (s *Store) Patrons() []*Patron {
	out := make([]*Patron, 0, len(s.patrons))
	for _, id := range sortedKeys(s.patrons) {
		out = append(out, clonePatron(s.patrons[id]))
	}
	return out
}

// ------------------ Branches ------------------

// SaveBranch upserts a branch keyed by id.
func (s *Store) SaveBranch(b *Branch) {
	s.branches[b.ID] = cloneBranch(b)
}

// Branch fetches a single branch by id.
func (s *Store) Branch(id string) (*Branch, bool) {
	b, ok := s.branches[id]
	if !ok {
		return nil, false
	}
	return cloneBranch(b), true
}

// Branches returns all branches in id order.
func (s *Store) Branches() []*Branch {
	out := make([]*Branch, 0, len(s.branches))
	for _, id := range sortedKeys(s.branches) {
		out = append(out, cloneBranch(s.branches[id]))
	}
	return out
}

// ------------------ Borrowing records ------------------

// SaveRecord upserts a borrowing record keyed by id.
func (s *Store) SaveRecord(r *BorrowingRecord) {
	s.records[r.ID] = cloneRecord(r)
}

// Record fetches a single borrowing record by id.
func (s *Store) Record(id string) (*BorrowingRecord, bool) {
	r, ok := s.records[id]
	if !ok {
		return nil, false
	}
	return cloneRecord(r), true
}

// Records returns every borrowing record ever created, id order.
func (s *Store) Records() []*BorrowingRecord {
	out := make([]*BorrowingRecord, 0, len(s.records))
	for _, id := range sortedKeys(s.records) {
		out = append(out, cloneRecord(s.records[id]))
	}
	return out
}

// RecordsByPatron returns all records for a patron, oldest checkout first.
func (s *Store) RecordsByPatron(patronID string) []*BorrowingRecord {
	var out []*BorrowingRecord
	for _, id := range sortedKeys(s.records) {
		if r := s.records[id]; r.PatronID == patronID {
			out = append(out, cloneRecord(r))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CheckoutDate.Before(out[j].CheckoutDate)
	})
	return out
}

// RecordsByISBN returns all records for a book, id order.
func (s *Store) RecordsByISBN(isbn string) []*BorrowingRecord {
	var out []*BorrowingRecord
	for _, id := range sortedKeys(s.records) {
		if r := s.records[id]; r.ISBN == isbn {
			out = append(out, cloneRecord(r))
		}
	}
	return out
}

// ActiveRecords returns all open loans (no return date yet).
func (s *Store) ActiveRecords() []*BorrowingRecord {
	var out []*BorrowingRecord
	for _, id := range sortedKeys(s.records) {
		if r := s.records[id]; !r.Returned() {
			out = append(out, cloneRecord(r))
		}
	}
	return out
}

// OverdueRecords returns open loans past their due date as of the store
// clock.
func (s *Store) OverdueRecords() []*BorrowingRecord {
	now := s.now()
	var out []*BorrowingRecord
	for _, id := range sortedKeys(s.records) {
		if r := s.records[id]; r.OverdueAt(now) {
			out = append(out, cloneRecord(r))
		}
	}
	return out
}

// ------------------ Clones ------------------

func cloneBook(b *Book) *Book {
	c := *b
	return &c
}

func clonePatron(p *Patron) *Patron {
	c := *p
	c.History = make([]BorrowingRecord, len(p.History))
	copy(c.History, p.History)
	c.Borrowed = append([]string(nil), p.Borrowed...)
	c.Reserved = append([]string(nil), p.Reserved...)
	return &c
}

func cloneBranch(b *Branch) *Branch {
	c := *b
	c.Inventory = append([]string(nil), b.Inventory...)
	return &c
}

func cloneRecord(r *BorrowingRecord) *BorrowingRecord {
	c := *r
	if r.ReturnDate != nil {
		t := *r.ReturnDate
		c.ReturnDate = &t
	}
	return &c
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
