package library

import "time"

// BookStatus tracks where a book is in its circulation lifecycle.
// A book holds exactly one status at a time.
type BookStatus string

const (
	StatusAvailable   BookStatus = "AVAILABLE"
	StatusCheckedOut  BookStatus = "CHECKED_OUT"
	StatusReserved    BookStatus = "RESERVED"
	StatusMaintenance BookStatus = "MAINTENANCE"
	StatusLost        BookStatus = "LOST"
)

// Book represents a title/edition in the catalog, identified by ISBN.
type Book struct {
	ISBN            string     `json:"isbn"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	PublicationYear int        `json:"publication_year"`
	Status          BookStatus `json:"status"`
	BranchID        string     `json:"branch_id"`
}

// NewBook returns a catalog entry starting out AVAILABLE at the given branch.
func NewBook(isbn, title, author string, year int, branchID string) *Book {
	return &Book{
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		PublicationYear: year,
		Status:          StatusAvailable,
		BranchID:        branchID,
	}
}

// PatronType classifies members and selects their loan policy.
type PatronType string

const (
	PatronStudent PatronType = "STUDENT"
	PatronFaculty PatronType = "FACULTY"
	PatronGeneral PatronType = "GENERAL"
)

// Patron represents a registered library member.
type Patron struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Phone string     `json:"phone"`
	Type  PatronType `json:"type"`

	// History holds every borrowing record ever created for this patron,
	// in checkout order. Records are never removed.
	History []BorrowingRecord `json:"history"`

	// Borrowed and Reserved hold the ISBNs currently checked out to or
	// reserved by this patron.
	Borrowed []string `json:"borrowed"`
	Reserved []string `json:"reserved"`
}

// HasBorrowed reports whether the patron currently holds the given ISBN.
func (p *Patron) HasBorrowed(isbn string) bool {
	for _, b := range p.Borrowed {
		if b == isbn {
			return true
		}
	}
	return false
}

// BorrowingRecord captures a single checkout. It is closed by setting
// ReturnDate and is kept forever afterwards.
type BorrowingRecord struct {
	ID           string     `json:"id"`
	PatronID     string     `json:"patron_id"`
	ISBN         string     `json:"isbn"`
	BranchID     string     `json:"branch_id"`
	CheckoutDate time.Time  `json:"checkout_date"`
	DueDate      time.Time  `json:"due_date"`
	ReturnDate   *time.Time `json:"return_date,omitempty"`
}

// Returned reports whether the book has been handed back.
func (r *BorrowingRecord) Returned() bool { return r.ReturnDate != nil }

// OverdueAt reports whether the loan is open and past due at the given time.
func (r *BorrowingRecord) OverdueAt(now time.Time) bool {
	return r.ReturnDate == nil && now.After(r.DueDate)
}

// ReservationStatus tracks a reservation through its lifecycle. The status
// only advances; see the transitions in ReservationService.
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "ACTIVE"
	ReservationNotified  ReservationStatus = "NOTIFIED"
	ReservationFulfilled ReservationStatus = "FULFILLED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	// ReservationExpired is declared for an expiry policy that no operation
	// currently drives; nothing sets it.
	ReservationExpired ReservationStatus = "EXPIRED"
)

// Reservation is one patron's place in a book's wait queue.
type Reservation struct {
	ID         string            `json:"id"`
	PatronID   string            `json:"patron_id"`
	ISBN       string            `json:"isbn"`
	CreatedAt  time.Time         `json:"created_at"`
	Status     ReservationStatus `json:"status"`
	NotifiedAt *time.Time        `json:"notified_at,omitempty"`
}

// Branch represents one physical library location. Inventory lists the
// ISBNs shelved there; it must agree with each book's BranchID, which the
// transfer operation enforces.
type Branch struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Inventory []string `json:"inventory"`
}

// AddToInventory appends an ISBN to the branch's shelf list.
func (b *Branch) AddToInventory(isbn string) {
	b.Inventory = append(b.Inventory, isbn)
}

// RemoveFromInventory drops the first matching ISBN from the shelf list.
func (b *Branch) RemoveFromInventory(isbn string) {
	b.Inventory = removeFirst(b.Inventory, isbn)
}

// removeFirst removes the first occurrence of s, preserving order.
func removeFirst(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
