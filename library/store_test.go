package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreReturnsBookCopies(t *testing.T) {
	s := NewStore()
	s.SaveBook(NewBook("978-1", "Dune", "Frank Herbert", 1965, "BR-1"))

	got, ok := s.Book("978-1")
	require.True(t, ok)
	got.Title = "mutated"

	again, _ := s.Book("978-1")
	assert.Equal(t, "Dune", again.Title)
}

func TestStoreReturnsPatronDeepCopies(t *testing.T) {
	s := NewStore()
	p := NewStudent("Ada", "ada@example.com", "555-0100")
	p.Borrowed = []string{"978-1"}
	p.History = []BorrowingRecord{{ID: "RC-1", ISBN: "978-1", PatronID: p.ID}}
	s.SavePatron(p)

	got, ok := s.Patron(p.ID)
	require.True(t, ok)
	got.Borrowed[0] = "mutated"
	got.History[0].ISBN = "mutated"

	again, _ := s.Patron(p.ID)
	assert.Equal(t, "978-1", again.Borrowed[0])
	assert.Equal(t, "978-1", again.History[0].ISBN)
}

func TestStoreListsBooksSortedByISBN(t *testing.T) {
	s := NewStore()
	for _, isbn := range []string{"978-C", "978-A", "978-B"} {
		s.SaveBook(NewBook(isbn, "T", "A", 2000, "BR-1"))
	}

	var got []string
	for _, b := range s.Books() {
		got = append(got, b.ISBN)
	}
	assert.Equal(t, []string{"978-A", "978-B", "978-C"}, got)
}

func TestStorePredicateFinders(t *testing.T) {
	s := NewStore()
	a := NewBook("978-A", "Dune", "Frank Herbert", 1965, "BR-1")
	b := NewBook("978-B", "Emma", "Jane Austen", 1815, "BR-2")
	b.Status = StatusCheckedOut
	s.SaveBook(a)
	s.SaveBook(b)

	available := s.BooksByStatus(StatusAvailable)
	require.Len(t, available, 1)
	assert.Equal(t, "978-A", available[0].ISBN)

	atBranch := s.BooksByBranch("BR-2")
	require.Len(t, atBranch, 1)
	assert.Equal(t, "978-B", atBranch[0].ISBN)
}

func TestStoreDeleteBook(t *testing.T) {
	s := NewStore()
	s.SaveBook(NewBook("978-1", "Dune", "Frank Herbert", 1965, "BR-1"))

	assert.True(t, s.DeleteBook("978-1"))
	assert.False(t, s.HasBook("978-1"))
	assert.False(t, s.DeleteBook("978-1"))
}

func TestStoreOverdueRecordsFollowClock(t *testing.T) {
	s := NewStore()
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return start })

	s.SaveRecord(&BorrowingRecord{
		ID:           "RC-1",
		PatronID:     "PT-1",
		ISBN:         "978-1",
		CheckoutDate: start,
		DueDate:      start.AddDate(0, 0, 14),
	})

	assert.Empty(t, s.OverdueRecords())

	s.SetClock(func() time.Time { return start.AddDate(0, 0, 15) })
	assert.Len(t, s.OverdueRecords(), 1)
}

func TestStoreRecordsByPatronSortedByCheckout(t *testing.T) {
	s := NewStore()
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s.SaveRecord(&BorrowingRecord{ID: "RC-2", PatronID: "PT-1", ISBN: "978-B", CheckoutDate: start.AddDate(0, 0, 5)})
	s.SaveRecord(&BorrowingRecord{ID: "RC-1", PatronID: "PT-1", ISBN: "978-A", CheckoutDate: start})
	s.SaveRecord(&BorrowingRecord{ID: "RC-3", PatronID: "PT-2", ISBN: "978-C", CheckoutDate: start})

	got := s.RecordsByPatron("PT-1")
	require.Len(t, got, 2)
	assert.Equal(t, "978-A", got[0].ISBN)
	assert.Equal(t, "978-B", got[1].ISBN)
}

func TestStoreActiveRecordsSkipReturned(t *testing.T) {
	s := NewStore()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	returned := now.AddDate(0, 0, 2)
	s.SaveRecord(&BorrowingRecord{ID: "RC-1", ISBN: "978-A", CheckoutDate: now, ReturnDate: &returned})
	s.SaveRecord(&BorrowingRecord{ID: "RC-2", ISBN: "978-B", CheckoutDate: now})

	got := s.ActiveRecords()
	require.Len(t, got, 1)
	assert.Equal(t, "978-B", got[0].ISBN)
}
