package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchByTitle(t *testing.T) {
	lib := newTestLibrary(t)
	branch := addTestBranch(t, lib)
	addTestBook(t, lib, "978-1", "The Great Gatsby", "F. Scott Fitzgerald", branch.ID)
	addTestBook(t, lib, "978-2", "Great Expectations", "Charles Dickens", branch.ID)
	addTestBook(t, lib, "978-3", "Dune", "Frank Herbert", branch.ID)

	got := lib.Books.Search("great", MatchTitle)
	assert.Equal(t, []string{"978-1", "978-2"}, isbns(got))
}

func TestSearchByAuthor(t *testing.T) {
	lib := newTestLibrary(t)
	branch := addTestBranch(t, lib)
	addTestBook(t, lib, "978-1", "1984", "George Orwell", branch.ID)
	addTestBook(t, lib, "978-2", "Dune", "Frank Herbert", branch.ID)

	got := lib.Books.Search("ORWELL", MatchAuthor)
	assert.Equal(t, []string{"978-1"}, isbns(got))
}

func TestSearchByISBN(t *testing.T) {
	lib := newTestLibrary(t)
	branch := addTestBranch(t, lib)
	addTestBook(t, lib, "978-0451524935", "1984", "George Orwell", branch.ID)

	got := lib.Books.Search("0451", MatchISBN)
	assert.Len(t, got, 1)
}

func TestSearchEmptyQuery(t *testing.T) {
	lib := newTestLibrary(t)
	branch := addTestBranch(t, lib)
	addTestBook(t, lib, "978-1", "Dune", "Frank Herbert", branch.ID)

	assert.Empty(t, lib.Books.Search("", MatchTitle))
}

func TestSearchWithCustomMatcher(t *testing.T) {
	lib := newTestLibrary(t)
	branch := addTestBranch(t, lib)
	if err := lib.Books.AddBook(NewBook("978-1", "Dune", "Frank Herbert", 1965, branch.ID)); err != nil {
		t.Fatalf("add book: %v", err)
	}
	if err := lib.Books.AddBook(NewBook("978-2", "Emma", "Jane Austen", 1815, branch.ID)); err != nil {
		t.Fatalf("add book: %v", err)
	}

	before1900 := func(b *Book, _ string) bool { return b.PublicationYear < 1900 }
	got := lib.Books.Search("any", before1900)
	assert.Equal(t, []string{"978-2"}, isbns(got))
}
