package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// borrowAndReturn runs a full loan cycle so the book is free for the next
// patron while the record stays in the history.
func borrowAndReturn(t *testing.T, lib *Library, patronID, isbn, branchID string) {
	t.Helper()
	_, err := lib.Lending.Checkout(patronID, isbn, branchID)
	require.NoError(t, err)
	require.NoError(t, lib.Lending.Return(isbn, patronID))
}

func isbns(books []*Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ISBN
	}
	return out
}

func TestPopularBooksRanksByBorrowCount(t *testing.T) {
	lib := newTestLibrary(t)
	branch := addTestBranch(t, lib)
	addTestBook(t, lib, "978-A", "Dune", "Frank Herbert", branch.ID)
	addTestBook(t, lib, "978-B", "Emma", "Jane Austen", branch.ID)

	readers := []*Patron{
		addTestPatron(t, lib, NewFaculty("R1", "r1@example.com", "555-1")),
		addTestPatron(t, lib, NewFaculty("R2", "r2@example.com", "555-2")),
		addTestPatron(t, lib, NewFaculty("R3", "r3@example.com", "555-3")),
	}

	for _, r := range readers {
		borrowAndReturn(t, lib, r.ID, "978-A", branch.ID)
	}
	borrowAndReturn(t, lib, readers[0].ID, "978-B", branch.ID)

	top := lib.Recommendations.PopularBooks(1)
	require.Len(t, top, 1)
	assert.Equal(t, "978-A", top[0].ISBN)

	all := lib.Recommendations.PopularBooks(0)
	assert.Equal(t, []string{"978-A", "978-B"}, isbns(all))
}

func TestRecommendationsFavorFrequentAuthors(t *testing.T) {
	lib := newTestLibrary(t)
	branch := addTestBranch(t, lib)
	addTestBook(t, lib, "978-1", "1984", "George Orwell", branch.ID)
	addTestBook(t, lib, "978-2", "Animal Farm", "George Orwell", branch.ID)
	addTestBook(t, lib, "978-3", "The Hobbit", "J.R.R. Tolkien", branch.ID)
	addTestBook(t, lib, "978-4", "Homage to Catalonia", "George Orwell", branch.ID)
	addTestBook(t, lib, "978-5", "The Silmarillion", "J.R.R. Tolkien", branch.ID)

	patron := addTestPatron(t, lib, NewFaculty("Ada", "ada@example.com", "555-0100"))
	borrowAndReturn(t, lib, patron.ID, "978-1", branch.ID)
	borrowAndReturn(t, lib, patron.ID, "978-2", branch.ID)
	borrowAndReturn(t, lib, patron.ID, "978-3", branch.ID)

	got := lib.Recommendations.Recommendations(patron.ID, 0)

	// Orwell appears twice in the history, Tolkien once, and every
	// already-borrowed book is excluded.
	assert.Equal(t, []string{"978-4", "978-5"}, isbns(got))
}

func TestRecommendationsFallBackToPopularity(t *testing.T) {
	lib := newTestLibrary(t)
	branch := addTestBranch(t, lib)
	addTestBook(t, lib, "978-A", "Dune", "Frank Herbert", branch.ID)
	reader := addTestPatron(t, lib, NewFaculty("R1", "r1@example.com", "555-1"))
	borrowAndReturn(t, lib, reader.ID, "978-A", branch.ID)

	newcomer := addTestPatron(t, lib, NewStudent("New", "new@example.com", "555-9"))
	got := lib.Recommendations.Recommendations(newcomer.ID, 0)
	assert.Equal(t, []string{"978-A"}, isbns(got))
}

func TestRecommendationsUnknownPatron(t *testing.T) {
	lib := newTestLibrary(t)
	assert.Empty(t, lib.Recommendations.Recommendations("PT-MISSING", 5))
	assert.Empty(t, lib.Recommendations.CollaborativeRecommendations("PT-MISSING", 5))
	assert.Empty(t, lib.Recommendations.RecommendationsByAuthor("PT-MISSING", "Orwell", 5))
}

func TestCollaborativeRecommendations(t *testing.T) {
	lib := newTestLibrary(t)
	branch := addTestBranch(t, lib)
	for _, isbn := range []string{"978-A", "978-B", "978-C", "978-D"} {
		addTestBook(t, lib, isbn, "Title "+isbn, "Anon", branch.ID)
	}

	target := addTestPatron(t, lib, NewFaculty("Target", "t@example.com", "555-0"))
	near := addTestPatron(t, lib, NewFaculty("Near", "n@example.com", "555-1"))
	far := addTestPatron(t, lib, NewFaculty("Far", "f@example.com", "555-2"))

	// Target reads A and B. Near shares both and also read C; Far shares
	// only B and also read D. C should outrank D.
	borrowAndReturn(t, lib, target.ID, "978-A", branch.ID)
	borrowAndReturn(t, lib, target.ID, "978-B", branch.ID)
	borrowAndReturn(t, lib, near.ID, "978-A", branch.ID)
	borrowAndReturn(t, lib, near.ID, "978-B", branch.ID)
	borrowAndReturn(t, lib, near.ID, "978-C", branch.ID)
	borrowAndReturn(t, lib, far.ID, "978-B", branch.ID)
	borrowAndReturn(t, lib, far.ID, "978-D", branch.ID)

	got := lib.Recommendations.CollaborativeRecommendations(target.ID, 0)
	assert.Equal(t, []string{"978-C", "978-D"}, isbns(got))
}

func TestCollaborativeIgnoresDissimilarPatrons(t *testing.T) {
	lib := newTestLibrary(t)
	branch := addTestBranch(t, lib)
	addTestBook(t, lib, "978-A", "Dune", "Frank Herbert", branch.ID)
	addTestBook(t, lib, "978-B", "Emma", "Jane Austen", branch.ID)

	target := addTestPatron(t, lib, NewFaculty("Target", "t@example.com", "555-0"))
	stranger := addTestPatron(t, lib, NewFaculty("Stranger", "s@example.com", "555-1"))

	borrowAndReturn(t, lib, target.ID, "978-A", branch.ID)
	borrowAndReturn(t, lib, stranger.ID, "978-B", branch.ID)

	assert.Empty(t, lib.Recommendations.CollaborativeRecommendations(target.ID, 0))
}

func TestRecommendationsByAuthor(t *testing.T) {
	lib := newTestLibrary(t)
	branch := addTestBranch(t, lib)
	addTestBook(t, lib, "978-1", "1984", "George Orwell", branch.ID)
	addTestBook(t, lib, "978-2", "Animal Farm", "George Orwell", branch.ID)
	addTestBook(t, lib, "978-3", "The Hobbit", "J.R.R. Tolkien", branch.ID)

	patron := addTestPatron(t, lib, NewFaculty("Ada", "ada@example.com", "555-0100"))
	borrowAndReturn(t, lib, patron.ID, "978-1", branch.ID)

	got := lib.Recommendations.RecommendationsByAuthor(patron.ID, "george orwell", 0)
	assert.Equal(t, []string{"978-2"}, isbns(got))
}
