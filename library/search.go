package library

import "strings"

// Matcher decides whether a book matches a search query. Concrete matchers
// are plain function values passed into BookService.Search, one field per
// matcher, all case-insensitive substring checks.
type Matcher func(b *Book, query string) bool

// MatchTitle matches against the book title.
func MatchTitle(b *Book, query string) bool {
	return containsFold(b.Title, query)
}

// MatchAuthor matches against the author name.
func MatchAuthor(b *Book, query string) bool {
	return containsFold(b.Author, query)
}

// MatchISBN matches against the ISBN.
func MatchISBN(b *Book, query string) bool {
	return containsFold(b.ISBN, query)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
