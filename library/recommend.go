package library

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// RecommendationService derives book suggestions from borrowing history.
// All methods are pure reads. Unlike the other services an unknown patron
// is not an error here: it is logged and an empty list comes back, so
// callers must not rely on an error signal.
type RecommendationService struct {
	store *Store
	log   zerolog.Logger
}

// NewRecommendationService wires a recommendation engine over the store.
func NewRecommendationService(store *Store, log zerolog.Logger) *RecommendationService {
	return &RecommendationService{store: store, log: log}
}

// Recommendations suggests up to limit books the patron has not borrowed,
// by authors they borrow most often. Ties in author frequency break by
// ISBN, the catalog scan order. A patron with no history falls back to
// the popularity ranking.
func (s *RecommendationService) Recommendations(patronID string, limit int) []*Book {
	patron, ok := s.store.Patron(patronID)
	if !ok {
		s.log.Error().Str("patron", patronID).Msg("recommend: patron not found")
		return nil
	}

	if len(patron.History) == 0 {
		return s.PopularBooks(limit)
	}

	authorFreq := make(map[string]int)
	for _, rec := range patron.History {
		if book, ok := s.store.Book(rec.ISBN); ok {
			authorFreq[book.Author]++
		}
	}
	borrowed := historyISBNs(patron)

	var out []*Book
	for _, book := range s.store.Books() {
		if borrowed[book.ISBN] {
			continue
		}
		if authorFreq[book.Author] == 0 {
			continue
		}
		out = append(out, book)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return authorFreq[out[i].Author] > authorFreq[out[j].Author]
	})
	out = capAt(out, limit)

	s.log.Info().Str("patron", patronID).Int("count", len(out)).Msg("content recommendations generated")
	return out
}

// CollaborativeRecommendations scores candidate books by how many similar
// patrons borrowed them. Similarity between two patrons is the size of the
// overlap of their borrowed-ISBN sets; patrons with no overlap contribute
// nothing. A candidate's score is the sum of the similarity weights of
// every similar patron who borrowed it.
func (s *RecommendationService) CollaborativeRecommendations(patronID string, limit int) []*Book {
	patron, ok := s.store.Patron(patronID)
	if !ok {
		s.log.Error().Str("patron", patronID).Msg("recommend: patron not found")
		return nil
	}

	if len(patron.History) == 0 {
		return s.PopularBooks(limit)
	}

	target := historyISBNs(patron)

	bookScores := make(map[string]int)
	for _, other := range s.store.Patrons() {
		if other.ID == patronID {
			continue
		}

		similarity := 0
		otherISBNs := historyISBNs(other)
		for isbn := range otherISBNs {
			if target[isbn] {
				similarity++
			}
		}
		if similarity == 0 {
			continue
		}

		for isbn := range otherISBNs {
			if !target[isbn] {
				bookScores[isbn] += similarity
			}
		}
	}

	out := s.rankByScore(bookScores, limit)
	s.log.Info().Str("patron", patronID).Int("count", len(out)).Msg("collaborative recommendations generated")
	return out
}

// PopularBooks ranks the catalog by total borrow occurrences across every
// record ever created, returned or not.
func (s *RecommendationService) PopularBooks(limit int) []*Book {
	freq := make(map[string]int)
	for _, rec := range s.store.Records() {
		freq[rec.ISBN]++
	}
	return s.rankByScore(freq, limit)
}

// RecommendationsByAuthor lists books by the author (case-insensitive exact
// match) the patron has not yet borrowed, in catalog order.
func (s *RecommendationService) RecommendationsByAuthor(patronID, author string, limit int) []*Book {
	patron, ok := s.store.Patron(patronID)
	if !ok {
		s.log.Error().Str("patron", patronID).Msg("recommend: patron not found")
		return nil
	}

	borrowed := historyISBNs(patron)
	var out []*Book
	for _, book := range s.store.Books() {
		if !strings.EqualFold(book.Author, author) {
			continue
		}
		if borrowed[book.ISBN] {
			continue
		}
		out = append(out, book)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// rankByScore maps ISBN scores onto catalog books, highest score first,
// ties by ISBN. ISBNs missing from the catalog are skipped.
func (s *RecommendationService) rankByScore(scores map[string]int, limit int) []*Book {
	isbns := make([]string, 0, len(scores))
	for isbn := range scores {
		isbns = append(isbns, isbn)
	}
	sort.Strings(isbns)
	sort.SliceStable(isbns, func(i, j int) bool {
		return scores[isbns[i]] > scores[isbns[j]]
	})

	var out []*Book
	for _, isbn := range isbns {
		if book, ok := s.store.Book(isbn); ok {
			out = append(out, book)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

func historyISBNs(p *Patron) map[string]bool {
	set := make(map[string]bool, len(p.History))
	for _, rec := range p.History {
		set[rec.ISBN] = true
	}
	return set
}

func capAt(books []*Book, limit int) []*Book {
	if limit > 0 && len(books) > limit {
		return books[:limit]
	}
	return books
}
