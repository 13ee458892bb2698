package library

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ReservationService maintains one FIFO wait queue per ISBN plus a global
// id index. Reservations advance ACTIVE -> NOTIFIED -> FULFILLED, or drop
// out via CANCELLED; cancel and fulfill remove the entry from its queue but
// the record stays in the id index.
type ReservationService struct {
	store    *Store
	queues   map[string][]*Reservation
	byID     map[string]*Reservation
	notifier *Notifier
	log      zerolog.Logger
}

// NewReservationService wires a reservation core sharing the lending
// notifier.
func NewReservationService(store *Store, notifier *Notifier, log zerolog.Logger) *ReservationService {
	return &ReservationService{
		store:    store,
		queues:   make(map[string][]*Reservation),
		byID:     make(map[string]*Reservation),
		notifier: notifier,
		log:      log,
	}
}

// Reserve places the patron at the tail of the book's wait queue. Queue
// order is strict arrival order with no priority by patron type.
// Reserving an AVAILABLE book fails; there is nothing to wait for.
func (s *ReservationService) Reserve(patronID, isbn string) (*Reservation, error) {
	patron, ok := s.store.Patron(patronID)
	if !ok {
		s.log.Error().Str("patron", patronID).Msg("reserve: patron not found")
		return nil, &NotFoundError{Resource: "patron", ID: patronID}
	}

	book, ok := s.store.Book(isbn)
	if !ok {
		s.log.Error().Str("isbn", isbn).Msg("reserve: book not found")
		return nil, &NotFoundError{Resource: "book", ID: isbn}
	}

	if book.Status == StatusAvailable {
		s.log.Warn().Str("isbn", isbn).Msg("reserve: book is available, no need to reserve")
		return nil, fmt.Errorf("book %s is available for checkout: %w", isbn, ErrNotAvailable)
	}

	for _, r := range s.queues[isbn] {
		if r.PatronID == patronID && r.Status == ReservationActive {
			s.log.Warn().Str("patron", patronID).Str("isbn", isbn).Msg("reserve: duplicate reservation")
			return nil, fmt.Errorf("patron %s already waits for book %s: %w",
				patronID, isbn, ErrDuplicateReservation)
		}
	}

	res := &Reservation{
		ID:        NewReservationID(),
		PatronID:  patronID,
		ISBN:      isbn,
		CreatedAt: s.store.Now(),
		Status:    ReservationActive,
	}
	s.queues[isbn] = append(s.queues[isbn], res)
	s.byID[res.ID] = res

	patron.Reserved = append(patron.Reserved, isbn)
	s.store.SavePatron(patron)

	s.log.Info().Str("title", book.Title).Str("patron", patron.Name).
		Int("position", len(s.queues[isbn])).Msg("book reserved")

	out := *res
	return &out, nil
}

// Cancel marks a reservation CANCELLED and removes it from its queue,
// shifting everyone behind it forward.
func (s *ReservationService) Cancel(reservationID string) error {
	res, ok := s.byID[reservationID]
	if !ok {
		s.log.Error().Str("reservation", reservationID).Msg("cancel: reservation not found")
		return &NotFoundError{Resource: "reservation", ID: reservationID}
	}

	res.Status = ReservationCancelled
	s.removeFromQueue(res)

	if patron, ok := s.store.Patron(res.PatronID); ok {
		patron.Reserved = removeFirst(patron.Reserved, res.ISBN)
		s.store.SavePatron(patron)
	}

	s.log.Info().Str("reservation", reservationID).Msg("reservation cancelled")
	return nil
}

// NotifyNextInQueue inspects the head of the book's queue without
// dequeuing. An ACTIVE head becomes NOTIFIED, the book flips to RESERVED
// and a pickup notice is broadcast. An empty queue, or a head already
// notified, is a no-op; callers advance the queue through Fulfill or
// Cancel.
func (s *ReservationService) NotifyNextInQueue(isbn string) {
	queue := s.queues[isbn]
	if len(queue) == 0 {
		return
	}

	head := queue[0]
	if head.Status != ReservationActive {
		return
	}

	head.Status = ReservationNotified
	now := s.store.Now()
	head.NotifiedAt = &now

	patron, okPatron := s.store.Patron(head.PatronID)
	book, okBook := s.store.Book(isbn)
	if !okPatron || !okBook {
		return
	}

	book.Status = StatusReserved
	s.store.SaveBook(book)

	s.log.Info().Str("title", book.Title).Str("patron", patron.Name).Msg("reservation pickup notice sent")
	s.notifier.Broadcast(fmt.Sprintf("Good news! The book %q you reserved is now available. Please collect it within 2 days.",
		book.Title))
}

// Fulfill completes the head reservation when its patron checks the book
// out. If the head belongs to a different patron the queue is left
// untouched and ErrReservationMismatch is returned. An empty queue is a
// no-op.
func (s *ReservationService) Fulfill(isbn, patronID string) error {
	queue := s.queues[isbn]
	if len(queue) == 0 {
		return nil
	}

	head := queue[0]
	if head.PatronID != patronID {
		s.log.Warn().Str("isbn", isbn).Str("patron", patronID).
			Str("holder", head.PatronID).Msg("fulfill: head reservation held by another patron")
		return fmt.Errorf("next reservation for book %s: %w", isbn, ErrReservationMismatch)
	}

	s.queues[isbn] = queue[1:]
	head.Status = ReservationFulfilled

	if patron, ok := s.store.Patron(patronID); ok {
		patron.Reserved = removeFirst(patron.Reserved, isbn)
		s.store.SavePatron(patron)
	}

	s.log.Info().Str("isbn", isbn).Str("patron", patronID).Msg("reservation fulfilled")
	return nil
}

// QueuePosition returns the 1-based position of a reservation in its
// queue, or -1 when the reservation or its queue is unknown.
func (s *ReservationService) QueuePosition(reservationID string) int {
	res, ok := s.byID[reservationID]
	if !ok {
		return -1
	}
	for i, r := range s.queues[res.ISBN] {
		if r == res {
			return i + 1
		}
	}
	return -1
}

// ReservationsForBook returns a snapshot of the book's queue in order.
func (s *ReservationService) ReservationsForBook(isbn string) []Reservation {
	queue := s.queues[isbn]
	out := make([]Reservation, 0, len(queue))
	for _, r := range queue {
		out = append(out, *r)
	}
	return out
}

// ReservationsForPatron returns the patron's pending reservations, ACTIVE
// or NOTIFIED only, in reservation id order.
func (s *ReservationService) ReservationsForPatron(patronID string) []Reservation {
	var out []Reservation
	for _, id := range sortedKeys(s.byID) {
		r := s.byID[id]
		if r.PatronID != patronID {
			continue
		}
		if r.Status == ReservationActive || r.Status == ReservationNotified {
			out = append(out, *r)
		}
	}
	return out
}

// AllReservations returns every reservation ever created, id order.
func (s *ReservationService) AllReservations() []Reservation {
	out := make([]Reservation, 0, len(s.byID))
	for _, id := range sortedKeys(s.byID) {
		out = append(out, *s.byID[id])
	}
	return out
}

func (s *ReservationService) removeFromQueue(res *Reservation) {
	queue := s.queues[res.ISBN]
	for i, r := range queue {
		if r == res {
			s.queues[res.ISBN] = append(queue[:i], queue[i+1:]...)
			return
		}
	}
}
