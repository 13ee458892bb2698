package library

import (
	"fmt"

	"github.com/rs/zerolog"
)

// NewStudent registers a student patron with a fresh id.
func NewStudent(name, email, phone string) *Patron {
	return newPatron(name, email, phone, PatronStudent)
}

// NewFaculty registers a faculty patron with a fresh id.
func NewFaculty(name, email, phone string) *Patron {
	return newPatron(name, email, phone, PatronFaculty)
}

// NewGeneralMember registers a general-membership patron with a fresh id.
func NewGeneralMember(name, email, phone string) *Patron {
	return newPatron(name, email, phone, PatronGeneral)
}

func newPatron(name, email, phone string, t PatronType) *Patron {
	return &Patron{
		ID:    NewPatronID(),
		Name:  name,
		Email: email,
		Phone: phone,
		Type:  t,
	}
}

// PatronService manages member registration and contact details.
type PatronService struct {
	store *Store
	log   zerolog.Logger
}

// NewPatronService wires a patron service over the store.
func NewPatronService(store *Store, log zerolog.Logger) *PatronService {
	return &PatronService{store: store, log: log}
}

// AddPatron registers a new member. The id must be unused.
func (s *PatronService) AddPatron(p *Patron) error {
	if s.store.HasPatron(p.ID) {
		s.log.Warn().Str("patron", p.ID).Msg("patron already exists")
		return fmt.Errorf("patron %s: %w", p.ID, ErrAlreadyExists)
	}
	s.store.SavePatron(p)
	s.log.Info().Str("name", p.Name).Str("patron", p.ID).Msg("patron added")
	return nil
}

// UpdatePatron rewrites a member's contact details.
func (s *PatronService) UpdatePatron(patronID, name, email, phone string) error {
	patron, ok := s.store.Patron(patronID)
	if !ok {
		return &NotFoundError{Resource: "patron", ID: patronID}
	}
	patron.Name = name
	patron.Email = email
	patron.Phone = phone
	s.store.SavePatron(patron)
	s.log.Info().Str("patron", patronID).Msg("patron updated")
	return nil
}

// UpdatePatronType reclassifies a member, changing which loan policy
// applies to future checkouts.
func (s *PatronService) UpdatePatronType(patronID string, t PatronType) error {
	patron, ok := s.store.Patron(patronID)
	if !ok {
		return &NotFoundError{Resource: "patron", ID: patronID}
	}
	patron.Type = t
	s.store.SavePatron(patron)
	s.log.Info().Str("patron", patronID).Str("type", string(t)).Msg("patron type updated")
	return nil
}

// Patron fetches a single member.
func (s *PatronService) Patron(patronID string) (*Patron, error) {
	patron, ok := s.store.Patron(patronID)
	if !ok {
		return nil, &NotFoundError{Resource: "patron", ID: patronID}
	}
	return patron, nil
}

// AllPatrons returns all members in id order.
func (s *PatronService) AllPatrons() []*Patron { return s.store.Patrons() }

// RemovePatron deletes a member. A member still holding books cannot be
// removed.
func (s *PatronService) RemovePatron(patronID string) error {
	patron, ok := s.store.Patron(patronID)
	if !ok {
		return &NotFoundError{Resource: "patron", ID: patronID}
	}
	if len(patron.Borrowed) > 0 {
		s.log.Warn().Str("patron", patronID).Msg("cannot remove patron with borrowed books")
		return fmt.Errorf("patron %s: %w", patronID, ErrHasBorrowedBooks)
	}
	s.store.DeletePatron(patronID)
	s.log.Info().Str("name", patron.Name).Str("patron", patronID).Msg("patron removed")
	return nil
}

// Count returns the number of registered members.
func (s *PatronService) Count() int { return len(s.store.Patrons()) }
