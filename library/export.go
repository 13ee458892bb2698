package library

import (
	"io"

	"github.com/goccy/go-json"
)

// Snapshot is a point-in-time JSON view of the complete library state,
// meant for reports and demo inspection rather than durable persistence.
type Snapshot struct {
	Books        []*Book            `json:"books"`
	Patrons      []*Patron          `json:"patrons"`
	Branches     []*Branch          `json:"branches"`
	Records      []*BorrowingRecord `json:"records"`
	Reservations []Reservation      `json:"reservations"`
}

// Snapshot captures the current state of every entity, id-sorted.
func (l *Library) Snapshot() *Snapshot {
	return &Snapshot{
		Books:        l.store.Books(),
		Patrons:      l.store.Patrons(),
		Branches:     l.store.Branches(),
		Records:      l.store.Records(),
		Reservations: l.Reservations.AllReservations(),
	}
}

// WriteSnapshot renders the snapshot as indented JSON.
func (l *Library) WriteSnapshot(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l.Snapshot())
}
