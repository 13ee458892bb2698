package library

import "github.com/rs/zerolog"

// Library is a thin façade wiring the store, the services and the shared
// notification fan-out, keeping CLI code simple. Construct it once and
// share it by reference; every component receives the injected logger.
type Library struct {
	store    *Store
	cfg      Config
	notifier *Notifier

	Books           *BookService
	Patrons         *PatronService
	Branches        *BranchService
	Lending         *LendingService
	Reservations    *ReservationService
	Recommendations *RecommendationService
	Transfers       *TransferService
}

// New assembles a library from the config and logger.
func New(cfg Config, log zerolog.Logger) *Library {
	store := NewStore()
	notifier := NewNotifier(log)

	return &Library{
		store:    store,
		cfg:      cfg,
		notifier: notifier,

		Books:           NewBookService(store, log),
		Patrons:         NewPatronService(store, log),
		Branches:        NewBranchService(store, log),
		Lending:         NewLendingService(store, cfg, notifier, log),
		Reservations:    NewReservationService(store, notifier, log),
		Recommendations: NewRecommendationService(store, log),
		Transfers:       NewTransferService(store, log),
	}
}

// Notifier exposes the shared fan-out so callers can attach sinks.
func (l *Library) Notifier() *Notifier { return l.notifier }

// Store exposes the entity store. Mainly for catalog seeding and tests.
func (l *Library) Store() *Store { return l.store }

// Config returns the active configuration.
func (l *Library) Config() Config { return l.cfg }
