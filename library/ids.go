package library

import (
	"strings"

	"github.com/google/uuid"
)

// Entity ids are short prefixed tokens, e.g. "PT-3F2A91CD". The prefix makes
// log lines and CLI output self-describing. Books carry no generated id;
// the ISBN is their identity.

func NewPatronID() string      { return newID("PT") }
func NewBranchID() string      { return newID("BR") }
func NewRecordID() string      { return newID("RC") }
func NewReservationID() string { return newID("RS") }

func newID(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}
