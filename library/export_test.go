package library

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCapturesWholeState(t *testing.T) {
	lib := newTestLibrary(t)
	branch := addTestBranch(t, lib)
	addTestBook(t, lib, "978-1", "Dune", "Frank Herbert", branch.ID)
	patron := addTestPatron(t, lib, NewStudent("Ada", "ada@example.com", "555-0100"))
	_, err := lib.Lending.Checkout(patron.ID, "978-1", branch.ID)
	require.NoError(t, err)

	snap := lib.Snapshot()
	require.Len(t, snap.Books, 1)
	require.Len(t, snap.Patrons, 1)
	require.Len(t, snap.Branches, 1)
	require.Len(t, snap.Records, 1)
	assert.Equal(t, StatusCheckedOut, snap.Books[0].Status)
}

func TestWriteSnapshotProducesDecodableJSON(t *testing.T) {
	lib := newTestLibrary(t)
	branch := addTestBranch(t, lib)
	addTestBook(t, lib, "978-1", "Dune", "Frank Herbert", branch.ID)

	var buf bytes.Buffer
	require.NoError(t, lib.WriteSnapshot(&buf))

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Books, 1)
	assert.Equal(t, "Dune", decoded.Books[0].Title)
	assert.Equal(t, branch.ID, decoded.Books[0].BranchID)
}
