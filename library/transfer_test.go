package library

import (
	"errors"
	"testing"
)

func twoBranches(t *testing.T, lib *Library) (*Branch, *Branch) {
	t.Helper()
	from := lib.Branches.CreateBranch("Central", "1 Main St")
	to := lib.Branches.CreateBranch("East", "9 Elm St")
	return from, to
}

func TestTransferMovesBookBetweenBranches(t *testing.T) {
	lib := newTestLibrary(t)
	from, to := twoBranches(t, lib)
	addTestBook(t, lib, "978-1", "Dune", "Frank Herbert", from.ID)

	if err := lib.Transfers.Transfer("978-1", from.ID, to.ID); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	book, _ := lib.Books.Book("978-1")
	if book.BranchID != to.ID {
		t.Fatalf("book branch = %s, want %s", book.BranchID, to.ID)
	}

	src, _ := lib.Branches.Branch(from.ID)
	if len(src.Inventory) != 0 {
		t.Fatalf("source inventory still holds %v", src.Inventory)
	}
	dst, _ := lib.Branches.Branch(to.ID)
	if len(dst.Inventory) != 1 || dst.Inventory[0] != "978-1" {
		t.Fatalf("destination inventory = %v", dst.Inventory)
	}
}

func TestTransferRejectsWrongSourceBranch(t *testing.T) {
	lib := newTestLibrary(t)
	from, to := twoBranches(t, lib)
	addTestBook(t, lib, "978-1", "Dune", "Frank Herbert", from.ID)

	err := lib.Transfers.Transfer("978-1", to.ID, from.ID)
	if !errors.Is(err, ErrWrongBranch) {
		t.Fatalf("want ErrWrongBranch, got %v", err)
	}
}

func TestTransferRejectsCirculatingBook(t *testing.T) {
	lib := newTestLibrary(t)
	from, to := twoBranches(t, lib)
	addTestBook(t, lib, "978-1", "Dune", "Frank Herbert", from.ID)
	patron := addTestPatron(t, lib, NewStudent("Ada", "ada@example.com", "555-0100"))

	if _, err := lib.Lending.Checkout(patron.ID, "978-1", from.ID); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	err := lib.Transfers.Transfer("978-1", from.ID, to.ID)
	if !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("want ErrNotAvailable, got %v", err)
	}
	if lib.Transfers.CanTransfer("978-1", from.ID) {
		t.Fatalf("CanTransfer reported true for a checked out book")
	}
}

func TestTransferUnknownEntities(t *testing.T) {
	lib := newTestLibrary(t)
	from, to := twoBranches(t, lib)
	addTestBook(t, lib, "978-1", "Dune", "Frank Herbert", from.ID)

	if err := lib.Transfers.Transfer("978-X", from.ID, to.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown book: want ErrNotFound, got %v", err)
	}
	if err := lib.Transfers.Transfer("978-1", "BR-MISSING", to.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown source: want ErrNotFound, got %v", err)
	}
	if err := lib.Transfers.Transfer("978-1", from.ID, "BR-MISSING"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown destination: want ErrNotFound, got %v", err)
	}
}
