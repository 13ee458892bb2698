package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"library-management/library"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted walkthrough of the system",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, log, err := buildLibrary()
			if err != nil {
				return err
			}

			fmt.Println("=== Library Management System Demo ===")

			central := lib.Branches.CreateBranch("Central Library", "1 Main St")
			east := lib.Branches.CreateBranch("East Branch", "9 Elm St")

			books := []*library.Book{
				library.NewBook("978-0451524935", "1984", "George Orwell", 1949, central.ID),
				library.NewBook("978-0452284241", "Animal Farm", "George Orwell", 1945, central.ID),
				library.NewBook("978-0547928227", "The Hobbit", "J.R.R. Tolkien", 1937, central.ID),
				library.NewBook("978-0544003415", "The Lord of the Rings", "J.R.R. Tolkien", 1954, east.ID),
				library.NewBook("978-0141439518", "Pride and Prejudice", "Jane Austen", 1813, east.ID),
			}
			for _, b := range books {
				if err := lib.Books.AddBook(b); err != nil {
					return err
				}
				if err := lib.Branches.AddBookToInventory(b.BranchID, b.ISBN); err != nil {
					return err
				}
			}

			alice := library.NewStudent("Alice", "alice@example.com", "555-0101")
			bob := library.NewFaculty("Bob", "bob@example.com", "555-0102")
			carol := library.NewGeneralMember("Carol", "carol@example.com", "555-0103")
			for _, p := range []*library.Patron{alice, bob, carol} {
				if err := lib.Patrons.AddPatron(p); err != nil {
					return err
				}
			}

			// Everyone gets both notification channels.
			for _, p := range []*library.Patron{alice, bob, carol} {
				lib.Notifier().Attach(library.NewEmailSink(p.Email, log))
				lib.Notifier().Attach(library.NewSMSSink(p.Phone, log))
			}

			fmt.Println("\n--- Lending ---")
			if _, err := lib.Lending.Checkout(alice.ID, "978-0451524935", central.ID); err != nil {
				return err
			}
			if _, err := lib.Lending.Checkout(bob.ID, "978-0547928227", central.ID); err != nil {
				return err
			}
			fmt.Printf("Alice and Bob checked books out; %d loans active.\n",
				len(lib.Lending.ActiveBorrowings()))

			fmt.Println("\n--- Reservations ---")
			res, err := lib.Reservations.Reserve(bob.ID, "978-0451524935")
			if err != nil {
				return err
			}
			fmt.Printf("Bob reserved 1984; queue position %d.\n",
				lib.Reservations.QueuePosition(res.ID))

			if err := lib.Lending.Return("978-0451524935", alice.ID); err != nil {
				return err
			}
			lib.Reservations.NotifyNextInQueue("978-0451524935")

			fmt.Println("\n--- Renewal ---")
			if err := lib.Lending.Renew("978-0547928227", bob.ID); err != nil {
				return err
			}
			fmt.Println("Bob renewed The Hobbit.")

			fmt.Println("\n--- Recommendations ---")
			if err := lib.Lending.Return("978-0547928227", bob.ID); err != nil {
				return err
			}
			for _, isbn := range []string{"978-0547928227", "978-0452284241"} {
				if _, err := lib.Lending.Checkout(carol.ID, isbn, central.ID); err != nil {
					return err
				}
				if err := lib.Lending.Return(isbn, carol.ID); err != nil {
					return err
				}
			}
			for i, b := range lib.Recommendations.Recommendations(carol.ID, 3) {
				fmt.Printf("  %d. %s by %s\n", i+1, b.Title, b.Author)
			}
			fmt.Println("Most popular:")
			for i, b := range lib.Recommendations.PopularBooks(3) {
				fmt.Printf("  %d. %s by %s\n", i+1, b.Title, b.Author)
			}

			fmt.Println("\n--- Branch transfer ---")
			if err := lib.Transfers.Transfer("978-0141439518", east.ID, central.ID); err != nil {
				return err
			}
			fmt.Println("Moved Pride and Prejudice to Central Library.")

			fmt.Println("\n=== Demo complete ===")
			return nil
		},
	}
}
