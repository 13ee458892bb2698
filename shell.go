package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"library-management/library"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive library shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, log, err := buildLibrary()
			if err != nil {
				return err
			}
			runShell(lib, log)
			return nil
		},
	}
}

func runShell(lib *library.Library, log zerolog.Logger) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to the Library Management System!")
	fmt.Println("Available commands:")
	fmt.Println("  Catalog: add book, list books, search book, remove book")
	fmt.Println("  Patrons: add patron, list patrons")
	fmt.Println("  Branches: add branch, list branches, transfer")
	fmt.Println("  Circulation: checkout, return, renew, overdue")
	fmt.Println("  Reservations: reserve, cancel reservation, list reservations, pickup")
	fmt.Println("  Discovery: recommend, popular")
	fmt.Println("  System: subscribe, exit")
	fmt.Println()
	fmt.Println("Tips:")
	fmt.Println("  • 'subscribe' registers a patron's email and phone for notifications")
	fmt.Println("  • 'pickup' hands a reserved book to the patron at the head of the queue")

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		cmd := strings.TrimSpace(scanner.Text())

		switch cmd {
		case "add book":
			handleAddBook(scanner, lib)
		case "list books":
			handleListBooks(lib)
		case "search book":
			handleSearchBooks(scanner, lib)
		case "remove book":
			handleRemoveBook(scanner, lib)
		case "add patron":
			handleAddPatron(scanner, lib)
		case "list patrons":
			handleListPatrons(lib)
		case "add branch":
			handleAddBranch(scanner, lib)
		case "list branches":
			handleListBranches(lib)
		case "transfer":
			handleTransfer(scanner, lib)
		case "checkout":
			handleCheckout(scanner, lib)
		case "return":
			handleReturn(scanner, lib)
		case "renew":
			handleRenew(scanner, lib)
		case "overdue":
			handleOverdue(lib)
		case "reserve":
			handleReserve(scanner, lib)
		case "cancel reservation":
			handleCancelReservation(scanner, lib)
		case "list reservations":
			handleListReservations(scanner, lib)
		case "pickup":
			handlePickup(scanner, lib)
		case "recommend":
			handleRecommend(scanner, lib)
		case "popular":
			handlePopular(scanner, lib)
		case "subscribe":
			handleSubscribe(scanner, lib, log)
		case "exit":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Unknown command. Type one of the available commands listed above.")
		}
	}
}

func prompt(sc *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func handleAddBook(sc *bufio.Scanner, lib *library.Library) {
	isbn, ok := prompt(sc, "ISBN: ")
	if !ok || isbn == "" {
		fmt.Println("Error: ISBN cannot be empty")
		return
	}
	title, ok := prompt(sc, "Title: ")
	if !ok {
		return
	}
	author, ok := prompt(sc, "Author: ")
	if !ok {
		return
	}
	yearStr, ok := prompt(sc, "Publication year: ")
	if !ok {
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		fmt.Printf("Invalid year: %s\n", yearStr)
		return
	}
	branchID, ok := prompt(sc, "Branch ID: ")
	if !ok {
		return
	}

	book := library.NewBook(isbn, title, author, year, branchID)
	if err := lib.Books.AddBook(book); err != nil {
		fmt.Printf("Error adding book: %v\n", err)
		return
	}
	if branchID != "" {
		if err := lib.Branches.AddBookToInventory(branchID, isbn); err != nil {
			fmt.Printf("Warning: could not shelve at branch: %v\n", err)
		}
	}
	fmt.Printf("Added %q by %s (ISBN %s)\n", title, author, isbn)
}

func handleListBooks(lib *library.Library) {
	books := lib.Books.AllBooks()
	if len(books) == 0 {
		fmt.Println("No books in library.")
		return
	}

	fmt.Printf("%-18s %-35s %-25s %-12s %s\n", "ISBN", "Title", "Author", "Status", "Branch")
	fmt.Println(strings.Repeat("-", 105))
	for _, b := range books {
		fmt.Printf("%-18s %-35s %-25s %-12s %s\n",
			b.ISBN,
			truncateString(b.Title, 35),
			truncateString(b.Author, 25),
			b.Status,
			b.BranchID)
	}
}

func handleSearchBooks(sc *bufio.Scanner, lib *library.Library) {
	field, ok := prompt(sc, "Search by (title/author/isbn): ")
	if !ok {
		return
	}
	var match library.Matcher
	switch strings.ToLower(field) {
	case "title", "":
		match = library.MatchTitle
	case "author":
		match = library.MatchAuthor
	case "isbn":
		match = library.MatchISBN
	default:
		fmt.Printf("Unknown search field: %s\n", field)
		return
	}

	query, ok := prompt(sc, "Query: ")
	if !ok {
		return
	}

	books := lib.Books.Search(query, match)
	if len(books) == 0 {
		fmt.Printf("No books found matching '%s'.\n", query)
		return
	}
	fmt.Printf("Found %d book(s) matching '%s':\n", len(books), query)
	for _, b := range books {
		fmt.Printf("  %s  %s by %s (%s)\n", b.ISBN, b.Title, b.Author, b.Status)
	}
}

func handleRemoveBook(sc *bufio.Scanner, lib *library.Library) {
	isbn, ok := prompt(sc, "ISBN: ")
	if !ok {
		return
	}
	if err := lib.Books.RemoveBook(isbn); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Removed book %s\n", isbn)
}

func handleAddPatron(sc *bufio.Scanner, lib *library.Library) {
	name, ok := prompt(sc, "Name: ")
	if !ok || name == "" {
		fmt.Println("Error: name cannot be empty")
		return
	}
	email, ok := prompt(sc, "Email: ")
	if !ok {
		return
	}
	phone, ok := prompt(sc, "Phone: ")
	if !ok {
		return
	}
	kind, ok := prompt(sc, "Type (student/faculty/general): ")
	if !ok {
		return
	}

	var patron *library.Patron
	switch strings.ToLower(kind) {
	case "student":
		patron = library.NewStudent(name, email, phone)
	case "faculty":
		patron = library.NewFaculty(name, email, phone)
	case "general", "":
		patron = library.NewGeneralMember(name, email, phone)
	default:
		fmt.Printf("Unknown patron type: %s\n", kind)
		return
	}

	if err := lib.Patrons.AddPatron(patron); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Added %s '%s' with ID %s\n", patron.Type, name, patron.ID)
}

func handleListPatrons(lib *library.Library) {
	patrons := lib.Patrons.AllPatrons()
	if len(patrons) == 0 {
		fmt.Println("No patrons registered.")
		return
	}

	fmt.Printf("%-12s %-25s %-10s %-10s %s\n", "ID", "Name", "Type", "Borrowed", "Reserved")
	fmt.Println(strings.Repeat("-", 70))
	for _, p := range patrons {
		fmt.Printf("%-12s %-25s %-10s %-10d %d\n",
			p.ID, truncateString(p.Name, 25), p.Type, len(p.Borrowed), len(p.Reserved))
	}
}

func handleAddBranch(sc *bufio.Scanner, lib *library.Library) {
	name, ok := prompt(sc, "Name: ")
	if !ok || name == "" {
		fmt.Println("Error: name cannot be empty")
		return
	}
	address, ok := prompt(sc, "Address: ")
	if !ok {
		return
	}
	branch := lib.Branches.CreateBranch(name, address)
	fmt.Printf("Created branch '%s' with ID %s\n", name, branch.ID)
}

func handleListBranches(lib *library.Library) {
	branches := lib.Branches.AllBranches()
	if len(branches) == 0 {
		fmt.Println("No branches.")
		return
	}
	for _, b := range branches {
		fmt.Printf("  %s  %s, %s (%d books)\n", b.ID, b.Name, b.Address, len(b.Inventory))
	}
}

func handleTransfer(sc *bufio.Scanner, lib *library.Library) {
	isbn, ok := prompt(sc, "ISBN: ")
	if !ok {
		return
	}
	from, ok := prompt(sc, "From branch ID: ")
	if !ok {
		return
	}
	to, ok := prompt(sc, "To branch ID: ")
	if !ok {
		return
	}
	if err := lib.Transfers.Transfer(isbn, from, to); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Transferred %s from %s to %s\n", isbn, from, to)
}

func handleCheckout(sc *bufio.Scanner, lib *library.Library) {
	patronID, ok := prompt(sc, "Patron ID: ")
	if !ok {
		return
	}
	isbn, ok := prompt(sc, "ISBN: ")
	if !ok {
		return
	}
	branchID, ok := prompt(sc, "Branch ID: ")
	if !ok {
		return
	}

	record, err := lib.Lending.Checkout(patronID, isbn, branchID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Checked out %s. Due %s.\n", isbn, record.DueDate.Format("2006-01-02"))
}

func handleReturn(sc *bufio.Scanner, lib *library.Library) {
	patronID, ok := prompt(sc, "Patron ID: ")
	if !ok {
		return
	}
	isbn, ok := prompt(sc, "ISBN: ")
	if !ok {
		return
	}

	if err := lib.Lending.Return(isbn, patronID); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Returned %s.\n", isbn)

	// Offer the freed copy to the head of the wait queue, if any.
	lib.Reservations.NotifyNextInQueue(isbn)
}

func handleRenew(sc *bufio.Scanner, lib *library.Library) {
	patronID, ok := prompt(sc, "Patron ID: ")
	if !ok {
		return
	}
	isbn, ok := prompt(sc, "ISBN: ")
	if !ok {
		return
	}

	if err := lib.Lending.Renew(isbn, patronID); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Renewed %s.\n", isbn)
}

func handleOverdue(lib *library.Library) {
	overdue := lib.Lending.OverdueBorrowings()
	if len(overdue) == 0 {
		fmt.Println("No overdue loans.")
		return
	}
	for _, r := range overdue {
		fmt.Printf("  %s held by %s, due %s\n", r.ISBN, r.PatronID, r.DueDate.Format("2006-01-02"))
	}
}

func handleReserve(sc *bufio.Scanner, lib *library.Library) {
	patronID, ok := prompt(sc, "Patron ID: ")
	if !ok {
		return
	}
	isbn, ok := prompt(sc, "ISBN: ")
	if !ok {
		return
	}

	res, err := lib.Reservations.Reserve(patronID, isbn)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Reserved %s. Reservation %s, queue position %d.\n",
		isbn, res.ID, lib.Reservations.QueuePosition(res.ID))
}

func handleCancelReservation(sc *bufio.Scanner, lib *library.Library) {
	id, ok := prompt(sc, "Reservation ID: ")
	if !ok {
		return
	}
	if err := lib.Reservations.Cancel(id); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Cancelled reservation %s.\n", id)
}

func handleListReservations(sc *bufio.Scanner, lib *library.Library) {
	isbn, ok := prompt(sc, "ISBN (or press Enter for all): ")
	if !ok {
		return
	}

	var reservations []library.Reservation
	if isbn == "" {
		reservations = lib.Reservations.AllReservations()
	} else {
		reservations = lib.Reservations.ReservationsForBook(isbn)
	}
	if len(reservations) == 0 {
		fmt.Println("No reservations.")
		return
	}

	fmt.Printf("%-12s %-18s %-12s %-10s %s\n", "ID", "ISBN", "Patron", "Status", "Position")
	fmt.Println(strings.Repeat("-", 70))
	for _, r := range reservations {
		pos := lib.Reservations.QueuePosition(r.ID)
		posStr := "-"
		if pos > 0 {
			posStr = strconv.Itoa(pos)
		}
		fmt.Printf("%-12s %-18s %-12s %-10s %s\n", r.ID, r.ISBN, r.PatronID, r.Status, posStr)
	}
}

func handlePickup(sc *bufio.Scanner, lib *library.Library) {
	patronID, ok := prompt(sc, "Patron ID: ")
	if !ok {
		return
	}
	isbn, ok := prompt(sc, "ISBN: ")
	if !ok {
		return
	}

	book, err := lib.Books.Book(isbn)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if err := lib.Reservations.Fulfill(isbn, patronID); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	// Release the RESERVED hold so the lending checkout can proceed.
	if book.Status == library.StatusReserved {
		if err := lib.Books.UpdateStatus(isbn, library.StatusAvailable); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}
	record, err := lib.Lending.Checkout(patronID, isbn, book.BranchID)
	if err != nil {
		fmt.Printf("Reservation cleared but checkout failed: %v\n", err)
		return
	}
	fmt.Printf("Picked up %s. Due %s.\n", isbn, record.DueDate.Format("2006-01-02"))
}

func handleRecommend(sc *bufio.Scanner, lib *library.Library) {
	patronID, ok := prompt(sc, "Patron ID: ")
	if !ok {
		return
	}
	mode, ok := prompt(sc, "Mode (content/collaborative): ")
	if !ok {
		return
	}

	var books []*library.Book
	switch strings.ToLower(mode) {
	case "collaborative":
		books = lib.Recommendations.CollaborativeRecommendations(patronID, 5)
	default:
		books = lib.Recommendations.Recommendations(patronID, 5)
	}
	if len(books) == 0 {
		fmt.Println("No recommendations available.")
		return
	}
	for i, b := range books {
		fmt.Printf("  %d. %s by %s (%s)\n", i+1, b.Title, b.Author, b.ISBN)
	}
}

func handlePopular(sc *bufio.Scanner, lib *library.Library) {
	books := lib.Recommendations.PopularBooks(5)
	if len(books) == 0 {
		fmt.Println("No borrowing history yet.")
		return
	}
	for i, b := range books {
		fmt.Printf("  %d. %s by %s (%s)\n", i+1, b.Title, b.Author, b.ISBN)
	}
}

func handleSubscribe(sc *bufio.Scanner, lib *library.Library, log zerolog.Logger) {
	patronID, ok := prompt(sc, "Patron ID: ")
	if !ok {
		return
	}
	patron, err := lib.Patrons.Patron(patronID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if patron.Email != "" {
		lib.Notifier().Attach(library.NewEmailSink(patron.Email, log))
	}
	if patron.Phone != "" {
		lib.Notifier().Attach(library.NewSMSSink(patron.Phone, log))
	}
	fmt.Printf("Subscribed %s to notifications.\n", patron.Name)
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
