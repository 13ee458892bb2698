package main

import (
	"fmt"
	"os"

	"library-management/library"
)

// Builds a demo catalog file the main binary can seed from with --catalog.

func main() {
	path := "catalog.db"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not remove %s: %v\n", path, err)
	}

	branches := []*library.Branch{
		{ID: "BR-CENTRAL", Name: "Central Library", Address: "1 Main St"},
		{ID: "BR-EAST", Name: "East Branch", Address: "9 Elm St"},
		{ID: "BR-WEST", Name: "West Branch", Address: "22 Oak Ave"},
	}

	type meta struct {
		isbn, title, author string
		year                int
		branch              string
	}
	catalog := []meta{
		{"978-0451524935", "1984", "George Orwell", 1949, "BR-CENTRAL"},
		{"978-0452284241", "Animal Farm", "George Orwell", 1945, "BR-CENTRAL"},
		{"978-0553296983", "The Diary of a Young Girl", "Anne Frank", 1947, "BR-CENTRAL"},
		{"978-1599869773", "The Art of War", "Sun Tzu", 1910, "BR-CENTRAL"},
		{"978-0547928210", "The Fellowship of the Ring", "J.R.R. Tolkien", 1954, "BR-EAST"},
		{"978-0547928203", "The Two Towers", "J.R.R. Tolkien", 1954, "BR-EAST"},
		{"978-0547928197", "The Return of the King", "J.R.R. Tolkien", 1955, "BR-EAST"},
		{"978-0590353427", "Harry Potter and the Philosopher's Stone", "J.K. Rowling", 1997, "BR-WEST"},
		{"978-0439064873", "Harry Potter and the Chamber of Secrets", "J.K. Rowling", 1998, "BR-WEST"},
		{"978-0439136365", "Harry Potter and the Prisoner of Azkaban", "J.K. Rowling", 1999, "BR-WEST"},
		{"978-0743477116", "Romeo and Juliet", "William Shakespeare", 1597, "BR-CENTRAL"},
		{"978-0140449266", "The Three Musketeers", "Alexandre Dumas", 1844, "BR-WEST"},
	}

	books := make([]*library.Book, 0, len(catalog))
	for _, m := range catalog {
		books = append(books, library.NewBook(m.isbn, m.title, m.author, m.year, m.branch))
	}

	patrons := []*library.Patron{
		library.NewStudent("Alice Johnson", "alice@example.com", "555-0101"),
		library.NewFaculty("Bob Martinez", "bob@example.com", "555-0102"),
		library.NewGeneralMember("Carol Chen", "carol@example.com", "555-0103"),
	}

	fmt.Printf("Writing catalog to %s...\n", path)
	if err := library.WriteCatalog(path, branches, books, patrons); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing catalog: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Done: %d branches, %d books, %d patrons.\n",
		len(branches), len(books), len(patrons))
}
