package library

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Catalog seeding. The runtime store is purely in-memory; a catalog file
// in SQLite form is only ever read once at startup to populate it, and
// nothing is written back. cmd/build_catalog produces such files.

const catalogSchema = `
CREATE TABLE IF NOT EXISTS branches (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    address TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS books (
    isbn TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    author TEXT NOT NULL,
    publication_year INTEGER NOT NULL,
    branch_id TEXT REFERENCES branches(id)
);
CREATE TABLE IF NOT EXISTS patrons (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    type TEXT NOT NULL
);`

// CatalogStats summarizes what a seed load brought in.
type CatalogStats struct {
	Books    int
	Patrons  int
	Branches int
}

// LoadCatalog reads a catalog SQLite file into the store. Books come in
// AVAILABLE at their recorded branch, and branch inventories are rebuilt
// to agree with them.
func (l *Library) LoadCatalog(path string) (CatalogStats, error) {
	var stats CatalogStats

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return stats, fmt.Errorf("open catalog: %w", err)
	}
	defer db.Close()

	branches := make(map[string]*Branch)
	rows, err := db.Query(`SELECT id, name, address FROM branches ORDER BY id`)
	if err != nil {
		return stats, fmt.Errorf("read branches: %w", err)
	}
	for rows.Next() {
		var b Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address); err != nil {
			rows.Close()
			return stats, err
		}
		branches[b.ID] = &b
		stats.Branches++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return stats, err
	}

	rows, err = db.Query(`SELECT isbn, title, author, publication_year, COALESCE(branch_id,'') FROM books ORDER BY isbn`)
	if err != nil {
		return stats, fmt.Errorf("read books: %w", err)
	}
	for rows.Next() {
		var isbn, title, author, branchID string
		var year int
		if err := rows.Scan(&isbn, &title, &author, &year, &branchID); err != nil {
			rows.Close()
			return stats, err
		}
		l.store.SaveBook(NewBook(isbn, title, author, year, branchID))
		if branch, ok := branches[branchID]; ok {
			branch.AddToInventory(isbn)
		}
		stats.Books++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return stats, err
	}

	rows, err = db.Query(`SELECT id, name, email, phone, type FROM patrons ORDER BY id`)
	if err != nil {
		return stats, fmt.Errorf("read patrons: %w", err)
	}
	for rows.Next() {
		var p Patron
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Type); err != nil {
			rows.Close()
			return stats, err
		}
		l.store.SavePatron(&p)
		stats.Patrons++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return stats, err
	}

	for _, branch := range branches {
		l.store.SaveBranch(branch)
	}
	return stats, nil
}

// WriteCatalog creates (or overwrites) a catalog SQLite file with the
// given entities. Used by cmd/build_catalog and the seed tests.
func WriteCatalog(path string, branches []*Branch, books []*Book, patrons []*Patron) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("create catalog: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(catalogSchema); err != nil {
		return fmt.Errorf("apply catalog schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, b := range branches {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO branches(id,name,address) VALUES(?,?,?)`,
			b.ID, b.Name, b.Address); err != nil {
			return err
		}
	}
	for _, b := range books {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO books(isbn,title,author,publication_year,branch_id) VALUES(?,?,?,?,?)`,
			b.ISBN, b.Title, b.Author, b.PublicationYear, b.BranchID); err != nil {
			return err
		}
	}
	for _, p := range patrons {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO patrons(id,name,email,phone,type) VALUES(?,?,?,?,?)`,
			p.ID, p.Name, p.Email, p.Phone, string(p.Type)); err != nil {
			return err
		}
	}
	return tx.Commit()
}
