// Command import_books loads books into the catalog from a JSON array.
// Usage: go run ./cmd/import_books -db ./wypozyczalnia.db -file books.json
//
// Each element uses the Book JSON names: title, author, genre, description,
// year, count, isbn, book_img. Books without a title are skipped.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mrlokans/stacks/internal/config"
	"github.com/mrlokans/stacks/internal/database"
	"github.com/mrlokans/stacks/internal/database/catalog"
	"github.com/mrlokans/stacks/internal/entities"
)

type bookCreator interface {
	CreateBook(book *entities.Book) error
}

func main() {
	dbPath := flag.String("db", config.DefaultCatalogDatabasePath, "path to the catalog database")
	file := flag.String("file", "", "JSON file with books, - for stdin")
	flag.Parse()

	if *file == "" {
		log.Fatalf("-file is required")
	}

	var in io.Reader = os.Stdin
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", *file, err)
		}
		defer f.Close()
		in = f
	}

	db, err := database.NewCatalogDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer db.Close()

	imported, err := importBooks(in, catalog.NewRepository(db.DB, config.DefaultLoanDays))
	if err != nil {
		log.Fatalf("Import failed after %d books: %v", imported, err)
	}
	log.Printf("Imported %d books into %s", imported, *dbPath)
}

func importBooks(r io.Reader, store bookCreator) (int, error) {
	var books []entities.Book
	if err := json.NewDecoder(r).Decode(&books); err != nil {
		return 0, fmt.Errorf("decode books: %w", err)
	}

	imported := 0
	for i := range books {
		book := &books[i]
		book.ID = 0
		if strings.TrimSpace(book.Title) == "" {
			log.Printf("Skipping book #%d: no title", i+1)
			continue
		}
		if err := store.CreateBook(book); err != nil {
			return imported, fmt.Errorf("save %q: %w", book.Title, err)
		}
		imported++
	}
	return imported, nil
}
