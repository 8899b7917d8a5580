// Package database provides the data access layer for both applications.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, transactions
//	├── tags/            # Tag registry (create, delete-if-unused)
//	├── files/           # File records, payloads, tag associations, tag queries
//	├── catalog/         # Books and borrow records
//	└── users/           # Catalog accounts
//
// The file store and the catalog live in separate SQLite files:
//
//	store, err := database.NewFilesDatabase("./db.db")
//	registry := tags.NewRegistry(store.DB, true)
//	repo := files.NewRepository(store.DB, true)
//
//	catalogDB, err := database.NewCatalogDatabase("./wypozyczalnia.db")
//	books := catalog.NewRepository(catalogDB.DB, 7)
//
// # Write modes
//
// The tags and files repositories take an atomic flag. When set, every
// multi-statement write runs in one transaction and deleting a file removes
// its associations. When unset (legacy mode), each statement commits on its
// own: a create that names a missing tag keeps the file and the tags linked
// before it, and deleting a file leaves its FileTag rows for prune.
package database
