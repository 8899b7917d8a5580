package config

// Default paths for databases
const (
	// DefaultFilesDatabasePath is the default path for the tagged file store
	DefaultFilesDatabasePath = "./db.db"

	// DefaultCatalogDatabasePath is the default path for the library catalog
	DefaultCatalogDatabasePath = "./wypozyczalnia.db"

	// DefaultLoanDays is how long a borrowed book may be kept
	DefaultLoanDays = 7
)
