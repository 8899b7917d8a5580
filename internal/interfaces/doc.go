// Package interfaces holds compile-time checks for the seams between packages.
//
// Consumers declare the small interfaces they need next to their code:
//
//   - semfs.TagStore, semfs.FileStore: the file store service over the
//     tag registry and file repository (internal/semfs/service.go)
//   - http.CatalogStore: book search, lookup and borrowing for the web app
//     (internal/http/stores.go)
//   - auth.UserRepository: account lookup for login and add-user
//     (internal/auth/service.go)
//   - auth.Renderer: page rendering for the login form (internal/auth/handlers.go)
//   - tasks.OverdueLister, scheduler.Enqueuer: the overdue report job
//
// # Adding a New Store
//
//  1. Declare the interface where it is consumed.
//
//  2. Implement it in a sub-package of internal/database:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Add the check to checks.go:
//
//     var _ SomeStore = (*Repository)(nil)
//
// `go build ./...` or `go vet ./...` compiles this package, and the build
// fails when a method goes missing.
package interfaces
