package interfaces

// Compile-time checks that the concrete stores satisfy the interfaces their
// consumers declare.

import (
	"github.com/mrlokans/stacks/internal/auth"
	"github.com/mrlokans/stacks/internal/database/catalog"
	"github.com/mrlokans/stacks/internal/database/files"
	"github.com/mrlokans/stacks/internal/database/tags"
	"github.com/mrlokans/stacks/internal/database/users"
	"github.com/mrlokans/stacks/internal/http"
	"github.com/mrlokans/stacks/internal/scheduler"
	"github.com/mrlokans/stacks/internal/semfs"
	"github.com/mrlokans/stacks/internal/tasks"
)

// =============================================================================
// File store
// =============================================================================

var _ semfs.TagStore = (*tags.Registry)(nil)
var _ semfs.FileStore = (*files.Repository)(nil)

// =============================================================================
// Catalog
// =============================================================================

var _ http.CatalogStore = (*catalog.Repository)(nil)
var _ auth.UserRepository = (*users.Repository)(nil)
var _ auth.Renderer = http.Pages{}

// =============================================================================
// Background jobs
// =============================================================================

var _ tasks.OverdueLister = (*catalog.Repository)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
