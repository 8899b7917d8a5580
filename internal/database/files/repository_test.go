package files

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/stacks/internal/database/tags"
	"github.com/mrlokans/stacks/internal/entities"
)

type fixture struct {
	db       *gorm.DB
	repo     *Repository
	registry *tags.Registry
}

func setupTestDB(t *testing.T, atomic bool) *fixture {
	dbPath := filepath.Join(t.TempDir(), "files.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.File{}, &entities.Tag{}, &entities.FileTag{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	repo := NewRepository(db, atomic)
	repo.now = func() time.Time { return time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC) }

	return &fixture{db: db, repo: repo, registry: tags.NewRegistry(db, atomic)}
}

func (f *fixture) createTags(t *testing.T, names ...string) {
	for _, name := range names {
		_, err := f.registry.CreateTag(name)
		require.NoError(t, err)
	}
}

func (f *fixture) countLinks(t *testing.T, fileID uint) int64 {
	var n int64
	require.NoError(t, f.db.Model(&entities.FileTag{}).Where("file_id = ?", fileID).Count(&n).Error)
	return n
}

func (f *fixture) countFiles(t *testing.T) int64 {
	var n int64
	require.NoError(t, f.db.Model(&entities.File{}).Count(&n).Error)
	return n
}

func TestRepository_CreateFile(t *testing.T) {
	f := setupTestDB(t, true)
	f.createTags(t, "pdf", "work")

	file, err := f.repo.CreateFile("doc1", []string{"pdf", "work"}, []byte("hello"))

	require.NoError(t, err)
	assert.NotZero(t, file.ID)
	assert.Equal(t, "2024-03-09", file.DateAdded)
	assert.Equal(t, int64(2), f.countLinks(t, file.ID))

	payload, err := f.repo.GetPayload(file.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), payload)
}

func TestRepository_CreateFile_MissingTag_Legacy(t *testing.T) {
	f := setupTestDB(t, false)
	f.createTags(t, "existing", "later")

	file, err := f.repo.CreateFile("doc", []string{"existing", "missing", "later"}, nil)

	var missing *MissingTagError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "missing", missing.Name)
	assert.ErrorIs(t, err, tags.ErrTagNotFound)

	require.NotNil(t, file)
	assert.Equal(t, int64(1), f.countFiles(t))
	assert.Equal(t, int64(1), f.countLinks(t, file.ID))

	rows, err := f.repo.FindFiles(FindQuery{Name: "doc"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "existing", rows[0].Tags)
}

func TestRepository_CreateFile_MissingTag_Atomic(t *testing.T) {
	f := setupTestDB(t, true)
	f.createTags(t, "existing")

	file, err := f.repo.CreateFile("doc", []string{"existing", "missing"}, []byte("x"))

	var missing *MissingTagError
	require.True(t, errors.As(err, &missing))
	assert.Nil(t, file)
	assert.Equal(t, int64(0), f.countFiles(t))

	var links int64
	require.NoError(t, f.db.Model(&entities.FileTag{}).Count(&links).Error)
	assert.Equal(t, int64(0), links)
}

func TestRepository_DuplicateTagIgnored(t *testing.T) {
	for _, atomic := range []bool{true, false} {
		t.Run(map[bool]string{true: "atomic", false: "legacy"}[atomic], func(t *testing.T) {
			f := setupTestDB(t, atomic)
			f.createTags(t, "pdf")

			file, err := f.repo.CreateFile("doc", []string{"pdf", "pdf"}, nil)
			require.NoError(t, err)
			require.NoError(t, f.repo.AddTags(file.ID, []string{"pdf"}))

			assert.Equal(t, int64(1), f.countLinks(t, file.ID))
		})
	}
}

func TestRepository_DeleteFile_Atomic_Cascades(t *testing.T) {
	f := setupTestDB(t, true)
	f.createTags(t, "pdf")
	file, err := f.repo.CreateFile("doc", []string{"pdf"}, nil)
	require.NoError(t, err)

	require.NoError(t, f.repo.DeleteFile(file.ID))

	assert.Equal(t, int64(0), f.countFiles(t))
	assert.Equal(t, int64(0), f.countLinks(t, file.ID))
	assert.NoError(t, f.registry.DeleteTag("pdf"))
}

func TestRepository_DeleteFile_Legacy_LeavesOrphans(t *testing.T) {
	f := setupTestDB(t, false)
	f.createTags(t, "pdf")
	file, err := f.repo.CreateFile("doc", []string{"pdf"}, nil)
	require.NoError(t, err)

	require.NoError(t, f.repo.DeleteFile(file.ID))

	assert.Equal(t, int64(0), f.countFiles(t))
	assert.Equal(t, int64(1), f.countLinks(t, file.ID))
	assert.ErrorIs(t, f.registry.DeleteTag("pdf"), tags.ErrTagInUse)

	pruned, err := f.repo.PruneOrphans()
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)
	assert.NoError(t, f.registry.DeleteTag("pdf"))
}

func TestRepository_DeleteFile_Unknown(t *testing.T) {
	f := setupTestDB(t, true)

	assert.NoError(t, f.repo.DeleteFile(42))
}

func TestRepository_AddTags(t *testing.T) {
	f := setupTestDB(t, true)
	f.createTags(t, "a", "b")
	file, err := f.repo.CreateFile("doc", nil, nil)
	require.NoError(t, err)

	require.NoError(t, f.repo.AddTags(file.ID, []string{"a", "b"}))
	assert.Equal(t, int64(2), f.countLinks(t, file.ID))
}

func TestRepository_AddTags_MissingTag(t *testing.T) {
	tests := []struct {
		name   string
		atomic bool
		links  int64
	}{
		{name: "atomic rolls back", atomic: true, links: 0},
		{name: "legacy keeps earlier tags", atomic: false, links: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestDB(t, tt.atomic)
			f.createTags(t, "a", "c")
			file, err := f.repo.CreateFile("doc", nil, nil)
			require.NoError(t, err)

			err = f.repo.AddTags(file.ID, []string{"a", "b", "c"})

			var missing *MissingTagError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, "b", missing.Name)
			assert.Equal(t, tt.links, f.countLinks(t, file.ID))
		})
	}
}

func TestRepository_AddTags_UnknownFile_Atomic(t *testing.T) {
	f := setupTestDB(t, true)
	f.createTags(t, "a")

	err := f.repo.AddTags(99, []string{"a"})

	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.Equal(t, int64(0), f.countLinks(t, 99))
}

func TestRepository_RemoveTags_SkipsUnknown(t *testing.T) {
	f := setupTestDB(t, true)
	f.createTags(t, "a", "b")
	file, err := f.repo.CreateFile("doc", []string{"a", "b"}, nil)
	require.NoError(t, err)

	require.NoError(t, f.repo.RemoveTags(file.ID, []string{"nope", "a"}))

	rows, err := f.repo.FindFiles(FindQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b", rows[0].Tags)
}

func TestRepository_GetPayload(t *testing.T) {
	f := setupTestDB(t, true)
	file, err := f.repo.CreateFile("empty", nil, nil)
	require.NoError(t, err)

	_, err = f.repo.GetPayload(file.ID)
	assert.ErrorIs(t, err, ErrNoPayload)

	_, err = f.repo.GetPayload(file.ID + 100)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestRepository_GetFile(t *testing.T) {
	f := setupTestDB(t, true)
	created, err := f.repo.CreateFile("report.txt", nil, []byte("data"))
	require.NoError(t, err)

	file, err := f.repo.GetFile(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "report.txt", file.Name)
	assert.Nil(t, file.Data)

	_, err = f.repo.GetFile(created.ID + 1)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestRepository_EndToEnd(t *testing.T) {
	f := setupTestDB(t, true)

	_, err := f.registry.CreateTag("pdf")
	require.NoError(t, err)

	doc, err := f.repo.CreateFile("doc1", []string{"pdf"}, nil)
	require.NoError(t, err)

	rows, err := f.repo.FindFiles(FindQuery{Name: "doc1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "pdf", rows[0].Tags)

	assert.ErrorIs(t, f.registry.DeleteTag("pdf"), tags.ErrTagInUse)

	require.NoError(t, f.repo.RemoveTags(doc.ID, []string{"pdf"}))
	assert.NoError(t, f.registry.DeleteTag("pdf"))

	_, err = f.registry.GetTagByName("pdf")
	assert.ErrorIs(t, err, tags.ErrTagNotFound)
}
