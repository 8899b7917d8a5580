// Package files stores file records, their payloads and their tag
// associations, and answers name and tag queries over them.
package files

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/stacks/internal/database/tags"
	"github.com/mrlokans/stacks/internal/entities"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrNoPayload    = errors.New("file has no stored payload")
)

// MissingTagError reports a tag name that has to be created before it can be
// attached to a file.
type MissingTagError struct {
	Name string
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("tag %q does not exist", e.Name)
}

func (e *MissingTagError) Unwrap() error {
	return tags.ErrTagNotFound
}

// Repository handles file and association database operations.
type Repository struct {
	db     *gorm.DB
	atomic bool
	now    func() time.Time
}

// NewRepository creates a file repository. With atomic set, every write is
// all-or-nothing and deleting a file drops its associations. Without it each
// statement commits on its own.
func NewRepository(db *gorm.DB, atomic bool) *Repository {
	return &Repository{db: db, atomic: atomic, now: time.Now}
}

func (r *Repository) run(fn func(tx *gorm.DB) error) error {
	if r.atomic {
		return r.db.Transaction(fn)
	}
	return fn(r.db)
}

// CreateFile inserts a file stamped with today's date and attaches the named
// tags in order. payload may be nil.
//
// In legacy mode a missing tag leaves the file and the tags attached before it
// in place, and the returned file is non-nil alongside the error.
func (r *Repository) CreateFile(name string, tagNames []string, payload []byte) (*entities.File, error) {
	file := &entities.File{
		Name:      name,
		Data:      payload,
		DateAdded: entities.Today(r.now()),
	}

	err := r.run(func(tx *gorm.DB) error {
		if err := tx.Create(file).Error; err != nil {
			return fmt.Errorf("insert file: %w", err)
		}
		return attach(tx, file.ID, tagNames)
	})
	if err != nil {
		if !r.atomic && file.ID != 0 {
			return file, err
		}
		return nil, err
	}
	return file, nil
}

// DeleteFile removes a file by id. Unknown ids are not an error.
func (r *Repository) DeleteFile(id uint) error {
	return r.run(func(tx *gorm.DB) error {
		if r.atomic {
			if err := tx.Where("file_id = ?", id).Delete(&entities.FileTag{}).Error; err != nil {
				return fmt.Errorf("delete associations: %w", err)
			}
		}
		if err := tx.Delete(&entities.File{}, id).Error; err != nil {
			return fmt.Errorf("delete file: %w", err)
		}
		return nil
	})
}

// AddTags attaches the named tags to a file. The first missing tag stops the
// operation with a *MissingTagError.
func (r *Repository) AddTags(id uint, tagNames []string) error {
	return r.run(func(tx *gorm.DB) error {
		if r.atomic {
			if _, err := r.getFile(tx, id); err != nil {
				return err
			}
		}
		return attach(tx, id, tagNames)
	})
}

// RemoveTags detaches the named tags from a file. Unknown tags are skipped.
func (r *Repository) RemoveTags(id uint, tagNames []string) error {
	return r.run(func(tx *gorm.DB) error {
		for _, name := range tagNames {
			tagID, err := tags.FindID(tx, name)
			if errors.Is(err, tags.ErrTagNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			if err := tx.Where("file_id = ? AND tag_id = ?", id, tagID).Delete(&entities.FileTag{}).Error; err != nil {
				return fmt.Errorf("detach tag %q: %w", name, err)
			}
		}
		return nil
	})
}

// GetFile returns the file metadata without its payload.
func (r *Repository) GetFile(id uint) (*entities.File, error) {
	return r.getFile(r.db, id)
}

// GetPayload returns the stored bytes of a file.
func (r *Repository) GetPayload(id uint) ([]byte, error) {
	var file entities.File
	result := r.db.Select("id", "data").Where("id = ?", id).Limit(1).Find(&file)
	if result.Error != nil {
		return nil, fmt.Errorf("read payload: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrFileNotFound
	}
	if file.Data == nil {
		return nil, ErrNoPayload
	}
	return file.Data, nil
}

// PruneOrphans deletes associations whose file or tag no longer exists and
// returns how many were removed.
func (r *Repository) PruneOrphans() (int64, error) {
	result := r.db.Exec(`DELETE FROM FileTag
		WHERE file_id NOT IN (SELECT id FROM Files)
		   OR tag_id NOT IN (SELECT id FROM Tags)`)
	if result.Error != nil {
		return 0, fmt.Errorf("prune associations: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *Repository) getFile(tx *gorm.DB, id uint) (*entities.File, error) {
	var file entities.File
	result := tx.Select("id", "name", "date_added").Where("id = ?", id).Limit(1).Find(&file)
	if result.Error != nil {
		return nil, fmt.Errorf("look up file: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrFileNotFound
	}
	return &file, nil
}

func attach(tx *gorm.DB, fileID uint, tagNames []string) error {
	for _, name := range tagNames {
		tagID, err := tags.FindID(tx, name)
		if errors.Is(err, tags.ErrTagNotFound) {
			return &MissingTagError{Name: name}
		}
		if err != nil {
			return err
		}

		link := &entities.FileTag{FileID: fileID, TagID: tagID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error; err != nil {
			return fmt.Errorf("attach tag %q: %w", name, err)
		}
	}
	return nil
}

// dedupe keeps the first occurrence of every name, in order. Names are
// compared exactly as stored by CreateTag: no trimming, no splitting.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
