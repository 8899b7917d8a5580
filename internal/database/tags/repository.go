// Package tags provides the tag registry of the file store.
//
// Tag names are unique. A tag that is referenced by at least one file can
// not be deleted.
//
// # Usage
//
//	registry := tags.NewRegistry(db, true)
//	tag, err := registry.CreateTag("pdf")
//	if errors.Is(err, tags.ErrTagExists) { ... }
package tags

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/stacks/internal/entities"
)

var (
	ErrTagExists   = errors.New("tag already exists")
	ErrTagInUse    = errors.New("tag is associated with one or more files")
	ErrTagNotFound = errors.New("tag does not exist")
)

// TagUsage is a tag together with the number of files that carry it.
type TagUsage struct {
	ID    uint
	Name  string
	Files int64
}

// Registry handles all tag database operations.
type Registry struct {
	db     *gorm.DB
	atomic bool
}

// NewRegistry creates a tag registry. With atomic set, check-and-mutate pairs
// run inside one transaction.
func NewRegistry(db *gorm.DB, atomic bool) *Registry {
	return &Registry{db: db, atomic: atomic}
}

func (r *Registry) run(fn func(tx *gorm.DB) error) error {
	if r.atomic {
		return r.db.Transaction(fn)
	}
	return fn(r.db)
}

// CreateTag inserts a tag, or returns ErrTagExists when the name is taken.
func (r *Registry) CreateTag(name string) (*entities.Tag, error) {
	tag := &entities.Tag{Name: name}
	err := r.run(func(tx *gorm.DB) error {
		if _, err := FindID(tx, name); err == nil {
			return ErrTagExists
		} else if !errors.Is(err, ErrTagNotFound) {
			return err
		}

		if err := tx.Create(tag).Error; err != nil {
			// Lost a race against another writer; the unique index caught it.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrTagExists
			}
			return fmt.Errorf("insert tag: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag unless a file still references it. Deleting an
// unknown name succeeds without changes.
func (r *Registry) DeleteTag(name string) error {
	return r.run(func(tx *gorm.DB) error {
		inUse, err := countUsage(tx, name)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return ErrTagInUse
		}

		if err := tx.Where("tag_name = ?", name).Delete(&entities.Tag{}).Error; err != nil {
			return fmt.Errorf("delete tag: %w", err)
		}
		return nil
	})
}

// GetTagByName retrieves a tag by its exact name.
func (r *Registry) GetTagByName(name string) (*entities.Tag, error) {
	var tag entities.Tag
	result := r.db.Where("tag_name = ?", name).Limit(1).Find(&tag)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTagNotFound
	}
	return &tag, nil
}

// ListTags returns every tag with its usage count, ordered by name.
func (r *Registry) ListTags() ([]TagUsage, error) {
	var usage []TagUsage
	err := r.db.Table("Tags").
		Select("Tags.id AS id, Tags.tag_name AS name, COUNT(FileTag.file_id) AS files").
		Joins("LEFT JOIN FileTag ON FileTag.tag_id = Tags.id").
		Group("Tags.id, Tags.tag_name").
		Order("Tags.tag_name").
		Scan(&usage).Error
	return usage, err
}

// FindID resolves a tag name to its id using the given handle, which may be
// a transaction. Returns ErrTagNotFound when no such tag exists.
func FindID(tx *gorm.DB, name string) (uint, error) {
	var tag entities.Tag
	result := tx.Select("id").Where("tag_name = ?", name).Limit(1).Find(&tag)
	if result.Error != nil {
		return 0, fmt.Errorf("look up tag %q: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrTagNotFound
	}
	return tag.ID, nil
}

func countUsage(tx *gorm.DB, name string) (int64, error) {
	var count int64
	err := tx.Table("FileTag").
		Joins("JOIN Tags ON Tags.id = FileTag.tag_id").
		Where("Tags.tag_name = ?", name).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count tag usage: %w", err)
	}
	return count, nil
}
