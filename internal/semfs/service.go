// Package semfs is the semantic file store: files kept in a database and
// found by name or by the tags attached to them.
package semfs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/stacks/internal/database/files"
	"github.com/mrlokans/stacks/internal/database/tags"
	"github.com/mrlokans/stacks/internal/entities"
)

// TagStore is the subset of the tag registry the service uses.
type TagStore interface {
	CreateTag(name string) (*entities.Tag, error)
	DeleteTag(name string) error
	ListTags() ([]tags.TagUsage, error)
}

// FileStore is the subset of the file repository the service uses.
type FileStore interface {
	CreateFile(name string, tagNames []string, payload []byte) (*entities.File, error)
	DeleteFile(id uint) error
	AddTags(id uint, tagNames []string) error
	RemoveTags(id uint, tagNames []string) error
	GetPayload(id uint) ([]byte, error)
	FindFiles(q files.FindQuery) ([]files.FileRow, error)
	PruneOrphans() (int64, error)
}

// Service composes the tag registry and the file repository, and moves
// payloads between the database and the local filesystem.
type Service struct {
	tags  TagStore
	files FileStore
}

func NewService(tagStore TagStore, fileStore FileStore) *Service {
	return &Service{tags: tagStore, files: fileStore}
}

// ImportFile stores the contents of the file at path under its base name.
func (s *Service) ImportFile(path string, tagNames []string) (*entities.File, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.files.CreateFile(filepath.Base(path), tagNames, payload)
}

// CreateFile stores a file record without a payload.
func (s *Service) CreateFile(name string, tagNames []string) (*entities.File, error) {
	return s.files.CreateFile(name, tagNames, nil)
}

// ExportFile writes the stored payload of a file to dest.
func (s *Service) ExportFile(id uint, dest string) error {
	payload, err := s.files.GetPayload(id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}

// OpenFile checks that a file has a payload that could be opened.
func (s *Service) OpenFile(id uint) error {
	_, err := s.files.GetPayload(id)
	return err
}

func (s *Service) DeleteFile(id uint) error {
	return s.files.DeleteFile(id)
}

func (s *Service) AddTags(id uint, tagNames []string) error {
	return s.files.AddTags(id, tagNames)
}

func (s *Service) RemoveTags(id uint, tagNames []string) error {
	return s.files.RemoveTags(id, tagNames)
}

func (s *Service) FindFiles(name string, tagNames []string) ([]files.FileRow, error) {
	return s.files.FindFiles(files.FindQuery{Name: name, Tags: tagNames})
}

func (s *Service) CreateTag(name string) error {
	_, err := s.tags.CreateTag(name)
	return err
}

func (s *Service) DeleteTag(name string) error {
	return s.tags.DeleteTag(name)
}

func (s *Service) ListTags() ([]tags.TagUsage, error) {
	return s.tags.ListTags()
}

// Prune removes associations left behind by files deleted in legacy mode.
func (s *Service) Prune() (int64, error) {
	return s.files.PruneOrphans()
}
