package entities

import "time"

// DateLayout is the on-disk format of every date column (SQLite CURRENT_DATE style).
const DateLayout = "2006-01-02"

// File is a stored document. Data is nil for files created without a payload.
type File struct {
	ID        uint   `gorm:"primaryKey;column:id" json:"id"`
	Name      string `gorm:"column:name;not null;index" json:"name"`
	Data      []byte `gorm:"column:data" json:"-"`
	DateAdded string `gorm:"column:date_added;size:10" json:"date_added"`
}

type Tag struct {
	ID   uint   `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:tag_name;not null;uniqueIndex;size:255" json:"name"`
}

// FileTag links one file to one tag. There are no foreign keys: existence is
// checked by the repositories before insert. The composite key holds in both
// write modes, so a (file, tag) pair is stored at most once.
type FileTag struct {
	FileID uint `gorm:"primaryKey;column:file_id;autoIncrement:false" json:"file_id"`
	TagID  uint `gorm:"primaryKey;column:tag_id;autoIncrement:false;index" json:"tag_id"`
}

func (File) TableName() string {
	return "Files"
}

func (Tag) TableName() string {
	return "Tags"
}

func (FileTag) TableName() string {
	return "FileTag"
}

// Today formats t as a date column value.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}
