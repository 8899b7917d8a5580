package files

import (
	"fmt"
	"strings"
)

// FindQuery filters FindFiles. Empty fields are not applied.
type FindQuery struct {
	// Name matches any file whose name contains it. Case is ignored for
	// ASCII letters only (SQLite LIKE), so "żółw" does not match "ŻÓŁW".
	Name string
	// Tags matches files that carry every listed tag. Files may carry more.
	Tags []string
}

// FileRow is one result of FindFiles. Tags is the comma-joined list of the
// file's tag names, empty when it has none.
type FileRow struct {
	ID        uint
	Name      string
	DateAdded string
	Tags      string
}

const findSelect = `SELECT Files.id AS id, Files.name AS name, Files.date_added AS date_added,
	COALESCE((SELECT GROUP_CONCAT(Tags.tag_name) FROM Tags
		JOIN FileTag ON Tags.id = FileTag.tag_id
		WHERE FileTag.file_id = Files.id), '') AS tags
	FROM Files`

// FindFiles runs a single query over files and their aggregated tag names.
func (r *Repository) FindFiles(q FindQuery) ([]FileRow, error) {
	var (
		where []string
		args  []any
	)

	if q.Name != "" {
		where = append(where, "Files.name LIKE ?")
		args = append(args, "%"+q.Name+"%")
	}

	if wanted := dedupe(q.Tags); len(wanted) > 0 {
		where = append(where, `(SELECT COUNT(*) FROM Tags
			JOIN FileTag ON Tags.id = FileTag.tag_id
			WHERE FileTag.file_id = Files.id AND Tags.tag_name IN ?) = ?`)
		args = append(args, wanted, len(wanted))
	}

	sql := findSelect
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY Files.id"

	var rows []FileRow
	if err := r.db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("find files: %w", err)
	}
	return rows, nil
}
