package files

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(rows []FileRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestRepository_FindFiles(t *testing.T) {
	f := setupTestDB(t, true)
	f.createTags(t, "A", "B", "C")

	_, err := f.repo.CreateFile("only-a.txt", []string{"A"}, nil)
	require.NoError(t, err)
	_, err = f.repo.CreateFile("a-and-b.txt", []string{"A", "B"}, nil)
	require.NoError(t, err)
	_, err = f.repo.CreateFile("all-three.pdf", []string{"A", "B", "C"}, nil)
	require.NoError(t, err)
	_, err = f.repo.CreateFile("Untagged.PDF", nil, nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		query FindQuery
		want  []string
	}{
		{
			name:  "no filters returns every file",
			query: FindQuery{},
			want:  []string{"only-a.txt", "a-and-b.txt", "all-three.pdf", "Untagged.PDF"},
		},
		{
			name:  "tags match supersets",
			query: FindQuery{Tags: []string{"A", "B"}},
			want:  []string{"a-and-b.txt", "all-three.pdf"},
		},
		{
			name:  "repeated tag counts once",
			query: FindQuery{Tags: []string{"C", "C"}},
			want:  []string{"all-three.pdf"},
		},
		{
			name:  "name is a case-insensitive substring",
			query: FindQuery{Name: "pdf"},
			want:  []string{"all-three.pdf", "Untagged.PDF"},
		},
		{
			name:  "name and tags combine",
			query: FindQuery{Name: "pdf", Tags: []string{"A"}},
			want:  []string{"all-three.pdf"},
		},
		{
			name:  "unknown tag matches nothing",
			query: FindQuery{Tags: []string{"A", "Z"}},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := f.repo.FindFiles(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(rows))
		})
	}
}

func TestRepository_FindFiles_Row(t *testing.T) {
	f := setupTestDB(t, true)
	f.createTags(t, "A", "B")

	file, err := f.repo.CreateFile("doc", []string{"A", "B"}, nil)
	require.NoError(t, err)
	_, err = f.repo.CreateFile("bare", nil, nil)
	require.NoError(t, err)

	rows, err := f.repo.FindFiles(FindQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, file.ID, rows[0].ID)
	assert.Equal(t, "2024-03-09", rows[0].DateAdded)
	assert.ElementsMatch(t, []string{"A", "B"}, splitTags(rows[0].Tags))
	assert.Equal(t, "", rows[1].Tags)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", " b", "b", ""}, dedupe([]string{"a", " b", "a", "b", "", " b"}))
}

func TestRepository_FindFiles_ExactTagNames(t *testing.T) {
	f := setupTestDB(t, true)
	f.createTags(t, " b", "sci,fi", "b")

	_, err := f.repo.CreateFile("spaced.txt", []string{" b"}, nil)
	require.NoError(t, err)
	_, err = f.repo.CreateFile("comma.txt", []string{"sci,fi"}, nil)
	require.NoError(t, err)
	_, err = f.repo.CreateFile("plain.txt", []string{"b"}, nil)
	require.NoError(t, err)

	rows, err := f.repo.FindFiles(FindQuery{Tags: []string{" b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"spaced.txt"}, names(rows))

	rows, err = f.repo.FindFiles(FindQuery{Tags: []string{"sci,fi"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"comma.txt"}, names(rows))

	rows, err = f.repo.FindFiles(FindQuery{Tags: []string{"b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"plain.txt"}, names(rows))
}

func splitTags(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

func TestRepository_FindFiles_NameCaseFoldsASCIIOnly(t *testing.T) {
	f := setupTestDB(t, true)
	_, err := f.repo.CreateFile("REPORT.txt", nil, nil)
	require.NoError(t, err)
	_, err = f.repo.CreateFile("ŻÓŁW.txt", nil, nil)
	require.NoError(t, err)

	rows, err := f.repo.FindFiles(FindQuery{Name: "report"})
	require.NoError(t, err)
	assert.Equal(t, []string{"REPORT.txt"}, names(rows))

	rows, err = f.repo.FindFiles(FindQuery{Name: "żółw"})
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = f.repo.FindFiles(FindQuery{Name: "ŻÓŁW"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ŻÓŁW.txt"}, names(rows))
}
