package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderGrid(t *testing.T) {
	var buf bytes.Buffer

	renderGrid(&buf, []string{"id", "file_name"}, [][]string{{"1", "notes.txt"}, {"12", "żółw"}}, []bool{true, false})

	want := "" +
		"+----+-----------+\n" +
		"| id | file_name |\n" +
		"+====+===========+\n" +
		"|  1 | notes.txt |\n" +
		"+----+-----------+\n" +
		"| 12 | żółw      |\n" +
		"+----+-----------+\n"
	assert.Equal(t, want, buf.String())
}
