package csvparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/sales-order-splitter/internal/config"
)

func TestParseReader(t *testing.T) {
	input := "\ufeffORDER ID, ITEM NUMBER ,CUSTOMER NAME\n" +
		"1001,2,\"Smith, John\"\n" +
		"\n" +
		"1002,1\n"

	data, err := ParseReader(strings.NewReader(input), config.CSVSettings{Delimiter: ","})
	require.NoError(t, err)

	assert.Equal(t, []string{"ORDER ID", "ITEM NUMBER", "CUSTOMER NAME"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "Smith, John", data.Rows[0]["CUSTOMER NAME"])
	assert.Equal(t, "1002", data.Rows[1]["ORDER ID"])
	assert.Equal(t, "", data.Rows[1]["CUSTOMER NAME"])
}

func TestParseReaderDelimiters(t *testing.T) {
	tests := []struct {
		name      string
		delimiter string
		input     string
	}{
		{"pipe", "pipe", "A|B\n1|2\n"},
		{"tab", "\\t", "A\tB\n1\t2\n"},
		{"semicolon", ";", "A;B\n1;2\n"},
		{"default", "", "A,B\n1,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ParseReader(strings.NewReader(tt.input), config.CSVSettings{Delimiter: tt.delimiter})
			require.NoError(t, err)
			assert.Equal(t, []string{"A", "B"}, data.Headers)
			assert.Equal(t, "2", data.Rows[0]["B"])
		})
	}
}

func TestParseReaderEmpty(t *testing.T) {
	_, err := ParseReader(strings.NewReader(""), config.CSVSettings{})
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = ParseReader(strings.NewReader(",,\n"), config.CSVSettings{})
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseEmptyHeaderNamedByPosition(t *testing.T) {
	data, err := ParseReader(strings.NewReader("A,,C\n1,2,3\n"), config.CSVSettings{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Column_2", "C"}, data.Headers)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("A,B\n1,2\n3,4\n1,5\n"), 0644))

	data, err := Parse(path, config.CSVSettings{})
	require.NoError(t, err)
	assert.Equal(t, path, data.SourceFile)
	assert.Equal(t, []string{"1", "3", "1"}, GetColumnByHeader(data, "A"))

	_, err = Parse(filepath.Join(t.TempDir(), "missing.csv"), config.CSVSettings{})
	assert.Error(t, err)
}
