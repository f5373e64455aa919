package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersDirPath(t *testing.T) {
	dir := t.TempDir()
	today := time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC)

	got, err := OrdersDirPath(filepath.Join(dir, "sales.csv"), "Orders_", today)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Orders_2026-10-18"), got)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))
	assert.True(t, FileExists(dir))
	assert.False(t, IsRegularFile(dir))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Order1_A.xlsx")

	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "first")
		return err
	})
	require.NoError(t, err)

	err = WriteFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "second")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileAtomicFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Order1_A.xlsx")
	boom := errors.New("boom")

	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "Order1_A.xlsx")

	err := WriteFileAtomic(path, func(w io.Writer) error { return nil })
	assert.Error(t, err)
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "a.XLSX", "notes.txt", ".a.xlsx.tmp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.xlsx"), 0755))

	files, err := ListFiles(dir, ".xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.XLSX"), filepath.Join(dir, "b.xlsx")}, files)

	all, err := ListFiles(dir, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = ListFiles(filepath.Join(dir, "missing"), "")
	assert.Error(t, err)
}
