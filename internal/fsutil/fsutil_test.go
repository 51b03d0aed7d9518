package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "nested", "dst.bin")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	require.NoError(t, CopyFile(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	// Source still present after copy.
	_, err = os.Stat(src)
	assert.NoError(t, err)
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "absent"), filepath.Join(dir, "out"))
	assert.Error(t, err)
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "candidate.mp4")
	dst := filepath.Join(dir, "out", "final.mp4")
	require.NoError(t, os.WriteFile(src, []byte("enc"), 0o644))

	require.NoError(t, MoveFile(src, dst))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source should be gone after move")
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "enc", string(got))
}

func TestFileSize(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(p, make([]byte, 1234), 0o644))
	assert.Equal(t, int64(1234), FileSize(p))
	assert.Equal(t, int64(0), FileSize(filepath.Join(dir, "missing")))
}
