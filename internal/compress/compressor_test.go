package compress

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliang-dev/vpress/internal/encoder"
)

func TestStderrTail(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{"empty", "", ""},
		{"single line", "Conversion failed!", "Conversion failed!"},
		{"trailing blank lines", "frame=  100\nError opening encoder\n\n", "Error opening encoder"},
		{"whitespace only", "  \n \n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stderrTail(tt.stderr))
		})
	}
}

func TestEncode_MissingInput(t *testing.T) {
	enc, err := encoder.New("nvidia")
	require.NoError(t, err)
	c := New(enc, "ffmpeg", false)

	dir := t.TempDir()
	_, err = c.Encode(context.Background(), filepath.Join(dir, "absent.mp4"), filepath.Join(dir, "out.mp4"), 24)
	assert.Error(t, err)
}

func TestEncode_FailedProcessRemovesPartialOutput(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}

	enc, err := encoder.New("nvidia")
	require.NoError(t, err)
	c := New(enc, "ffmpeg", false)

	dir := t.TempDir()
	src := filepath.Join(dir, "garbage.mp4")
	require.NoError(t, os.WriteFile(src, []byte("not a video"), 0o644))
	dest := filepath.Join(dir, "out", "garbage.mp4")

	_, err = c.Encode(context.Background(), src, dest, 24)
	require.Error(t, err)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "partial output should be removed")
}
