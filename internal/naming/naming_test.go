package naming

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamSuffix(t *testing.T) {
	tests := []struct {
		encoder string
		quality int
		want    string
	}{
		{"intel", 25, "_intel_q25"},
		{"nvidia", 24, "_nvidia_qp24"},
		{"mac", 58, "_mac_qv58"},
	}
	for _, tt := range tests {
		got, err := ParamSuffix(tt.encoder, tt.quality)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParamSuffix("amd", 20)
	assert.Error(t, err)
}

func TestStripParamSuffix(t *testing.T) {
	tests := []struct {
		name string
		stem string
		want string
	}{
		{"intel", "demo_intel_q25", "demo"},
		{"nvidia constqp", "demo_nvidia_qp24", "demo"},
		{"nvidia constqp aq", "demo_nvidia_qp24_aq", "demo"},
		{"nvidia qmax legacy", "demo_nvidia_qmax30", "demo"},
		{"mac", "demo_mac_qv58", "demo"},
		{"legacy qsv", "demo_qsv_21", "demo"},
		{"legacy mac", "demo_mac_60", "demo"},
		{"no suffix", "Big Buck Bunny", "Big Buck Bunny"},
		{"suffix not at end", "demo_intel_q25_final", "demo_intel_q25_final"},
		{"underscore heavy stem", "my_home_video", "my_home_video"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripParamSuffix(tt.stem))
		})
	}
}

func TestSweepFilename(t *testing.T) {
	got, err := SweepFilename("/videos/demo.mp4", "nvidia", 26)
	require.NoError(t, err)
	assert.Equal(t, "demo_nvidia_qp26.mp4", got)

	got, err = SweepFilename("clip.mkv", "mac", 60)
	require.NoError(t, err)
	assert.Equal(t, "clip_mac_qv60.mkv", got)
}

func TestFindReference(t *testing.T) {
	refDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(refDir, "demo.mp4"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(refDir, "clip.mkv"), []byte("x"), 0o644))

	ref, ok := FindReference(refDir, "/comp/demo_intel_q25.mp4")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(refDir, "demo.mp4"), ref)

	// Falls through to non-mp4 extensions.
	ref, ok = FindReference(refDir, "/comp/clip_mac_qv58.mp4")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(refDir, "clip.mkv"), ref)

	_, ok = FindReference(refDir, "/comp/unknown_nvidia_qp24.mp4")
	assert.False(t, ok)
}

func TestMirrorPath(t *testing.T) {
	got, err := MirrorPath("/in", "/out", "/in/shows/s01/ep1.mp4")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "shows", "s01", "ep1.mp4"), got)
}

func TestCandidateAndBestEffortPaths(t *testing.T) {
	out := "/out/demo.mp4"
	assert.Equal(t, "/out/demo_tmp_q57_ab12cd34.mp4", CandidatePath(out, 57, "ab12cd34"))
	assert.Equal(t, "/out/demo_best_effort.mp4", BestEffortPath(out))
}
