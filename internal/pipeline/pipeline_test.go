package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cliang-dev/vpress/internal/encoder"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.mkv"))
	touch(t, filepath.Join(dir, "a.mp4"))
	touch(t, filepath.Join(dir, "sub", "c.MOV"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "cover.jpg"))

	files, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.mp4"),
		filepath.Join(dir, "b.mkv"),
		filepath.Join(dir, "sub", "c.MOV"),
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("Discover mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverSingleFile(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "clip.mp4")
	touch(t, video)

	files, err := Discover(video)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != video {
		t.Errorf("Discover(file) = %v", files)
	}

	text := filepath.Join(dir, "notes.txt")
	touch(t, text)
	files, err = Discover(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("Discover(non-video file) = %v, want empty", files)
	}
}

func TestMirror(t *testing.T) {
	in := filepath.Join("library", "season1")
	out := "compressed"

	got, err := mirror(in, out, filepath.Join(in, "disc2", "ep3.mkv"))
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(out, "disc2", "ep3.mkv")
	if got != want {
		t.Errorf("mirror = %q, want %q", got, want)
	}

	// Single-file input, directory output.
	got, err = mirror("clip.mp4", out, "clip.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(out, "clip.mp4"); got != want {
		t.Errorf("mirror = %q, want %q", got, want)
	}

	// Single-file input, file output.
	got, err = mirror("clip.mp4", "small.mp4", "clip.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if got != "small.mp4" {
		t.Errorf("mirror = %q, want small.mp4", got)
	}
}

func TestSweepQualities(t *testing.T) {
	enc, err := encoder.New("mac")
	if err != nil {
		t.Fatal(err)
	}

	// 56..60 on the VideoToolbox scale: 56, 58 and 59 are dead values.
	got := sweepQualities(enc, 56, 60)
	want := []int{57, 60}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sweepQualities mismatch (-want +got):\n%s", diff)
	}

	// Reversed and out-of-bounds ranges are normalized.
	if got := sweepQualities(enc, 60, 56); len(got) != len(want) {
		t.Errorf("reversed range = %v", got)
	}
	p := enc.Profile()
	all := sweepQualities(enc, p.Min-10, p.Max+10)
	for _, q := range all {
		if !p.Contains(q) {
			t.Errorf("quality %d outside profile bounds", q)
		}
	}
}

func TestSpaceSaved(t *testing.T) {
	s := RunStats{TotalInputBytes: 1000, TotalOutputBytes: 600}
	if got := s.SpaceSaved(); got != 400 {
		t.Errorf("SpaceSaved = %d, want 400", got)
	}
}
