package vmaf

import "testing"

func TestParseScore(t *testing.T) {
	cases := []struct {
		name   string
		stderr string
		want   float64
		ok     bool
	}{
		{
			name:   "summary line",
			stderr: "frame= 500 fps=120\n[Parsed_libvmaf_0 @ 0x5] VMAF score: 95.123456\n",
			want:   95.123456,
			ok:     true,
		},
		{
			name:   "equals separator",
			stderr: "VMAF score= 87.5",
			want:   87.5,
			ok:     true,
		},
		{
			name:   "last occurrence wins",
			stderr: "VMAF score: 10.0\nVMAF score: 93.21\n",
			want:   93.21,
			ok:     true,
		},
		{
			name:   "no score",
			stderr: "Conversion failed!\n",
			ok:     false,
		},
		{
			name: "empty",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseScore(tc.stderr)
			if ok != tc.ok {
				t.Fatalf("ParseScore ok = %v, want %v", ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Errorf("ParseScore = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestModel(t *testing.T) {
	a := New("ffmpeg", "ffprobe", 4, false)
	if got := a.Model(); got != "version=vmaf_v0.6.1" {
		t.Errorf("Model = %q", got)
	}
	a = New("ffmpeg", "ffprobe", 4, true)
	if got := a.Model(); got != "version=vmaf_v0.6.1neg" {
		t.Errorf("neg Model = %q", got)
	}
}

func TestNewThreadFloor(t *testing.T) {
	a := New("ffmpeg", "ffprobe", 0, false)
	if a.threads != 4 {
		t.Errorf("threads = %d, want 4", a.threads)
	}
}
