package display

import (
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
		{"typical file 700 MiB", 734003200, "700.0 MiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatRatio(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{"under budget", 0.785, "78.5%"},
		{"exactly limit", 0.8, "80.0%"},
		{"over budget", 1.05, "105.0%"},
		{"zero", 0, "0.0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRatio(tt.ratio)
			if got != tt.want {
				t.Errorf("FormatRatio(%v) = %q, want %q", tt.ratio, got, tt.want)
			}
		})
	}
}

func TestFormatBitrateLabel(t *testing.T) {
	tests := []struct {
		name string
		kbps int64
		want string
	}{
		{"sub-megabit", 800, "800 kbps"},
		{"exactly 1 Mbps", 1000, "1.0 Mbps"},
		{"typical video", 5000, "5.0 Mbps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBitrateLabel(tt.kbps)
			if got != tt.want {
				t.Errorf("FormatBitrateLabel(%d) = %q, want %q", tt.kbps, got, tt.want)
			}
		})
	}
}
