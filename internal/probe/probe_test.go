package probe

import (
	"testing"
)

const sampleJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "width": 600,
      "height": 882,
      "disposition": {"attached_pic": 1}
    },
    {
      "index": 1,
      "codec_name": "h264",
      "codec_type": "video",
      "profile": "High",
      "pix_fmt": "yuv420p",
      "width": 1920,
      "height": 1080,
      "bit_rate": "4500000",
      "avg_frame_rate": "24000/1001",
      "disposition": {"attached_pic": 0}
    },
    {
      "index": 2,
      "codec_name": "aac",
      "codec_type": "audio",
      "channels": 2
    }
  ],
  "format": {
    "filename": "sample.mp4",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "1432.100000",
    "size": "812345678",
    "bit_rate": "4800000"
  }
}`

func TestParseJSON_PrimaryVideoSkipsAttachedPic(t *testing.T) {
	r, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if r.PrimaryVideo == nil {
		t.Fatal("no primary video stream")
	}
	if r.PrimaryVideo.Index != 1 {
		t.Errorf("primary video index = %d, want 1 (cover art at 0 skipped)", r.PrimaryVideo.Index)
	}
	if r.PrimaryVideo.Codec != "h264" {
		t.Errorf("codec = %q, want h264", r.PrimaryVideo.Codec)
	}
	if got := r.Resolution(); got != "1920x1080" {
		t.Errorf("Resolution = %q, want 1920x1080", got)
	}
}

func TestParseJSON_FormatFields(t *testing.T) {
	r, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if r.Format.Size != 812345678 {
		t.Errorf("Size = %d, want 812345678", r.Format.Size)
	}
	if r.Format.Duration < 1432 || r.Format.Duration > 1433 {
		t.Errorf("Duration = %v, want ~1432.1", r.Format.Duration)
	}
}

func TestVideoBitRate_FallsBackToFormat(t *testing.T) {
	r, err := ParseJSON([]byte(`{
	  "streams": [{"index": 0, "codec_name": "hevc", "codec_type": "video", "width": 1280, "height": 720}],
	  "format": {"bit_rate": "2500000"}
	}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got := r.VideoBitRate(); got != 2500000 {
		t.Errorf("VideoBitRate = %d, want format fallback 2500000", got)
	}
	if got := r.BitrateKbps(); got != 2500 {
		t.Errorf("BitrateKbps = %v, want 2500", got)
	}
}

func TestParseJSON_NoVideo(t *testing.T) {
	r, err := ParseJSON([]byte(`{"streams": [{"codec_type": "audio"}], "format": {}}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if r.PrimaryVideo != nil {
		t.Error("expected nil PrimaryVideo for audio-only input")
	}
	if got := r.Resolution(); got != "unknown" {
		t.Errorf("Resolution = %q, want unknown", got)
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	if _, err := ParseJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
