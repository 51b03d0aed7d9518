package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Probe runs a single ffprobe JSON call against path and returns the
// parsed result. bin is the ffprobe binary name ("ffprobe" unless
// overridden in config).
func Probe(ctx context.Context, bin, path string) (*Result, error) {
	cmd := exec.CommandContext(ctx, bin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a Result.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildResult(&raw), nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

type ffprobeStream struct {
	Index        int            `json:"index"`
	CodecName    string         `json:"codec_name"`
	CodecType    string         `json:"codec_type"`
	Profile      string         `json:"profile"`
	PixFmt       string         `json:"pix_fmt"`
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	BitRate      string         `json:"bit_rate"`
	AvgFrameRate string         `json:"avg_frame_rate"`
	Disposition  map[string]int `json:"disposition"`
}

// --- Conversion from wire types to domain types ---

func buildResult(raw *ffprobeOutput) *Result {
	r := &Result{
		Format: FormatInfo{
			Filename:   raw.Format.Filename,
			FormatName: raw.Format.FormatName,
			Duration:   parseFloat(raw.Format.Duration),
			Size:       parseInt64(raw.Format.Size),
			BitRate:    parseInt64(raw.Format.BitRate),
		},
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType != "video" {
			continue
		}
		vs := VideoStream{
			Index:         s.Index,
			Codec:         s.CodecName,
			Profile:       s.Profile,
			PixFmt:        s.PixFmt,
			Width:         s.Width,
			Height:        s.Height,
			BitRate:       parseInt64(s.BitRate),
			AvgFrameRate:  s.AvgFrameRate,
			IsAttachedPic: s.Disposition["attached_pic"] == 1,
		}
		if !vs.IsAttachedPic && r.PrimaryVideo == nil {
			r.PrimaryVideo = &vs
		}
	}
	return r
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	s = strings.TrimSpace(s)
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
