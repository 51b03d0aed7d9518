package encoder

// intelEncoder drives Intel Quick Sync (hevc_qsv). Best compression of the
// three backends, slowest preset.
type intelEncoder struct{}

func (intelEncoder) Name() string  { return "intel" }
func (intelEncoder) Codec() string { return "hevc_qsv" }

func (intelEncoder) Profile() Profile {
	return Profile{Default: 25, Step: -1, Min: 1, Max: 51}
}

func (intelEncoder) ValidQuality(q int) bool { return true }

func (e intelEncoder) Args(input, output string, quality int) []string {
	return []string{
		"-hwaccel", "qsv",
		"-hwaccel_output_format", "qsv",
		"-i", input,
		"-c:v", e.Codec(),
		"-vtag", "hvc1",
		"-preset", "veryslow",
		"-global_quality", itoa(quality),
		"-c:a", "copy",
		"-map_metadata", "0",
		"-y",
		output,
	}
}
