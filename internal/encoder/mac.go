package encoder

// macEncoder drives Apple VideoToolbox (hevc_videotoolbox) on Apple
// Silicon. Weakest compression of the three backends at equal size.
type macEncoder struct{}

// q:v values measured to produce byte-identical output to a neighboring
// value on Apple Silicon. The quality scale is not linear; these are dead
// points the search skips instead of re-encoding. Unmeasured values are
// assumed live.
var macDuplicateQualities = map[int]bool{
	3: true, 4: true, 6: true, 7: true, 9: true, 10: true, 12: true,
	13: true, 15: true, 16: true, 18: true, 20: true, 21: true, 23: true,
	24: true, 26: true, 27: true, 29: true, 31: true, 32: true, 34: true,
	35: true, 37: true, 39: true, 40: true, 42: true, 44: true, 45: true,
	47: true, 49: true, 50: true, 52: true, 54: true, 56: true, 58: true,
	59: true, 61: true, 63: true, 65: true, 67: true, 69: true, 71: true,
	73: true, 75: true, 77: true, 80: true, 82: true, 85: true,
}

func (macEncoder) Name() string  { return "mac" }
func (macEncoder) Codec() string { return "hevc_videotoolbox" }

func (macEncoder) Profile() Profile {
	return Profile{Default: 58, Step: 1, Min: 1, Max: 100}
}

func (macEncoder) ValidQuality(q int) bool {
	return !macDuplicateQualities[q]
}

func (e macEncoder) Args(input, output string, quality int) []string {
	return []string{
		"-hwaccel", "videotoolbox",
		"-i", input,
		"-c:v", e.Codec(),
		"-vtag", "hvc1",
		"-q:v", itoa(quality),
		"-c:a", "copy",
		"-map_metadata", "0",
		"-y",
		output,
	}
}
