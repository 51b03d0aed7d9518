package encoder

// nvidiaEncoder drives NVIDIA NVENC (hevc_nvenc) in constant-QP mode.
// VBR rate control makes the quality knob ineffective on NVENC, so the
// backend pins -rc constqp with the slowest preset and full-resolution
// multipass.
type nvidiaEncoder struct{}

func (nvidiaEncoder) Name() string  { return "nvidia" }
func (nvidiaEncoder) Codec() string { return "hevc_nvenc" }

func (nvidiaEncoder) Profile() Profile {
	return Profile{Default: 24, Step: -1, Min: 0, Max: 51}
}

func (nvidiaEncoder) ValidQuality(q int) bool { return true }

func (e nvidiaEncoder) Args(input, output string, quality int) []string {
	return []string{
		"-i", input,
		"-c:v", e.Codec(),
		"-vtag", "hvc1",
		"-preset", "p7",
		"-multipass", "fullres",
		"-rc", "constqp",
		"-qp", itoa(quality),
		"-c:a", "copy",
		"-map_metadata", "0",
		"-y",
		output,
	}
}
