// Package encoder defines the hardware encoder backends and their
// quality-parameter profiles.
//
// Each backend pins one ffmpeg HEVC encoder with arguments calibrated so
// that the default quality lands near VMAF 95 on typical content. The
// quality knob differs per backend: QSV global_quality and NVENC QP improve
// fidelity as they *decrease* (Step = -1), VideoToolbox q:v improves as it
// *increases* (Step = +1). The search logic stays direction-agnostic and is
// driven purely by the Profile.
package encoder

import (
	"fmt"
	"strconv"
)

// Profile is the static quality-parameter configuration of one backend.
type Profile struct {
	Default int // Recommended quality (calibrated for VMAF ~95).
	Step    int // +1 or -1: direction that increases fidelity and size.
	Min     int // Lowest valid quality value (inclusive).
	Max     int // Highest valid quality value (inclusive).
}

// Contains reports whether q lies within [Min, Max].
func (p Profile) Contains(q int) bool {
	return q >= p.Min && q <= p.Max
}

// StartQuality is where the adaptive search begins: one step on the
// smaller-output side of the default, so the first attempt is size-safe
// with high probability.
func (p Profile) StartQuality() int {
	return p.Default - p.Step
}

// Encoder is one hardware encoding backend.
type Encoder interface {
	// Name is the backend identifier ("intel", "nvidia", "mac").
	Name() string
	// Codec is the ffmpeg encoder name (e.g. "hevc_nvenc").
	Codec() string
	// Profile returns the backend's static quality configuration.
	Profile() Profile
	// ValidQuality reports whether q is worth encoding at. Backends whose
	// quality scale has dead values (VideoToolbox) return false for those.
	ValidQuality(q int) bool
	// Args builds the full ffmpeg argument list (binary name excluded)
	// for one encode of input to output at the given quality.
	Args(input, output string, quality int) []string
}

// New returns the backend registered under name.
func New(name string) (Encoder, error) {
	switch name {
	case "intel":
		return intelEncoder{}, nil
	case "nvidia":
		return nvidiaEncoder{}, nil
	case "mac":
		return macEncoder{}, nil
	default:
		return nil, fmt.Errorf("unknown encoder %q (use 'intel', 'nvidia' or 'mac')", name)
	}
}

// Names lists the registered backend identifiers.
func Names() []string {
	return []string{"intel", "nvidia", "mac"}
}

func itoa(n int) string { return strconv.Itoa(n) }
