package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// paramSuffixRE matches the encoding-parameter suffix on a filename stem.
// Includes legacy spellings (qsv_, nvidia_qmax, max_, mac_, _aq) still
// present in old sweep output directories.
var paramSuffixRE = regexp.MustCompile(
	`_(intel_q\d+|qsv_\d+|nvidia_qmax\d+|max_\d+|nvidia_qp\d+(_aq)?|mac_qv\d+|mac_\d+)$`)

// ParamSuffix builds the canonical parameter suffix for one encoder and
// quality value.
func ParamSuffix(encoderName string, quality int) (string, error) {
	switch encoderName {
	case "intel":
		return fmt.Sprintf("_intel_q%d", quality), nil
	case "nvidia":
		return fmt.Sprintf("_nvidia_qp%d", quality), nil
	case "mac":
		return fmt.Sprintf("_mac_qv%d", quality), nil
	default:
		return "", fmt.Errorf("unknown encoder %q", encoderName)
	}
}

// StripParamSuffix removes the encoding-parameter suffix from a stem.
// Stems without a recognized suffix are returned unchanged.
func StripParamSuffix(stem string) string {
	return paramSuffixRE.ReplaceAllString(stem, "")
}

// SweepFilename builds the output filename for one sweep attempt,
// preserving the input extension: "demo.mp4" + nvidia/24 -> "demo_nvidia_qp24.mp4".
func SweepFilename(inputPath, encoderName string, quality int) (string, error) {
	suffix, err := ParamSuffix(encoderName, quality)
	if err != nil {
		return "", err
	}
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(filepath.Base(inputPath), ext)
	return stem + suffix + ext, nil
}
