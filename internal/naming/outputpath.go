package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MirrorPath maps a file under inputRoot to the same relative location
// under outputRoot.
func MirrorPath(inputRoot, outputRoot, path string) (string, error) {
	rel, err := filepath.Rel(inputRoot, path)
	if err != nil {
		return "", fmt.Errorf("mirror %q: %w", path, err)
	}
	return filepath.Join(outputRoot, rel), nil
}

// CandidatePath is the temp file one encode attempt writes next to the
// final output. The run ID keeps concurrent runs over the same output
// directory from colliding.
func CandidatePath(outputPath string, quality int, runID string) string {
	ext := filepath.Ext(outputPath)
	stem := strings.TrimSuffix(outputPath, ext)
	return fmt.Sprintf("%s_tmp_q%d_%s%s", stem, quality, runID, ext)
}

// BestEffortPath is where the search parks its best size-passing candidate
// while it keeps looking for one that meets the quality target.
func BestEffortPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	stem := strings.TrimSuffix(outputPath, ext)
	return stem + "_best_effort" + ext
}
