package naming

import (
	"os"
	"path/filepath"
	"strings"
)

// Reference lookup tries these extensions in order; .mp4 first because the
// sweep scripts historically produced .mp4 references.
var refExtensions = []string{".mp4", ".mkv", ".mov", ".avi"}

// FindReference locates the original file a compressed candidate was
// produced from: strip the parameter suffix from the candidate's stem and
// look for that stem in refDir under a known extension. Returns false when
// no reference exists.
func FindReference(refDir, compPath string) (string, bool) {
	ext := filepath.Ext(compPath)
	stem := strings.TrimSuffix(filepath.Base(compPath), ext)
	clean := StripParamSuffix(stem)

	for _, e := range refExtensions {
		candidate := filepath.Join(refDir, clean+e)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
