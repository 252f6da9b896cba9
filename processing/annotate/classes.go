package annotate

import (
	"strings"

	"go.uber.org/zap"

	"inspector/internal/logging"
)

// LoadClasses loads class names from a .txt or .names file, one name per
// non-blank line. A missing or unreadable file yields nil without error so
// YOLO labels simply fall back to class ids.
func LoadClasses(path string) []string {
	if path == "" {
		return nil
	}

	lines, err := readLines(path)
	if err != nil {
		logging.Logger.Warn("could not load classes file",
			zap.String("file", path), zap.Error(err))
		return nil
	}

	names := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}

	return names
}
