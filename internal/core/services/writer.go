package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai-engine/promptchain/internal/core/domain"
	"github.com/chai-engine/promptchain/internal/logger"
)

// outputFilePerm is the mode for response files.
const outputFilePerm = 0o644

// OutputFilename returns the deterministic filename for one
// combination: "{A}__{B}.txt", with both names sanitised. Rerunning
// with unchanged inputs reproduces identical filenames; existing files
// are overwritten (last-run-wins).
func OutputFilename(aName, bName string) string {
	return sanitizeName(aName) + "__" + sanitizeName(bName) + ".txt"
}

// sanitizeName maps anything outside [A-Za-z0-9_-] to '_' so the pair
// names always form a portable filename.
func sanitizeName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

// WriteResponse persists one model response to the output directory,
// creating the directory if absent. Returns the written path.
func WriteResponse(outputDir, aName, bName, response string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %q: %w", outputDir, err)
	}

	path := filepath.Join(outputDir, OutputFilename(aName, bName))
	if err := os.WriteFile(path, []byte(response), outputFilePerm); err != nil {
		return "", fmt.Errorf("write response %q: %w", path, err)
	}

	logger.Debug("wrote response to %s", path)
	return path, nil
}

// EnsureOutputDir validates the output directory can be created before
// any model call is made.
func EnsureOutputDir(outputDir string) error {
	if outputDir == "" {
		return fmt.Errorf("%w: output directory not set", domain.ErrConfigInvalid)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("%w: create output directory %q: %v", domain.ErrConfigInvalid, outputDir, err)
	}
	return nil
}
