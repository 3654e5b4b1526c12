package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chai-engine/promptchain/internal/core/domain"
	"github.com/chai-engine/promptchain/internal/logger"
)

// contextExtensions are the file types loaded from variant directories.
var contextExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// LoadContextDir enumerates a variant directory and returns its context
// items sorted by filename. Only .txt and .md files are loaded;
// subdirectories and other file types are ignored. Returns a
// configuration error if the directory is missing, holds no context
// files, or holds two files with the same stem (a.txt and a.md would
// collide on the output filename).
func LoadContextDir(dir, label string) ([]domain.ContextItem, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s directory %q: %v", domain.ErrConfigInvalid, label, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s path %q is not a directory", domain.ErrConfigInvalid, label, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s directory %q: %v", domain.ErrConfigInvalid, label, dir, err)
	}

	var items []domain.ContextItem
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !contextExtensions[ext] {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %s files %q and %q map to the same output name %q",
				domain.ErrConfigInvalid, label, prev, entry.Name(), name)
		}
		seen[name] = entry.Name()

		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s file %q: %v", domain.ErrConfigInvalid, label, path, err)
		}

		items = append(items, domain.ContextItem{
			Name:    name,
			Content: string(content),
		})
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no .txt or .md files in %s directory %q", domain.ErrEmptyVariantDir, label, dir)
	}

	// ReadDir sorts by filename already; keep the guarantee explicit.
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	logger.Debug("loaded %d context files from %s (%s)", len(items), dir, label)
	return items, nil
}

// LoadPromptFile reads one of the two fixed prompt files.
func LoadPromptFile(path, label string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s file %q: %v", domain.ErrConfigInvalid, label, path, err)
	}
	return string(content), nil
}

// RunInputs is everything the runner needs from disk: both variant
// sets and the fixed prompt template.
type RunInputs struct {
	VariantsA []domain.ContextItem
	VariantsB []domain.ContextItem
	Template  domain.PromptTemplate
}

// Combinations returns |A| * |B|.
func (in RunInputs) Combinations() int {
	return len(in.VariantsA) * len(in.VariantsB)
}

// LoadRunInputs loads and validates all run inputs. Any missing or
// unreadable path fails the run before a single model call is made.
func LoadRunInputs(cfg domain.RunConfig) (RunInputs, error) {
	variantsA, err := LoadContextDir(cfg.VarADir, "variant A")
	if err != nil {
		return RunInputs{}, err
	}

	variantsB, err := LoadContextDir(cfg.VarBDir, "variant B")
	if err != nil {
		return RunInputs{}, err
	}

	system, err := LoadPromptFile(cfg.SystemPromptPath, "system prompt")
	if err != nil {
		return RunInputs{}, err
	}

	task, err := LoadPromptFile(cfg.TaskPromptPath, "task prompt")
	if err != nil {
		return RunInputs{}, err
	}

	return RunInputs{
		VariantsA: variantsA,
		VariantsB: variantsB,
		Template:  domain.PromptTemplate{System: system, Task: task},
	}, nil
}
