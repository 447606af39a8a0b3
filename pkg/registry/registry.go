// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	apperrors "project-analyzer/internal/common/errors"
)

// Registry holds the two immutable keyword sets. The zero value is not
// usable; build one with Default, New or LoadRegistry.
type Registry struct {
	version string
	sets    map[KeywordSet][]string
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the built-in registry. It is built once per process and
// shared; callers must not modify the slices returned by Keywords.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := New("builtin", defaultRegenerative, defaultBiomimetic)
		if err != nil {
			panic(err)
		}
		defaultReg = reg
	})
	return defaultReg
}

// New builds a registry from explicit lists. Keywords are lower-cased and
// de-duplicated keeping the first occurrence; blank entries are dropped.
func New(version string, regenerative, biomimetic []string) (*Registry, error) {
	regen := cleanKeywords(regenerative)
	bio := cleanKeywords(biomimetic)
	if len(regen) == 0 {
		return nil, apperrors.NewRegistryInvalidError("regenerative keyword set is empty", nil)
	}
	if len(bio) == 0 {
		return nil, apperrors.NewRegistryInvalidError("biomimetic keyword set is empty", nil)
	}
	return &Registry{
		version: version,
		sets: map[KeywordSet][]string{
			Regenerative: regen,
			Biomimetic:   bio,
		},
	}, nil
}

// LoadRegistry reads a KeywordFile from path.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewRegistryInvalidError(fmt.Sprintf("read %s", path), err)
	}
	var file KeywordFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, apperrors.NewRegistryInvalidError(fmt.Sprintf("decode %s", path), err)
	}
	return New(file.Version, file.Regenerative, file.Biomimetic)
}

func cleanKeywords(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// Version identifies where the keyword lists came from.
func (r *Registry) Version() string {
	return r.version
}

// Keywords returns the ordered keywords of set.
func (r *Registry) Keywords(set KeywordSet) []string {
	return r.sets[set]
}

// Match reports which keywords of set occur in text, case-insensitively.
func (r *Registry) Match(text string, set KeywordSet) MatchResult {
	return MatchLower(strings.ToLower(text), r.sets[set])
}

// MatchLower is Match for text that is already lower-cased, so a caller
// checking several sets lowers the text once.
func MatchLower(lowered string, keywords []string) MatchResult {
	var matched []string
	for _, k := range keywords {
		if strings.Contains(lowered, k) {
			matched = append(matched, k)
		}
	}
	return MatchResult{Found: len(matched) > 0, Matched: matched}
}

// File returns the on-disk form of r, suitable for SaveRegistry.
func (r *Registry) File() KeywordFile {
	return KeywordFile{
		Version:      r.version,
		Regenerative: append([]string(nil), r.sets[Regenerative]...),
		Biomimetic:   append([]string(nil), r.sets[Biomimetic]...),
	}
}

// SaveRegistry writes file as indented JSON, creating parent directories.
func SaveRegistry(path string, file KeywordFile) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}
