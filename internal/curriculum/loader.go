package curriculum

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Library holds the preset roadmaps and syllabi available for plan
// generation: the built-in presets plus any roadmap YAML files loaded
// from a directory at startup.
type Library struct {
	roadmaps map[string]Roadmap
	syllabi  map[string][]Subject
	mu       sync.RWMutex
}

// NewLibrary creates a library with the built-in presets. If rootDir is
// non-empty, roadmap YAML files found under it are loaded on top; a file's
// preset key is its base name without extension.
func NewLibrary(rootDir string) (*Library, error) {
	l := &Library{
		roadmaps: make(map[string]Roadmap),
		syllabi:  make(map[string][]Subject),
	}
	for k, r := range builtinRoadmaps {
		l.roadmaps[k] = r
	}
	for k, s := range builtinSyllabi {
		l.syllabi[k] = s
	}

	if rootDir != "" {
		if err := l.loadDir(rootDir); err != nil {
			return nil, fmt.Errorf("loading preset directory: %w", err)
		}
	}

	slog.Info("preset library loaded", "roadmaps", len(l.roadmaps), "syllabi", len(l.syllabi))
	return l, nil
}

// Roadmap returns a roadmap preset by key.
func (l *Library) Roadmap(key string) (Roadmap, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	r, ok := l.roadmaps[key]
	return r, ok
}

// Syllabus returns a syllabus preset by key.
func (l *Library) Syllabus(key string) ([]Subject, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.syllabi[key]
	return s, ok
}

// Available lists all roadmap presets, sorted by key.
func (l *Library) Available() []RoadmapInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()

	infos := make([]RoadmapInfo, 0, len(l.roadmaps))
	for key, r := range l.roadmaps {
		title := r.Title
		if title == "" {
			title = DisplayTitle(key)
		}
		infos = append(infos, RoadmapInfo{ID: key, Title: title, Description: r.Description})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

func (l *Library) loadDir(rootDir string) error {
	return filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}
		return l.loadRoadmap(path)
	})
}

func (l *Library) loadRoadmap(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var r Roadmap
	if err := yaml.Unmarshal(data, &r); err != nil {
		slog.Warn("skipping invalid roadmap YAML", "path", path, "error", err)
		return nil
	}
	if len(r.Stages) == 0 {
		return nil // Not a roadmap file
	}

	base := filepath.Base(path)
	key := strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")

	l.mu.Lock()
	l.roadmaps[key] = r
	l.mu.Unlock()

	return nil
}
