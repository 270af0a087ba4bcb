// Package treecheck validates the repository layout around the prompts
// framework: configuration files exist and parse, module and plugin
// documents are present, and the companion Rails application tree holds
// its key files. The Rails tree is probed for file presence only; its
// contents are never parsed.
package treecheck

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Probe is the existence result for one relative path.
type Probe struct {
	Path   string
	Exists bool
	Size   int64
}

// Prober answers existence questions about paths under a root directory.
type Prober struct {
	// Root is the directory all relative paths resolve against.
	Root string
}

// NewProber creates a Prober rooted at dir.
func NewProber(dir string) *Prober {
	return &Prober{Root: dir}
}

// Exists reports whether the relative path exists under the root.
func (p *Prober) Exists(rel string) bool {
	_, err := os.Stat(filepath.Join(p.Root, rel))
	return err == nil
}

// Stat returns the size of the relative path, and whether it exists.
func (p *Prober) Stat(rel string) (int64, bool) {
	info, err := os.Stat(filepath.Join(p.Root, rel))
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

// ProbeAll checks each path in order and returns per-path results.
func (p *Prober) ProbeAll(paths []string) []Probe {
	results := make([]Probe, 0, len(paths))
	for _, rel := range paths {
		size, ok := p.Stat(rel)
		results = append(results, Probe{Path: rel, Exists: ok, Size: size})
	}
	return results
}

// CountMatching counts files directly inside the relative directory whose
// name matches the glob pattern. A missing directory counts zero.
func (p *Prober) CountMatching(relDir, pattern string) int {
	matches, err := filepath.Glob(filepath.Join(p.Root, relDir, pattern))
	if err != nil {
		return 0
	}
	return len(matches)
}

// CountRecursive counts files with the given extension anywhere under the
// relative directory. A missing directory counts zero.
func (p *Prober) CountRecursive(relDir, ext string) int {
	count := 0
	root := filepath.Join(p.Root, relDir)
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ext) {
			count++
		}
		return nil
	})
	return count
}
