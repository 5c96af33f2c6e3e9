package operation

import (
	"context"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/wozniakpl/obfuscator/pkg/ruleset"
	"github.com/wozniakpl/obfuscator/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// DefaultInclude matches every file under the root.
const DefaultInclude = "**/*"

// 🔍 Scope selects files under Root with doublestar globs. Patterns are
// slash-separated and relative to Root.
type Scope struct {
	Root    string
	Include []string
	Exclude []string
}

// ScopeFromResources reads include and exclude patterns from a config's
// resources value. Each may be a single glob or a list of globs. A nil
// value gives an empty scope.
func ScopeFromResources(root string, resources any) (Scope, error) {
	scope := Scope{Root: root}
	if resources == nil {
		return scope, nil
	}

	m, ok := resources.(ruleset.Map)
	if !ok {
		return scope, errors.Errorf("resources: got %T, want an object", resources)
	}

	for _, e := range m {
		patterns, err := globList(e.Value)
		if err != nil {
			return scope, errors.Errorf("resources.%s: %w", e.Key, err)
		}
		switch e.Key {
		case "include":
			scope.Include = append(scope.Include, patterns...)
		case "exclude":
			scope.Exclude = append(scope.Exclude, patterns...)
		default:
			return scope, errors.Errorf("resources: unknown key %q", e.Key)
		}
	}
	return scope, nil
}

func globList(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{x}, nil
	case []string:
		return x, nil
	case []any:
		out := make([]string, 0, len(x))
		for i, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Errorf("[%d]: got %T, want a string", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, errors.Errorf("got %T, want a string or a list of strings", v)
}

// Validate checks that every pattern is a valid glob.
func (s Scope) Validate() error {
	for _, p := range append(append([]string{}, s.Include...), s.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

// 📂 Discover returns the slash-separated paths of regular files under Root
// that match an include pattern and no exclude pattern, sorted. Backup
// copies are never returned.
func (s Scope) Discover(ctx context.Context) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if err := s.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.Root)
	if err != nil {
		return nil, errors.Errorf("reading root: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("root %s is not a directory", s.Root)
	}

	include := s.Include
	if len(include) == 0 {
		include = []string{DefaultInclude}
	}

	fsys := os.DirFS(s.Root)
	seen := map[string]bool{}
	var files []string

	for _, pattern := range include {
		err := doublestar.GlobWalk(fsys, pattern, func(path string, d fs.DirEntry) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !d.Type().IsRegular() || seen[path] {
				return nil
			}
			if strings.HasSuffix(path, status.BackupSuffix) {
				return nil
			}
			if s.excluded(path) {
				logger.Trace().Str("path", path).Msg("excluded by pattern")
				return nil
			}
			seen[path] = true
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, errors.Errorf("matching %q: %w", pattern, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// 🔍 excluded checks if a path matches an exclude pattern
func (s Scope) excluded(path string) bool {
	for _, pattern := range s.Exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}
