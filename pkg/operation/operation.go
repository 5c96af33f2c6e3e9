// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/wozniakpl/obfuscator/pkg/log"
	"github.com/wozniakpl/obfuscator/pkg/ruleset"
	"github.com/wozniakpl/obfuscator/pkg/status"
	"github.com/wozniakpl/obfuscator/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one unit of work executed by a Runner
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains what every file operation needs
type Options struct {
	// Rules is the compiled rule set to apply
	Rules *ruleset.RuleSet
	// StatusMgr writes files and tracks their status
	StatusMgr *status.Manager
	// Log prints per-file lines, nil for none
	Log *log.Logger
	// DryRun computes results and diffs without writing
	DryRun bool
	// Backup keeps a .bak copy of every file that is overwritten
	Backup bool
	// Diff receives unified diffs in dry-run mode, nil discards them
	Diff io.Writer
}

// 📦 BaseOperation holds the shared state of file operations
type BaseOperation struct {
	Options
	Replacer *text.Replacer
}

// 🏭 NewBaseOperation creates a base operation. Diff is wrapped so that
// operations sharing it can write concurrently.
func NewBaseOperation(opts Options) (BaseOperation, error) {
	if opts.Rules == nil {
		return BaseOperation{}, errors.Errorf("rules are required")
	}
	if opts.StatusMgr == nil {
		return BaseOperation{}, errors.Errorf("status manager is required")
	}
	if opts.Diff == nil {
		opts.Diff = io.Discard
	}
	if _, ok := opts.Diff.(*lockedWriter); !ok {
		opts.Diff = &lockedWriter{w: opts.Diff}
	}
	return BaseOperation{
		Options:  opts,
		Replacer: text.NewReplacer(opts.Rules),
	}, nil
}

// 📄 FileJob names the file to read, the file to write and how to show it
type FileJob struct {
	Source string // File to read
	Dest   string // File to write, equal to Source when rewriting in place
	Rel    string // Display path
}

// 📋 PlanFiles builds one in-place operation per path
func PlanFiles(ctx context.Context, opts Options, paths []string) ([]Operation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}

	ops := make([]Operation, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Errorf("resolving %s: %w", p, err)
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		ops = append(ops, newObfuscateOperation(base, FileJob{Source: abs, Dest: abs, Rel: p}))
	}
	return ops, nil
}

// 📋 PlanDir discovers the files in scope and builds one operation per file.
// With an empty out the files are rewritten in place; otherwise results go
// to the same relative path under out.
func PlanDir(ctx context.Context, opts Options, scope Scope, out string) ([]Operation, error) {
	logger := zerolog.Ctx(ctx)

	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(scope.Root)
	if err != nil {
		return nil, errors.Errorf("resolving %s: %w", scope.Root, err)
	}
	scope.Root = root

	dest := root
	if out != "" {
		if dest, err = filepath.Abs(out); err != nil {
			return nil, errors.Errorf("resolving %s: %w", out, err)
		}
		// never read back what this run writes
		if rel, err := filepath.Rel(root, dest); err == nil && insideRoot(rel) {
			scope.Exclude = append(slices.Clone(scope.Exclude), filepath.ToSlash(rel)+"/**")
		}
	}

	files, err := scope.Discover(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("root", root).Str("dest", dest).Int("files", len(files)).Msg("planned directory run")

	ops := make([]Operation, 0, len(files))
	for _, rel := range files {
		native := filepath.FromSlash(rel)
		ops = append(ops, newObfuscateOperation(base, FileJob{
			Source: filepath.Join(root, native),
			Dest:   filepath.Join(dest, native),
			Rel:    rel,
		}))
	}
	return ops, nil
}

// insideRoot reports whether a path relative to the root points strictly
// below it. "..cache" is a child, "../x" is not.
func insideRoot(rel string) bool {
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
