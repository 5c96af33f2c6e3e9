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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "test.txt",
					Status:       "new",
					IsNew:        true,
					Replacements: 2,
				})
			},
			wantLogs: []string{
				"✓ test.txt                            2 replaced      new",
			},
		},
		{
			name: "log_run_in_place",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Command: "dir",
					Root:    "/tmp/src",
					Rules:   3,
				})
			},
			wantLogs: []string{
				"[dir /tmp/src]",
				"◆ 3 rules • write",
			},
		},
		{
			name: "log_run_with_output_dry_run",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Command: "dir",
					Root:    "src",
					Output:  "out",
					Rules:   1,
					DryRun:  true,
				})
			},
			wantLogs: []string{
				"[dir src → out]",
				"◆ 1 rules • dry run",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Disabled)

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.InfoLevel)

	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestFileOperationFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "new_file",
			op: FileOperation{
				Path:         "test.txt",
				Status:       "new",
				Replacements: 2,
				IsNew:        true,
			},
			want: "✓ test.txt                            2 replaced      new",
		},
		{
			name: "modified_file",
			op: FileOperation{
				Path:         "a/b.go",
				Status:       "modified",
				Replacements: 5,
				IsModified:   true,
			},
			want: "⟳ a/b.go                              5 replaced      modified",
		},
		{
			name: "skipped_file",
			op: FileOperation{
				Path:      "logo.png",
				Status:    "skipped binary",
				IsSkipped: true,
			},
			want: "- logo.png                            0 replaced      skipped binary",
		},
		{
			name: "failed_file",
			op: FileOperation{
				Path:     "c.txt",
				Status:   "failed",
				IsFailed: true,
			},
			want: "✗ c.txt                               0 replaced      failed",
		},
		{
			name: "unchanged_file",
			op: FileOperation{
				Path:   "d.txt",
				Status: "unchanged",
			},
			want: "• d.txt                               0 replaced      unchanged",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Disabled)

			logger.LogFileOperation(context.Background(), tt.op)

			output := strings.TrimSpace(buf.String())
			assert.Equal(t, tt.want, output, "formatted output should match")
		})
	}
}

func TestRunSummary(t *testing.T) {
	logger := New(io.Discard, zerolog.Disabled)
	ctx := context.Background()

	// no run started
	assert.Equal(t, Summary{}, logger.EndRun(ctx))

	logger.StartRun(ctx, RunOperation{Command: "file", Root: ".", Rules: 1})

	ops := []FileOperation{
		{Path: "a", Replacements: 3, IsModified: true},
		{Path: "b", Replacements: 1, IsNew: true},
		{Path: "c"},
		{Path: "d", IsSkipped: true},
		{Path: "e", IsFailed: true},
	}

	var wg sync.WaitGroup
	for _, op := range ops {
		wg.Add(1)
		go func(op FileOperation) {
			defer wg.Done()
			logger.LogFileOperation(ctx, op)
		}(op)
	}
	wg.Wait()

	got := logger.EndRun(ctx)
	assert.Equal(t, Summary{
		Files:        5,
		Modified:     2,
		Unchanged:    1,
		Skipped:      1,
		Failed:       1,
		Replacements: 4,
	}, got)

	// summary resets after the run ends
	assert.Equal(t, Summary{}, logger.EndRun(ctx))
}
