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
	"bytes"
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/wozniakpl/obfuscator/pkg/log"
	"github.com/wozniakpl/obfuscator/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔒 obfuscateOperation rewrites one file with the rule set
type obfuscateOperation struct {
	BaseOperation
	job FileJob
}

func newObfuscateOperation(base BaseOperation, job FileJob) *obfuscateOperation {
	return &obfuscateOperation{BaseOperation: base, job: job}
}

// Job returns the file this operation works on
func (op *obfuscateOperation) Job() FileJob {
	return op.job
}

// 🏃 Execute runs the obfuscation for one file
func (op *obfuscateOperation) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := op.process(ctx)
	if err != nil {
		info = status.FileInfo{Status: status.StatusFailed, Error: err}
	}
	info.Path = op.job.Rel

	op.StatusMgr.TrackFile(ctx, op.job.Rel, info)
	op.logFile(ctx, info)

	if err != nil {
		return errors.Errorf("processing %s: %w", op.job.Rel, err)
	}
	return nil
}

// 📄 process reads, obfuscates and writes the file
func (op *obfuscateOperation) process(ctx context.Context) (status.FileInfo, error) {
	logger := zerolog.Ctx(ctx).With().Str("file", op.job.Rel).Logger()

	stat, err := os.Stat(op.job.Source)
	if err != nil {
		return status.FileInfo{}, errors.Errorf("reading file info: %w", err)
	}
	if !stat.Mode().IsRegular() {
		return status.FileInfo{}, errors.Errorf("not a regular file")
	}

	content, err := op.StatusMgr.ReadFile(ctx, op.job.Source)
	if err != nil {
		return status.FileInfo{}, err
	}

	if IsBinary(content) {
		logger.Debug().Msg("skipping binary file")
		return status.FileInfo{Status: status.StatusSkipped, Reason: "binary file", Size: stat.Size(), Mode: stat.Mode().Perm()}, nil
	}

	result, err := op.Replacer.ReplaceText(ctx, bytes.NewReader(content))
	if err != nil {
		return status.FileInfo{}, err
	}

	fileStatus, err := op.StatusMgr.Compare(ctx, op.job.Dest, result.ModifiedContent)
	if err != nil {
		return status.FileInfo{}, err
	}

	info := status.FileInfo{
		Status:       fileStatus,
		Size:         int64(len(result.ModifiedContent)),
		Mode:         stat.Mode().Perm(),
		Checksum:     status.Checksum(result.ModifiedContent),
		Replacements: result.ReplacementCount,
	}

	if op.DryRun {
		if err := op.writeDiff(ctx, content, result.ModifiedContent); err != nil {
			return status.FileInfo{}, err
		}
		return info, nil
	}

	if fileStatus == status.StatusUnchanged {
		return info, nil
	}

	backedUp := false
	if op.Backup && fileStatus == status.StatusModified {
		if err := op.StatusMgr.BackupFile(ctx, op.job.Dest); err != nil {
			return status.FileInfo{}, err
		}
		backedUp = true
	}

	if err := op.StatusMgr.WriteFile(ctx, op.job.Dest, result.ModifiedContent, stat.Mode().Perm()); err != nil {
		// the original is untouched, drop the backup we just made
		if backedUp {
			if rerr := op.StatusMgr.RestoreFile(ctx, op.job.Dest); rerr != nil {
				logger.Error().Err(rerr).Msg("restoring backup")
			}
		}
		return status.FileInfo{}, err
	}

	logger.Debug().
		Stringer("status", fileStatus).
		Int("replacements", result.ReplacementCount).
		Msg("wrote obfuscated file")

	return info, nil
}

// 📝 writeDiff prints what a real run would change
func (op *obfuscateOperation) writeDiff(ctx context.Context, before, after []byte) error {
	diff, err := UnifiedDiff(op.job.Rel, string(before), string(after))
	if err != nil {
		return err
	}
	if diff == "" {
		return nil
	}
	if _, err := io.WriteString(op.Diff, diff); err != nil {
		return errors.Errorf("writing diff: %w", err)
	}
	return nil
}

// 📝 logFile prints the console line for a processed file
func (op *obfuscateOperation) logFile(ctx context.Context, info status.FileInfo) {
	if op.Log == nil {
		return
	}

	label := info.Status.String()
	switch {
	case info.Status == status.StatusSkipped && info.Reason != "":
		label = "skipped " + info.Reason
	case op.DryRun && (info.Status == status.StatusNew || info.Status == status.StatusModified):
		label = "would be " + label
	}

	op.Log.LogFileOperation(ctx, log.FileOperation{
		Path:         op.job.Rel,
		Status:       label,
		Replacements: info.Replacements,
		IsNew:        info.Status == status.StatusNew,
		IsModified:   info.Status == status.StatusModified,
		IsSkipped:    info.Status == status.StatusSkipped,
		IsFailed:     info.Status == status.StatusFailed,
	})
}
