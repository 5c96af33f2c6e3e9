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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎯 FormatSummary renders a one-line colored tally of tracked files
//
//	5 files • 2 obfuscated • 1 new • 1 unchanged • 1 skipped • 0 failed • 7 replacements
func FormatSummary(files []FileInfo) string {
	counts := map[FileStatus]int{}
	replacements := 0
	for _, f := range files {
		counts[f.Status]++
		replacements += f.Replacements
	}

	parts := []string{
		color.New(color.Bold).Sprintf("%d files", len(files)),
		color.BlueString("%d obfuscated", counts[StatusModified]),
		color.GreenString("%d new", counts[StatusNew]),
		color.CyanString("%d unchanged", counts[StatusUnchanged]),
		color.YellowString("%d skipped", counts[StatusSkipped]),
	}

	failed := fmt.Sprintf("%d failed", counts[StatusFailed])
	if counts[StatusFailed] > 0 {
		failed = color.RedString(failed)
	} else {
		failed = color.HiBlackString(failed)
	}
	parts = append(parts, failed, color.MagentaString("%d replacements", replacements))

	return strings.Join(parts, color.New(color.Faint).Sprint(" • "))
}
