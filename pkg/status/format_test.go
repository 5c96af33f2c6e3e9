package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 🧪 TestDefaultFileFormatter tests the default file formatter implementation
func TestDefaultFileFormatter(t *testing.T) {
	tests := []struct {
		name        string
		info        FileInfo
		want        string
		description string
	}{
		{
			name:        "new_file",
			info:        FileInfo{Path: "out/test.txt", Status: StatusNew, Replacements: 1},
			want:        "✨ Created out/test.txt (1 replacement)",
			description: "should show creation symbol for new files",
		},
		{
			name:        "modified_file",
			info:        FileInfo{Path: "config.yaml", Status: StatusModified, Replacements: 3},
			want:        "📝 Obfuscated config.yaml (3 replacements)",
			description: "should show obfuscation symbol for changed files",
		},
		{
			name:        "skipped_with_reason",
			info:        FileInfo{Path: "logo.png", Status: StatusSkipped, Reason: "binary file"},
			want:        "⏭️  Skipped logo.png: binary file",
			description: "should include the skip reason",
		},
		{
			name:        "skipped_without_reason",
			info:        FileInfo{Path: "logo.png", Status: StatusSkipped},
			want:        "⏭️  Skipped logo.png",
			description: "should omit an empty reason",
		},
		{
			name:        "failed_file",
			info:        FileInfo{Path: "broken.txt", Status: StatusFailed},
			want:        "❌ Failed broken.txt",
			description: "should show failure symbol",
		},
		{
			name:        "unchanged_file",
			info:        FileInfo{Path: "stable.txt", Status: StatusUnchanged},
			want:        "👍 Unchanged stable.txt",
			description: "should show unchanged symbol for untouched files",
		},
	}

	formatter := NewDefaultFileFormatter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatter.FormatFileOperation(tt.info)
			assert.Equal(t, tt.want, got, tt.description)
		})
	}
}

// 🧪 TestProgressFormatting tests progress message formatting
func TestProgressFormatting(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		expected string
	}{
		{name: "zero_progress", current: 0, total: 10, expected: "⏳ Progress: 0/10 (0%)"},
		{name: "half_progress", current: 5, total: 10, expected: "⏳ Progress: 5/10 (50%)"},
		{name: "complete", current: 10, total: 10, expected: "✅ Progress: 10/10 (100%)"},
		{name: "zero_total", current: 0, total: 0, expected: "✅ Progress: 0/0 (0%)"},
		{name: "zero_total_with_current", current: 5, total: 0, expected: "✅ Progress: 5/0 (100%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewDefaultFileFormatter()
			assert.Equal(t, tt.expected, formatter.FormatProgress(tt.current, tt.total))
		})
	}
}

// 🧪 TestErrorFormatting tests error message formatting
func TestErrorFormatting(t *testing.T) {
	formatter := NewDefaultFileFormatter()

	assert.Equal(t, "❌ Error: assert.AnError general error for testing", formatter.FormatError(assert.AnError))
	assert.Equal(t, "", formatter.FormatError(nil))
}
