package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wozniakpl/obfuscator/pkg/ruleset"
	"gitlab.com/tozd/go/errors"
)

func TestUserLogger(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	tests := []struct {
		name string
		op   func(u *UserLogger)
		want []string
	}{
		{
			name: "state_change",
			op:   func(u *UserLogger) { u.LogStateChange("3 files obfuscated") },
			want: []string{"3 files obfuscated"},
		},
		{
			name: "valid",
			op:   func(u *UserLogger) { u.LogValidation(true, "config is valid", nil) },
			want: []string{"config is valid"},
		},
		{
			name: "invalid_with_error",
			op: func(u *UserLogger) {
				u.LogValidation(false, "command failed", errors.New("rules: missing rules"))
			},
			want: []string{"command failed", "rules: missing rules"},
		},
		{
			name: "warning",
			op:   func(u *UserLogger) { u.LogValidation(false, "nothing to do", nil) },
			want: []string{"nothing to do"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.op(NewUserLogger(context.Background(), buf))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestUserLogger_LogRuleSet(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	rs, err := ruleset.Load(ruleset.Map{
		{Key: "caseSensitive", Value: false},
		{Key: "rules", Value: ruleset.Map{
			{Key: "alice", Value: "user1"},
			{Key: `\d+`, Value: "N"},
		}},
		{Key: "resources", Value: ruleset.Map{{Key: "include", Value: []any{"**/*.md"}}}},
	})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, NewUserLogger(context.Background(), buf).LogRuleSet(".obfuscaterc", rs))

	out := buf.String()
	assert.Contains(t, out, "source: .obfuscaterc")
	assert.Contains(t, out, "case sensitive: false")
	assert.Contains(t, out, "mode: regex")
	assert.Contains(t, out, "include=[**/*.md]")
	assert.Contains(t, out, "Pattern")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, `\d+`)
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("alice")), bytes.Index(buf.Bytes(), []byte(`\d+`)), "rules keep their order")
}
