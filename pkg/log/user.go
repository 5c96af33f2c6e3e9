package log

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/wozniakpl/obfuscator/pkg/ruleset"
)

// 📢 UserLogger prints user-facing messages with pterm and mirrors them to
// the context's zerolog logger
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎯 NewUserLogger creates a new user logger writing to out
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

// 📊 LogStateChange logs a change to the overall state
func (u *UserLogger) LogStateChange(description string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"})
	fmt.Fprint(u.out, printer.Sprintln(description))
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		fmt.Fprint(u.out, pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Sprintln(description))
		u.log.Info().Msg(description)
		return
	}

	if err != nil {
		fmt.Fprint(u.out, pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Sprintln(description))
		fmt.Fprint(u.out, pterm.Error.Sprintln(err))
		u.log.Error().Err(err).Msg(description)
		return
	}

	fmt.Fprint(u.out, pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Sprintln(description))
	u.log.Warn().Msg(description)
}

// 📋 LogRuleSet renders the rules of rs as a table, in application order
func (u *UserLogger) LogRuleSet(source string, rs *ruleset.RuleSet) error {
	data := pterm.TableData{{"#", "Pattern", "Replacement"}}
	for i, r := range rs.Rules() {
		data = append(data, []string{fmt.Sprint(i + 1), r.Pattern, r.Replacement})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return err
	}

	fmt.Fprintf(u.out, "%s %s\n", pterm.Bold.Sprint("source:"), source)
	fmt.Fprintf(u.out, "%s %t\n", pterm.Bold.Sprint("case sensitive:"), rs.CaseSensitive())
	fmt.Fprintf(u.out, "%s %s\n", pterm.Bold.Sprint("mode:"), rs.Mode())
	if res := rs.Resources(); res != nil {
		fmt.Fprintf(u.out, "%s %v\n", pterm.Bold.Sprint("resources:"), resourcesString(res))
	}
	fmt.Fprintln(u.out, table)

	u.log.Debug().Str("source", source).Int("rules", rs.Len()).Msg("rendered rule table")
	return nil
}

func resourcesString(v any) string {
	m, ok := v.(ruleset.Map)
	if !ok {
		return fmt.Sprint(v)
	}
	s := ""
	for i, e := range m {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%v", e.Key, e.Value)
	}
	return s
}
