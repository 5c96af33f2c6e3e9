/*
Package ruleset turns raw substitution config into an ordered, compiled set
of rules.

	  raw config (decoded)          free-text input
	  JSON / YAML / HCL value       "foo:bar, baz:qux"
	           |                           |
	      +----+----+               +------+------+
	      |  Load   |  strict       | ParseInline |  lenient
	      +----+----+  regex mode   +------+------+  literal mode
	           |                           |
	           +-------------+-------------+
	                         |
	                    +----+----+
	                    | RuleSet |  ordered, compiled, immutable
	                    +---------+

Two config shapes are accepted:

	{"secret": "***", "projectName": "project"}

	{
	  "caseSensitive": false,
	  "mode": "regex",
	  "rules": [{"secret": "***"}, "projectName:project"],
	  "resources": {"include": ["docs/*.md"]}
	}

The rules field may also be a single multi-entry mapping. The order of
rules is the order they are written in and is significant: later rules see
the output of earlier ones.

Every pattern is compiled when the RuleSet is built, so a bad regular
expression is reported as ErrPatternCompile before any text is touched.
Unless the config says otherwise, matching is case-sensitive
(DefaultCaseSensitive) and config patterns are regular expressions.
*/
package ruleset
