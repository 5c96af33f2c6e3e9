/*
Package config reads substitution rule files and hands them to ruleset.Load.

	                 +-------------+
	                 |  rule file  |
	                 +------+------+
	                        |
	      +-----------------+-----------------+
	      |                 |                 |
	+-----+-----+     +-----+-----+     +-----+-----+
	|   JSON    |     |   YAML    |     |    HCL    |
	|  Parser   |     |  Parser   |     |  Parser   |
	+-----+-----+     +-----+-----+     +-----+-----+
	      |                 |                 |
	      +--------+--------+--------+--------+
	               |                 |
	        ruleset.Map / []any   ConfigError(MalformedConfig)
	               |
	         ruleset.Load

🎯 Purpose:
- Picks a decoder from the file name (.json, .yaml/.yml, .hcl)
- Sniffs the format of a bare .obfuscaterc file (JSON, then YAML, then HCL)
- Decodes into ordered values so rule order survives
- Reports syntax errors with the same ConfigError kind as bad shapes

📝 Design Philosophy:
The package does I/O and syntax only. What a valid rule set looks like is
decided by ruleset.Load, so the three formats can never disagree about it.

🔍 Example:

	rs, err := config.Load(ctx, ".obfuscate.yaml")
	if err != nil {
		var cerr *ruleset.ConfigError
		if errors.As(err, &cerr) {
			fmt.Printf("config error in %s: %v\n", cerr.Field, cerr.Kind)
		}
		return err
	}
*/
package config
