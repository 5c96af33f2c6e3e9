/*
Package operation runs the obfuscation engine over files on disk.

	+-------------+
	|    Scope    |
	| (Discovery) |
	+------+------+
	       |
	+------+------+
	|  Operation  |
	| (Obfuscate) |
	+------+------+
	       |
	+------+------+
	|   Runner    |
	|  (errgroup) |
	+-------------+

🎯 Purpose:
- Finds files under a root with doublestar include/exclude globs
- Reads the config's resources value as a default scope
- Applies a rule set to each file and writes the result in place or to an
  output directory
- Prints unified diffs instead of writing in dry-run mode

🔄 Flow:
1. PlanFiles or PlanDir turns paths into one Operation per file
2. Each operation reads the file, skips it if it is binary, and runs the
   text.Replacer
3. File I/O and status tracking go through status.Manager
4. OperationRunner executes the operations, sequentially or with a bounded
   number of workers, and stops at the first error

📝 Design Philosophy:
The engine in pkg/text never touches the file system. Everything that does
lives here or in pkg/status, so the engine stays synchronous and
side-effect free.

🔍 Example:

	scope, _ := operation.ScopeFromResources("docs", rs.Resources())
	ops, err := operation.PlanDir(ctx, operation.Options{
		Rules:     rs,
		StatusMgr: status.New("docs", zerolog.Ctx(ctx)),
	}, scope, "")
	if err != nil {
		return err
	}
	err = operation.NewRunner(zerolog.Ctx(ctx), 4, nil).Run(ctx, ops...)
*/
package operation
