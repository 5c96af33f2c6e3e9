/*
Package status writes obfuscated files safely and tracks what happened to each one.

	            +-------------+
	            |   Status    |
	            |  (Manager)  |
	            +------+------+
	                   |
	      +------------+-----------+
	      |                        |
	+-----+-----+            +-----+-----+
	|   Files   |            |  Tracking |
	| (Storage) |            | (Reports) |
	+-----------+            +-----------+

🎯 Purpose:
- Writes files atomically (temp file in the same directory, then rename)
- Keeps the permissions of files it rewrites
- Makes .bak copies before rewriting when asked
- Tracks per-file status and progress for a run

🔄 Flow:
1. Receives obfuscated content from an operation
2. Compares it with what is on disk (new, modified, unchanged)
3. Backs up and writes it
4. Records a FileInfo and advances progress

🤝 Pieces:
- Manager: atomic writes, compare, backup and restore, status and progress
- FileFormatter: message formatting for logs
- FormatSummary: the one-line tally printed after a run

Relative paths resolve against the manager's base directory. Absolute paths
are used as given, so one manager can serve both a directory run and a list
of files from anywhere.

🔍 Example:

	mgr := status.New(outDir, zerolog.Ctx(ctx))

	st, err := mgr.Compare(ctx, "notes.txt", obfuscated)
	if err == nil && st != status.StatusUnchanged {
		err = mgr.WriteFile(ctx, "notes.txt", obfuscated, 0)
	}

	mgr.TrackFile(ctx, "notes.txt", status.FileInfo{Status: st, Replacements: n})
	fmt.Println(status.FormatSummary(files))
*/
package status
