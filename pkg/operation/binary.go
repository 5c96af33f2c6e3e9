package operation

import "bytes"

// sniffLen is how much of a file is checked for NUL bytes.
const sniffLen = 8000

// IsBinary reports whether content looks binary: a NUL byte in its first
// 8000 bytes.
func IsBinary(content []byte) bool {
	if len(content) > sniffLen {
		content = content[:sniffLen]
	}
	return bytes.IndexByte(content, 0) >= 0
}
