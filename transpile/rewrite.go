package transpile

import "strings"

// RewriteEquality turns loose equality operators into strict ones. The
// substitution is textual: operators inside string literals and comments
// are rewritten too.
func RewriteEquality(statement string) string {
	statement = strings.ReplaceAll(statement, "==", "===")
	return strings.ReplaceAll(statement, "!=", "!==")
}
