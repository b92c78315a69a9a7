package cmdline

import "strings"

// Split breaks s into arguments using the Microsoft C runtime rules:
//
//   - arguments are separated by spaces or tabs outside double quotes;
//   - a double quote toggles quoting and is not part of the argument;
//   - "" inside a quoted region produces a literal double quote;
//   - 2n backslashes followed by a quote produce n backslashes and a toggle;
//   - 2n+1 backslashes followed by a quote produce n backslashes and a literal quote;
//   - backslashes not followed by a quote are literal.
//
// No shell expansion of any kind is performed. An empty or all-blank s yields
// a nil slice.
func Split(s string) []string {
	var (
		args     []string
		cur      strings.Builder
		inQuotes bool
		hasArg   bool // distinguishes "" (empty argument) from no argument
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			n := 0
			for i < len(s) && s[i] == '\\' {
				n++
				i++
			}
			if i < len(s) && s[i] == '"' {
				cur.WriteString(strings.Repeat(`\`, n/2))
				if n%2 == 1 {
					cur.WriteByte('"')
				} else {
					inQuotes = !inQuotes
				}
			} else {
				cur.WriteString(strings.Repeat(`\`, n))
				i-- // reprocess the non-backslash byte
			}
			hasArg = true
		case c == '"':
			if inQuotes && i+1 < len(s) && s[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
			hasArg = true
		case (c == ' ' || c == '\t') && !inQuotes:
			if hasArg {
				args = append(args, cur.String())
				cur.Reset()
				hasArg = false
			}
		default:
			cur.WriteByte(c)
			hasArg = true
		}
	}
	if hasArg {
		args = append(args, cur.String())
	}
	return args
}
