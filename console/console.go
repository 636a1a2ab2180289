// Package console writes ANSI-colored messages to stdout for use by
// entrypoint scripts. Color handling is deliberately permissive: a name
// outside the known set renders the message uncolored rather than
// failing, so a bad color never aborts a caller's startup flow.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const reset = "\033[0m"

// colors maps the recognized color names to their ANSI sequences
var colors = map[string]string{
	"RED":    "\033[0;31m",
	"GREEN":  "\033[0;32m",
	"ORANGE": "\033[0;33m",
	"CYAN":   "\033[0;36m",
}

// Print writes the message to stdout wrapped in the named color
func Print(color, message string) {
	Fprint(os.Stdout, color, message)
}

// Fprint writes the message to w wrapped in the named color, with
// backslash escapes in the message interpreted. The trailing reset is
// always written, even for an unrecognized color name.
func Fprint(w io.Writer, color, message string) {
	fmt.Fprintf(w, "%s%s%s\n",
		colors[strings.ToUpper(color)], unescape(message), reset)
}

// unescape interprets the backslash escapes that `echo -e` supports and
// that entrypoint scripts rely on for multi-line banners
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case 'e':
			b.WriteByte('\033')
		case '\\':
			b.WriteByte('\\')
		default:
			// not an escape we know, keep it verbatim
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
