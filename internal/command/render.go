package command

import "strings"

// Render joins an argument vector into one shell command line. Input
// paths, the filter graph and the output path are always double-quoted;
// other arguments are quoted only when they contain shell metacharacters.
func Render(args []string) string {
	if len(args) == 0 {
		return ""
	}
	var b strings.Builder
	last := len(args) - 1
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case i == 0:
			b.WriteString(quoteIfNeeded(arg))
		case i == last, args[i-1] == "-i", args[i-1] == "-filter_complex":
			b.WriteString(quote(arg))
		default:
			b.WriteString(quoteIfNeeded(arg))
		}
	}
	return b.String()
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

func quote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"'`$\\|&;<>()[]*?!#~{}") {
		return quote(s)
	}
	return s
}
