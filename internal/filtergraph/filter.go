package filtergraph

import (
	"math"
	"strconv"
	"strings"
)

// Arg is one filter option. An empty Key renders the value positionally.
type Arg struct {
	Key   string
	Value string
	// Raw values are written without escaping.
	Raw bool
}

// KV builds a keyed argument. Numeric values are formatted without loss;
// strings are used as given.
func KV(key string, value any) Arg {
	return Arg{Key: key, Value: Format(value)}
}

// RawKV builds a keyed argument whose value is already in filter graph
// syntax.
func RawKV(key, value string) Arg {
	return Arg{Key: key, Value: value, Raw: true}
}

// Value builds a positional argument.
func Value(value any) Arg {
	return Arg{Value: Format(value)}
}

// Format renders a value the way it should appear in a filter argument.
// Non-finite floats are written verbatim ("+Inf", "NaN") so out-of-range
// input reaches FFmpeg unchanged.
func Format(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return Num(v)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case interface{ String() string }:
		return v.String()
	default:
		return ""
	}
}

// Num formats a float with the shortest exact representation, trimming
// values that are whole numbers to integers.
func Num(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Filter is a single filter invocation such as scale=1280:720.
type Filter struct {
	Name string
	Args []Arg
}

// New builds a filter.
func New(name string, args ...Arg) Filter {
	return Filter{Name: name, Args: args}
}

// Verbatim wraps a complete filter expression ("hflip", "eq=contrast=1.2")
// that is emitted unchanged.
func Verbatim(expr string) Filter {
	return Filter{Name: expr}
}

// With returns a copy of f with extra arguments appended.
func (f Filter) With(args ...Arg) Filter {
	out := Filter{Name: f.Name, Args: make([]Arg, 0, len(f.Args)+len(args))}
	out.Args = append(out.Args, f.Args...)
	out.Args = append(out.Args, args...)
	return out
}

// String renders name=arg:arg with values quoted where the filter graph
// syntax requires it.
func (f Filter) String() string {
	if len(f.Args) == 0 {
		return f.Name
	}
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteByte('=')
	for i, arg := range f.Args {
		if i > 0 {
			b.WriteByte(':')
		}
		if arg.Key != "" {
			b.WriteString(arg.Key)
			b.WriteByte('=')
		}
		if arg.Raw {
			b.WriteString(arg.Value)
		} else {
			b.WriteString(Quote(arg.Value))
		}
	}
	return b.String()
}

// Quote escapes v for both parsing levels it goes through: the option
// parser (which splits on ':') and the graph parser (which splits on ',',
// ';' and brackets). Values that need it are wrapped in single quotes at
// the graph level, so expressions read the way they are usually written:
// x='if(gte(t,2),10,20)'.
func Quote(v string) string {
	if v == "" {
		return "''"
	}
	escaped := optionEscaper.Replace(v)
	if !strings.ContainsAny(escaped, "\\'[],; \t\n") {
		return escaped
	}
	return "'" + strings.ReplaceAll(escaped, "'", `'\''`) + "'"
}

var optionEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`)

// EscapeText prepares literal text for drawtext, whose text option is also
// run through the %{...} expansion engine.
func EscapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`)
	return r.Replace(s)
}
