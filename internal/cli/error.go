package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hlop3z/sdelite/internal/sderr"
)

// Context keys rendered in dedicated places rather than as "= key: value" lines.
var positionalKeys = map[string]bool{
	"file": true, "line": true, "excerpt": true,
	"helps": true, "notes": true,
}

// FormatError formats an error for CLI display in Cargo/rustc style. A
// *sderr.Error anywhere in the chain contributes its code, location,
// context, notes and help hints; anything else is printed as a plain error.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var coded *sderr.Error
	if errors.As(err, &coded) {
		return formatCodedError(coded)
	}
	return formatGenericError(err)
}

func formatCodedError(err *sderr.Error) string {
	var b strings.Builder
	ctx := err.Context()

	// error[E2001]: malformed JSON
	b.WriteString(Error("error"))
	b.WriteString("[")
	b.WriteString(Code(string(err.Code())))
	b.WriteString("]: ")
	b.WriteString(err.Message())
	b.WriteString("\n")

	file, _ := ctx["file"].(string)
	line, _ := ctx["line"].(int)
	gutter := "   "
	if line > 0 {
		gutter = strings.Repeat(" ", len(strconv.Itoa(line))+1)
	}

	if file != "" {
		loc := file
		if line > 0 {
			loc = fmt.Sprintf("%s:%d", file, line)
		}
		fmt.Fprintf(&b, "%s%s %s\n", gutter[1:], Arrow(), FilePath(loc))
	}

	// Offending source line, when the error carries one.
	if excerpt, ok := ctx["excerpt"].(string); ok && excerpt != "" {
		fmt.Fprintf(&b, "%s%s\n", gutter, Pipe())
		if line > 0 {
			fmt.Fprintf(&b, "%d %s %s\n", line, Pipe(), excerpt)
		} else {
			fmt.Fprintf(&b, "%s%s %s\n", gutter, Pipe(), excerpt)
		}
	}

	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		if !positionalKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		fmt.Fprintf(&b, "%s%s\n", gutter, Pipe())
		for _, k := range keys {
			fmt.Fprintf(&b, "%s= %s: %v\n", gutter, Dim(k), ctx[k])
		}
	}

	if cause := err.Cause(); cause != nil {
		fmt.Fprintf(&b, "%s%s\n", gutter, Pipe())
		fmt.Fprintf(&b, "%s: %s\n", Note("cause"), cause.Error())
	}

	for _, note := range err.Notes() {
		fmt.Fprintf(&b, "%s: %s\n", Note("note"), note)
	}
	for _, help := range err.Helps() {
		fmt.Fprintf(&b, "%s: %s\n", Help("help"), help)
	}

	return b.String()
}

func formatGenericError(err error) string {
	return Error("error") + ": " + err.Error() + "\n"
}

// FormatWarning formats a warning message.
func FormatWarning(msg string) string {
	return Warning("warning") + ": " + msg + "\n"
}
