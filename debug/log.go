package debug

import (
	"fmt"
	"io"
	"os"

	"github.com/JorrenH/solid-fluent-store/value"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var out io.Writer = os.Stderr

var prefix = func() func(string, ...any) string {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return fmt.Sprintf
	}
	return color.RGB(255, 0, 196).SprintfFunc()
}()

// Logf writes a debug line to stderr. *value.Node arguments are rendered as
// text.
func Logf(msg string, args ...any) {
	for i, a := range args {
		if n, ok := a.(*value.Node); ok {
			args[i] = n.Text()
		}
	}
	fmt.Fprint(out, prefix("[fluent] "))
	fmt.Fprintf(out, msg, args...)
}
