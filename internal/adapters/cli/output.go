package cli

import (
	"fmt"
	"io"
	"os"
)

// Output prints progress for the command-line tools. Colors are only used when
// stdout is a terminal.
type Output struct {
	out          io.Writer
	errOut       io.Writer
	enableColors bool
}

func NewOutput() *Output {
	return &Output{
		out:          os.Stdout,
		errOut:       os.Stderr,
		enableColors: isTerminal(),
	}
}

// NewOutputTo writes plain text to out and errOut.
func NewOutputTo(out, errOut io.Writer) *Output {
	return &Output{out: out, errOut: errOut}
}

func (o *Output) DisableColors() {
	o.enableColors = false
}

func (o *Output) color(code, text string) string {
	if !o.enableColors {
		return text
	}
	return "\033[" + code + "m" + text + "\033[0m"
}

func (o *Output) Green(text string) string { return o.color("32", text) }

func (o *Output) Red(text string) string { return o.color("31", text) }

func (o *Output) Gray(text string) string { return o.color("90", text) }

func (o *Output) PrintHeader(msg string) {
	_, _ = fmt.Fprintf(o.out, "%s\n\n", msg)
}

func (o *Output) PrintStep(msg string, args ...any) {
	_, _ = fmt.Fprintf(o.out, "  "+msg+"\n", args...)
}

func (o *Output) PrintSuccess(msg string, args ...any) {
	_, _ = fmt.Fprintf(o.out, "  %s%s\n", o.Green("✓ "), fmt.Sprintf(msg, args...))
}

func (o *Output) PrintError(msg string, args ...any) {
	_, _ = fmt.Fprintf(o.errOut, "  %s%s\n", o.Red("✗ "), fmt.Sprintf(msg, args...))
}

func (o *Output) PrintFile(path string) {
	_, _ = fmt.Fprintf(o.out, "    %s\n", o.Gray(path))
}

func isTerminal() bool {
	stat, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == os.ModeCharDevice
}
