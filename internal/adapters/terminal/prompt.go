// Package terminal is the interactive front end of the client: a line-based
// rendition of the entry, onboarding and app screens.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// Prompter reads answers from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // terminal descriptor for hidden password input, or -1
}

// NewPrompter creates a Prompter. Passwords are read without echo when in is
// a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

// Printf writes formatted output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// ReadLine prints prompt and reads one trimmed line. A final line without a
// newline is returned; io.EOF is returned only when nothing was read.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt+": ")
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadPassword prints prompt and reads a password, hidden on a terminal.
func (p *Prompter) ReadPassword(prompt string) (string, error) {
	if p.fd < 0 {
		return p.ReadLine(prompt)
	}
	fmt.Fprint(p.out, prompt+": ")
	pw, err := readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// Choose lists options numbered from 1 and returns the picked one. An empty
// answer returns current when it is non-empty. Invalid answers re-prompt.
func (p *Prompter) Choose(prompt string, options []string, current string) (string, error) {
	fmt.Fprintln(p.out, prompt)
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o)
	}
	ask := "Välj"
	if current != "" {
		ask = fmt.Sprintf("Välj [%s]", current)
	}
	for {
		answer, err := p.ReadLine(ask)
		if err != nil {
			return "", err
		}
		if answer == "" && current != "" {
			return current, nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		fmt.Fprintf(p.out, "Ange ett nummer mellan 1 och %d.\n", len(options))
	}
}
