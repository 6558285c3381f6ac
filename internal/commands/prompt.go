package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter asks questions on out and reads answers from in.
// One prompter must be used per command so buffered input is not lost between prompts.
type prompter struct {
	in  io.Reader
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, r: bufio.NewReader(in), out: out}
}

// line prints label and returns the trimmed answer.
// EOF after a partial line returns that line.
func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// secret reads a value without echo when in is a terminal,
// and falls back to a plain line otherwise.
func (p *prompter) secret(label string) (string, error) {
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(p.out, label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	s, err := p.line(label)
	if err != nil {
		return "", err
	}
	return s, nil
}

// confirm asks a yes/no question. Only "y" or "yes" confirm; EOF declines.
func (p *prompter) confirm(question string) bool {
	answer, err := p.line(question + " [y/N] ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ask returns current when set, otherwise prompts for it.
func (p *prompter) ask(current, label string, secret bool) (string, error) {
	if current != "" {
		return current, nil
	}
	if secret {
		return p.secret(label)
	}
	return p.line(label)
}
