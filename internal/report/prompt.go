package report

import (
	"bufio"
	"io"
	"strings"
)

// Prompter is the interactive input helper: it shows labelled prompts
// and collects one line per prompt. End of input (Ctrl-D, or the pipe
// closing) aborts the whole read, which callers treat as "no input
// provided" and cancel the current action without side effects.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Lines prompts for one line per label. ok is false when input ended
// before every line was read.
func (p *Prompter) Lines(prompts ...string) ([]string, bool) {
	lines := make([]string, 0, len(prompts))
	for _, prompt := range prompts {
		io.WriteString(p.out, prompt)
		if !p.in.Scan() {
			return nil, false
		}
		lines = append(lines, strings.TrimSpace(p.in.Text()))
	}
	return lines, true
}

// Confirm asks for an explicit yes. Anything but y/yes/ok (or no input
// at all) counts as no.
func (p *Prompter) Confirm(prompt string) bool {
	lines, ok := p.Lines(prompt + " [yes/No] ")
	if !ok {
		return false
	}
	switch strings.ToLower(lines[0]) {
	case "y", "yes", "ok":
		return true
	}
	return false
}
