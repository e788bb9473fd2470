package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rcliao/merchant-memory/internal/memory"
	"github.com/rcliao/merchant-memory/internal/profile"
)

// linePrompter is a line-oriented memory.Prompter. End of input cancels
// any pending question.
type linePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

var _ memory.Prompter = (*linePrompter)(nil)

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewScanner(in), out: out}
}

func (p *linePrompter) Show(text string) {
	fmt.Fprintln(p.out, text)
}

func (p *linePrompter) readLine(prompt string) (string, bool) {
	fmt.Fprintf(p.out, "%s\n> ", prompt)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

func (p *linePrompter) AskString(prompt string) (string, bool) {
	return p.readLine(prompt)
}

// AskNumber re-asks until the answer parses. A blank answer cancels.
func (p *linePrompter) AskNumber(prompt, allowed string) (int, bool) {
	for {
		line, ok := p.readLine(prompt)
		if !ok || line == "" {
			return 0, false
		}
		if allowed != "" && strings.Trim(line, allowed) != "" {
			fmt.Fprintf(p.out, "only these characters are allowed: %s\n", allowed)
			continue
		}
		v, err := profile.ParseSpend(line)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		return v, true
	}
}

// PickOption accepts an option's hotkey or its 1-based position. A blank
// answer cancels.
func (p *linePrompter) PickOption(title string, options []memory.Option) (int, bool) {
	var b strings.Builder
	b.WriteString(title)
	for i, o := range options {
		key := strconv.Itoa(i + 1)
		if o.Hotkey != 0 {
			key = string(o.Hotkey)
		}
		fmt.Fprintf(&b, "\n  [%s] %s", key, o.Label)
	}
	for {
		line, ok := p.readLine(b.String())
		if !ok || line == "" {
			return 0, false
		}
		if idx, found := pick(line, options); found {
			return idx, true
		}
		fmt.Fprintf(p.out, "no option %q\n", line)
	}
}

func pick(answer string, options []memory.Option) (int, bool) {
	if r := []rune(answer); len(r) == 1 {
		for i, o := range options {
			if o.Hotkey != 0 && o.Hotkey == r[0] {
				return i, true
			}
		}
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return n - 1, true
	}
	return 0, false
}

// presetPrompter answers the first AskString with a fixed reply, so a
// search query can be given on the command line.
type presetPrompter struct {
	memory.Prompter
	reply string
	used  bool
}

func (p *presetPrompter) AskString(prompt string) (string, bool) {
	if !p.used {
		p.used = true
		return p.reply, true
	}
	return p.Prompter.AskString(prompt)
}
