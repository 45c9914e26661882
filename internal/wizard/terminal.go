package wizard

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/list"
)

// TerminalPrompter reads answers from an interactive terminal.
type TerminalPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewTerminalPrompter creates a prompter over the given streams,
// conventionally os.Stdin and os.Stdout.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{reader: bufio.NewReader(in), out: out}
}

func (p *TerminalPrompter) Select(prompt string, options []string) (int, error) {
	l := list.NewWriter()
	l.SetStyle(list.StyleDefault)
	for i, option := range options {
		l.AppendItem(fmt.Sprintf("%d) %s", i+1, option))
	}
	fmt.Fprintf(p.out, "%s:\n%s\n", prompt, l.Render())

	for {
		fmt.Fprintf(p.out, "Enter a number [1-%d]: ", len(options))
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(line)
		if err == nil && choice >= 1 && choice <= len(options) {
			return choice - 1, nil
		}
		fmt.Fprintln(p.out, "Invalid selection")
	}
}

func (p *TerminalPrompter) Ask(prompt, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", prompt, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}

func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
