package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aki/mknote/internal/filemanager"
)

// TerminalPrompter asks questions on stderr and reads answers line by line.
type TerminalPrompter struct {
	mu     sync.Mutex
	reader *bufio.Reader
	out    io.Writer
}

// NewTerminalPrompter reads from stdin.
func NewTerminalPrompter() *TerminalPrompter {
	return NewPrompter(os.Stdin, os.Stderr)
}

// NewPrompter builds a prompter over arbitrary streams.
func NewPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{reader: bufio.NewReader(in), out: out}
}

// Input asks for a line of text. An empty answer keeps def; EOF or an empty
// result cancels.
func (p *TerminalPrompter) Input(ctx context.Context, prompt, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}

	line, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	if line == "" {
		line = def
	}
	if line == "" {
		return "", filemanager.ErrCancelled
	}
	return line, nil
}

// Confirm asks a yes/no question. Anything but y or yes is a refusal.
func (p *TerminalPrompter) Confirm(ctx context.Context, msg string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", msg)

	line, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (p *TerminalPrompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", filemanager.ErrCancelled
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
