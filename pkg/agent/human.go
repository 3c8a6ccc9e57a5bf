package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
)

// DefaultInputPrompt is shown before reading a console reply
const DefaultInputPrompt = "Reply (press enter or type 'exit' to end the conversation): "

// ConsoleInput solicits replies from a terminal. An empty line, "exit"
// or EOF is the terminate signal.
type ConsoleInput struct {
	reader *bufio.Reader
	writer io.Writer
	prompt string
}

// ConsoleInputOption configures a ConsoleInput
type ConsoleInputOption func(*ConsoleInput)

// WithConsoleReader sets the input source (default os.Stdin)
func WithConsoleReader(r io.Reader) ConsoleInputOption {
	return func(c *ConsoleInput) {
		c.reader = bufio.NewReader(r)
	}
}

// WithConsoleWriter sets the output sink (default os.Stdout)
func WithConsoleWriter(w io.Writer) ConsoleInputOption {
	return func(c *ConsoleInput) {
		c.writer = w
	}
}

// WithConsolePrompt sets the prompt text
func WithConsolePrompt(prompt string) ConsoleInputOption {
	return func(c *ConsoleInput) {
		c.prompt = prompt
	}
}

// NewConsoleInput creates a console-backed human input channel
func NewConsoleInput(options ...ConsoleInputOption) *ConsoleInput {
	c := &ConsoleInput{
		reader: bufio.NewReader(os.Stdin),
		writer: os.Stdout,
		prompt: DefaultInputPrompt,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Prompt shows the latest message and reads one line. EOF maps to the
// empty terminate signal rather than an error.
func (c *ConsoleInput) Prompt(ctx context.Context, history []interfaces.Message) (string, error) {
	if len(history) > 0 {
		last := history[len(history)-1]
		fmt.Fprintf(c.writer, "%s: %s\n", last.Sender, last.Content)
	}
	fmt.Fprint(c.writer, c.prompt)

	type readResult struct {
		line string
		err  error
	}
	resultCh := make(chan readResult, 1)
	go func() {
		line, err := c.reader.ReadString('\n')
		resultCh <- readResult{strings.TrimRight(line, "\r\n"), err}
	}()

	// a cancelled read leaves the goroutine parked until the next line
	// arrives; that line is dropped
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-resultCh:
		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				return res.line, nil
			}
			return "", res.err
		}
		return res.line, nil
	}
}

var _ interfaces.HumanInput = (*ConsoleInput)(nil)
