package main

import (
	"bufio"
	"context"
	"io"
	"strings"

	"talent-chat/view"
)

const quitCommand = "/quit"

// prompt forwards each stdin line to the conversation. The scanner runs in its own
// goroutine because a blocked read cannot observe the context.
type prompt struct {
	view  *view.ConversationView
	lines <-chan string
	quit  func()
}

func newPrompt(conversation *view.ConversationView, in io.Reader, quit func()) *prompt {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return &prompt{view: conversation, lines: lines, quit: quit}
}

func (p *prompt) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-p.lines:
			if !ok || strings.TrimSpace(line) == quitCommand {
				p.quit()
				return nil
			}
			// Failures are already shown as notices by the view.
			_ = p.view.Send(line)
		}
	}
}
