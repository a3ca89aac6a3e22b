package main

import (
	"context"
	"fmt"
	"io"

	"talent-chat/domain/chat"
	"talent-chat/moderation"
	"talent-chat/view"

	"github.com/google/uuid"
	"github.com/gookit/color"
)

var (
	mineStyle   = color.New(color.FgCyan)
	theirsStyle = color.New(color.FgGreen)
	noticeStyle = color.New(color.FgRed, color.OpBold)
	headerStyle = color.New(color.BgBlack, color.FgGreen)
)

// renderer prints messages as they are appended. The timeline only grows at the end
// once the history is in place, so printing from the last known length is enough.
type renderer struct {
	view       *view.ConversationView
	filter     *moderation.Filter
	out        io.Writer
	printed    int
	lastNotice uuid.UUID
}

func newRenderer(conversation *view.ConversationView, filter *moderation.Filter, out io.Writer) *renderer {
	return &renderer{view: conversation, filter: filter, out: out}
}

func (r *renderer) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case <-r.view.Ready():
	}
	counterpart := r.view.Counterpart()
	fmt.Fprintln(r.out, headerStyle.Sprintf("  ====== %s ======", displayName(counterpart)))
	r.render()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.view.Updates():
			r.render()
		}
	}
}

func (r *renderer) render() {
	classified := r.view.Classified()
	for _, message := range classified[min(r.printed, len(classified)):] {
		fmt.Fprintln(r.out, r.line(message))
	}
	r.printed = len(classified)

	if current, ok := r.view.Notice(); ok && current.ID != r.lastNotice {
		r.lastNotice = current.ID
		fmt.Fprintln(r.out, noticeStyle.Sprintf("! %s", current.Text))
	}
}

func (r *renderer) line(message chat.ClassifiedMessage) string {
	at := ""
	if message.CreatedAt != nil {
		at = message.CreatedAt.Local().Format("15:04") + " "
	}
	text := r.filter.Mask(message.Text)
	if message.Side == chat.Mine {
		return mineStyle.Sprintf("%s%s (you): %s", at, message.SenderName, text)
	}
	return theirsStyle.Sprintf("%s%s: %s", at, message.SenderName, text)
}

func displayName(p chat.Participant) string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.ID
}
