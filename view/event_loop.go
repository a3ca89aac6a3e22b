package view

import "context"

// eventLoop applies the view mutations one at a time, in the order they were posted.
type eventLoop struct {
	events <-chan func()
}

func (l *eventLoop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-l.events:
			fn()
		}
	}
}
