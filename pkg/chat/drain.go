package chat

import (
	"io"
	"strings"

	"github.com/rhuss/strom/pkg/api"
	"github.com/rhuss/strom/pkg/messages"
)

// EventStream is the receive side of a completion stream.
type EventStream interface {
	Recv() (api.Event, error)
	Close() error
}

var _ EventStream = (*messages.Stream)(nil)

// Result is a fully drained completion: the concatenated text and the
// merged usage totals.
type Result struct {
	Text  string
	Usage api.Usage
}

// Collect drains a stream to completion. Text events are concatenated in
// order; usage snapshots are merged. On failure the partial result is
// returned alongside the error, since everything received before the
// failure remains valid.
func Collect(stream EventStream) (Result, error) {
	var (
		text  strings.Builder
		usage api.Usage
	)

	for {
		ev, err := stream.Recv()
		if err != nil {
			result := Result{Text: text.String(), Usage: usage}
			if err == io.EOF {
				return result, nil
			}
			return result, err
		}

		switch ev.Kind {
		case api.EventText:
			text.WriteString(ev.Text)
		case api.EventUsage:
			mergeUsage(&usage, ev.Usage)
		}
	}
}

// Drain consumes a stream to completion, discarding events. It reports
// the terminal error, with a clean end mapped to nil.
func Drain(stream EventStream) error {
	for {
		if _, err := stream.Recv(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// mergeUsage folds one snapshot into the running total. Input tokens
// arrive with the initial snapshot, the final output count with the last,
// and cache counters at most once per stream.
func mergeUsage(total *api.Usage, u *api.Usage) {
	if u == nil {
		return
	}
	if u.InputTokens > 0 {
		total.InputTokens = u.InputTokens
	}
	if u.OutputTokens > 0 {
		total.OutputTokens = u.OutputTokens
	}
	if u.CacheWriteTokens != nil {
		v := *u.CacheWriteTokens
		total.CacheWriteTokens = &v
	}
	if u.CacheReadTokens != nil {
		v := *u.CacheReadTokens
		total.CacheReadTokens = &v
	}
}
