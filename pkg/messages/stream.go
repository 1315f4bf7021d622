package messages

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rhuss/strom/pkg/api"
	"github.com/rhuss/strom/pkg/debug"
	"github.com/rhuss/strom/pkg/observability"
)

// ErrStreamClosed is returned by Recv after Close has abandoned the stream.
var ErrStreamClosed = errors.New("stream closed")

// scannerBufferSize bounds a single SSE line. Large text deltas can exceed
// bufio's 64KB default.
const scannerBufferSize = 1024 * 1024

// Stream is the pull side of one completion request. Events arrive in
// provider order with nothing dropped or reordered. Recv returns io.EOF
// after a clean end; any other error means the completion failed after the
// events already delivered.
//
// A Stream is safe for one consumer goroutine plus a concurrent Close.
type Stream struct {
	events chan api.Event
	cancel context.CancelFunc
	model  string

	closeOnce sync.Once
	closed    atomic.Bool

	// err is written by the consumer goroutine before events is closed;
	// the channel close publishes it to Recv.
	err error
}

func newStream(cancel context.CancelFunc, model string) *Stream {
	return &Stream{
		events: make(chan api.Event, 16),
		cancel: cancel,
		model:  model,
	}
}

// Recv returns the next normalized event. It blocks until an event is
// available or the stream ends: io.EOF for a clean end, a completion error
// for a failed one, ErrStreamClosed after Close.
func (s *Stream) Recv() (api.Event, error) {
	if s.closed.Load() {
		return api.Event{}, ErrStreamClosed
	}

	ev, ok := <-s.events
	if !ok {
		if s.closed.Load() {
			return api.Event{}, ErrStreamClosed
		}
		if s.err != nil {
			return api.Event{}, s.err
		}
		return api.Event{}, io.EOF
	}
	return ev, nil
}

// Close abandons the stream and releases its connection. Events not yet
// received are discarded; subsequent Recv calls return ErrStreamClosed.
// Close is idempotent and safe to call while another goroutine blocks in
// Recv.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.cancel()
	})
	return nil
}

// run consumes the response body and publishes normalized events. It owns
// the body and releases it exactly once, on every exit path.
func (s *Stream) run(ctx context.Context, body io.ReadCloser) {
	defer close(s.events)
	defer s.cancel()
	defer body.Close()

	observability.StreamsActive.Inc()
	defer observability.StreamsActive.Dec()

	start := time.Now()
	status := "ok"

	if err := s.consume(ctx, body); err != nil {
		s.err = err
		status = "error"
		debug.Log("stream", "stream failed", "model", s.model, "error", err)
	}

	observability.CompletionsTotal.WithLabelValues(s.model, status).Inc()
	observability.CompletionDuration.WithLabelValues(s.model).Observe(time.Since(start).Seconds())
}

// consume parses the SSE body line by line. Messages API streams interleave
// "event:" and "data:" lines; the payload type is also embedded in the JSON,
// which is what translation keys on. The loop ends at message_stop. An end
// of input without message_stop is a truncated stream and fails the call,
// as does a malformed payload. Events already sent stay delivered.
func (s *Stream) consume(ctx context.Context, body io.Reader) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), scannerBufferSize)

	sawStop := false

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return cancelError(err)
		}

		line := scanner.Text()

		// Empty lines separate SSE events; "event:" lines duplicate the
		// type field inside the data payload. Both are skipped.
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")

		debug.Raw("stream", payload)

		var ev streamEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return api.NewCompletionError("malformed stream event: "+debug.Truncate(payload, 200), err)
		}

		out, err := translateEvent(&ev)
		if err != nil {
			return err
		}

		for _, event := range out {
			select {
			case s.events <- event:
			case <-ctx.Done():
				return cancelError(ctx.Err())
			}
			if event.Kind == api.EventUsage {
				recordUsage(s.model, event.Usage)
			}
		}

		if ev.Type == eventMessageStop {
			sawStop = true
			break
		}
	}

	if err := scanner.Err(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return cancelError(ctxErr)
		}
		return api.NewCompletionError("reading event stream", err)
	}
	if !sawStop {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return cancelError(ctxErr)
		}
		return api.NewCompletionError("event stream ended before message_stop", io.ErrUnexpectedEOF)
	}
	return nil
}

func cancelError(cause error) *api.Error {
	return api.NewCompletionError("completion cancelled", cause)
}

func recordUsage(model string, u *api.Usage) {
	if u == nil {
		return
	}
	observability.TokensTotal.WithLabelValues(model, "input").Add(float64(u.InputTokens))
	observability.TokensTotal.WithLabelValues(model, "output").Add(float64(u.OutputTokens))
	if u.CacheWriteTokens != nil {
		observability.TokensTotal.WithLabelValues(model, "cache_write").Add(float64(*u.CacheWriteTokens))
	}
	if u.CacheReadTokens != nil {
		observability.TokensTotal.WithLabelValues(model, "cache_read").Add(float64(*u.CacheReadTokens))
	}
}
