package messages

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/rhuss/strom/pkg/api"
)

func intp(v int) *int {
	return &v
}

// translatePayload unmarshals one raw SSE data payload and translates it.
func translatePayload(t *testing.T, payload string) ([]api.Event, error) {
	t.Helper()
	var ev streamEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		t.Fatalf("payload does not parse: %v", err)
	}
	return translateEvent(&ev)
}

func TestTranslateEvent_MessageStartUsage(t *testing.T) {
	payload := `{"type":"message_start","message":{"id":"msg_1","role":"assistant","model":"m","usage":{"input_tokens":10,"output_tokens":1,"cache_creation_input_tokens":128,"cache_read_input_tokens":0}}}`

	events, err := translatePayload(t, payload)
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}

	want := []api.Event{api.UsageEvent(api.Usage{
		InputTokens:      10,
		OutputTokens:     1,
		CacheWriteTokens: intp(128),
		CacheReadTokens:  intp(0),
	})}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v, want %+v", events, want)
	}
}

func TestTranslateEvent_CacheCountersAbsent(t *testing.T) {
	// Without the caching feature the provider omits the cache counters.
	// Absent must stay absent, not become zero.
	payload := `{"type":"message_start","message":{"id":"msg_1","usage":{"input_tokens":5,"output_tokens":0}}}`

	events, err := translatePayload(t, payload)
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}
	if len(events) != 1 || events[0].Usage == nil {
		t.Fatalf("expected one usage event, got %+v", events)
	}

	usage := events[0].Usage
	if usage.CacheWriteTokens != nil {
		t.Errorf("CacheWriteTokens = %v, want nil", *usage.CacheWriteTokens)
	}
	if usage.CacheReadTokens != nil {
		t.Errorf("CacheReadTokens = %v, want nil", *usage.CacheReadTokens)
	}
}

func TestTranslateEvent_MessageDelta(t *testing.T) {
	payload := `{"type":"message_delta","delta":{"stop_reason":"end_turn"},"usage":{"output_tokens":42}}`

	events, err := translatePayload(t, payload)
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}

	want := []api.Event{api.UsageEvent(api.Usage{InputTokens: 0, OutputTokens: 42})}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v, want %+v", events, want)
	}
}

func TestTranslateEvent_ContentBlockStart(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []api.Event
	}{
		{
			name:    "first block emits only its initial text",
			payload: `{"type":"content_block_start","index":0,"content_block":{"type":"text","text":"Hello"}}`,
			want:    []api.Event{api.TextEvent("Hello")},
		},
		{
			name:    "later block emits a separator first",
			payload: `{"type":"content_block_start","index":1,"content_block":{"type":"text","text":"Second"}}`,
			want:    []api.Event{api.TextEvent("\n"), api.TextEvent("Second")},
		},
		{
			name:    "later block with empty initial text still emits both",
			payload: `{"type":"content_block_start","index":2,"content_block":{"type":"text","text":""}}`,
			want:    []api.Event{api.TextEvent("\n"), api.TextEvent("")},
		},
		{
			name:    "non-text block emits nothing",
			payload: `{"type":"content_block_start","index":1,"content_block":{"type":"tool_use"}}`,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := translatePayload(t, tt.payload)
			if err != nil {
				t.Fatalf("translate failed: %v", err)
			}
			if !reflect.DeepEqual(events, tt.want) {
				t.Errorf("events = %+v, want %+v", events, tt.want)
			}
		})
	}
}

func TestTranslateEvent_ContentBlockDelta(t *testing.T) {
	payload := `{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":" world"}}`

	events, err := translatePayload(t, payload)
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}

	want := []api.Event{api.TextEvent(" world")}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v, want %+v", events, want)
	}
}

func TestTranslateEvent_SilentEvents(t *testing.T) {
	// Everything outside the normalization table produces no output and
	// no error.
	payloads := []struct {
		name    string
		payload string
	}{
		{"ping", `{"type":"ping"}`},
		{"content_block_stop", `{"type":"content_block_stop","index":0}`},
		{"message_stop", `{"type":"message_stop"}`},
		{"non-text delta", `{"type":"content_block_delta","index":0,"delta":{"type":"input_json_delta","text":"{}"}}`},
		{"thinking delta", `{"type":"content_block_delta","index":0,"delta":{"type":"thinking_delta","text":"hmm"}}`},
		{"message_delta without usage", `{"type":"message_delta","delta":{"stop_reason":"end_turn"}}`},
		{"message_start without usage", `{"type":"message_start","message":{"id":"msg_1"}}`},
		{"unknown event type", `{"type":"content_block_shuffle","index":3}`},
	}

	for _, tt := range payloads {
		t.Run(tt.name, func(t *testing.T) {
			events, err := translatePayload(t, tt.payload)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if len(events) != 0 {
				t.Errorf("events = %+v, want none", events)
			}
		})
	}
}

func TestTranslateEvent_ProviderError(t *testing.T) {
	payload := `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`

	events, err := translatePayload(t, payload)
	if events != nil {
		t.Errorf("events = %+v, want none", events)
	}
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !api.IsKind(err, api.ErrorKindCompletionRequest) {
		t.Errorf("error kind is not completion_request: %v", err)
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Message != "overloaded_error: Overloaded" {
		t.Errorf("message = %q, want %q", apiErr.Message, "overloaded_error: Overloaded")
	}
}

func TestTranslateSequence_Normalization(t *testing.T) {
	// The canonical four-event completion: initial usage, two text
	// fragments, then the output count.
	payloads := []string{
		`{"type":"message_start","message":{"id":"msg_1","usage":{"input_tokens":10,"output_tokens":0}}}`,
		`{"type":"content_block_start","index":0,"content_block":{"type":"text","text":"Hello"}}`,
		`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":" world"}}`,
		`{"type":"content_block_stop","index":0}`,
		`{"type":"message_delta","delta":{"stop_reason":"end_turn"},"usage":{"output_tokens":2}}`,
		`{"type":"message_stop"}`,
	}

	var events []api.Event
	for _, payload := range payloads {
		out, err := translatePayload(t, payload)
		if err != nil {
			t.Fatalf("translate failed: %v", err)
		}
		events = append(events, out...)
	}

	want := []api.Event{
		api.UsageEvent(api.Usage{InputTokens: 10, OutputTokens: 0}),
		api.TextEvent("Hello"),
		api.TextEvent(" world"),
		api.UsageEvent(api.Usage{InputTokens: 0, OutputTokens: 2}),
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v, want %+v", events, want)
	}
}

func TestTranslateSequence_MultiBlockReconstruction(t *testing.T) {
	// Concatenating all text events reconstructs the blocks joined by
	// newlines.
	payloads := []string{
		`{"type":"content_block_start","index":0,"content_block":{"type":"text","text":"First"}}`,
		`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":" block"}}`,
		`{"type":"content_block_stop","index":0}`,
		`{"type":"content_block_start","index":1,"content_block":{"type":"text","text":"Second"}}`,
		`{"type":"content_block_delta","index":1,"delta":{"type":"text_delta","text":" block"}}`,
		`{"type":"content_block_stop","index":1}`,
	}

	var text string
	for _, payload := range payloads {
		out, err := translatePayload(t, payload)
		if err != nil {
			t.Fatalf("translate failed: %v", err)
		}
		for _, ev := range out {
			if ev.Kind == api.EventText {
				text += ev.Text
			}
		}
	}

	if text != "First block\nSecond block" {
		t.Errorf("reconstructed text = %q, want %q", text, "First block\nSecond block")
	}
}
