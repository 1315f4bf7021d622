package api

// EventKind identifies the kind of a normalized streaming event.
type EventKind string

const (
	// EventText carries an incremental fragment of assistant output text.
	EventText EventKind = "text"
	// EventUsage carries a token accounting snapshot.
	EventUsage EventKind = "usage"
)

// Usage is a token accounting snapshot. The cache counters are pointers
// because providers omit them when prompt caching is not in play, and
// absent is a different answer than zero.
type Usage struct {
	InputTokens      int  `json:"input_tokens"`
	OutputTokens     int  `json:"output_tokens"`
	CacheWriteTokens *int `json:"cache_write_tokens,omitempty"`
	CacheReadTokens  *int `json:"cache_read_tokens,omitempty"`
}

// Event is one normalized streaming event. Exactly one payload field is
// meaningful, selected by Kind: Text for EventText, Usage for EventUsage.
type Event struct {
	Kind  EventKind `json:"kind"`
	Text  string    `json:"text,omitempty"`
	Usage *Usage    `json:"usage,omitempty"`
}

// TextEvent returns a text fragment event.
func TextEvent(text string) Event {
	return Event{Kind: EventText, Text: text}
}

// UsageEvent returns a usage snapshot event.
func UsageEvent(u Usage) Event {
	return Event{Kind: EventUsage, Usage: &u}
}
