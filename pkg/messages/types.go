package messages

// Wire types for the Messages API. Request structs marshal to the POST
// body; stream structs unmarshal individual SSE payloads.

const (
	blockTypeText  = "text"
	blockTypeImage = "image"

	sourceTypeBase64 = "base64"

	deltaTypeText = "text_delta"

	cacheEphemeral = "ephemeral"
)

// messageRequest is the body of a POST /v1/messages call. Temperature is
// always serialized, pinned to zero for deterministic completions.
type messageRequest struct {
	Model       string         `json:"model"`
	MaxTokens   int            `json:"max_tokens"`
	Temperature float64        `json:"temperature"`
	System      []systemBlock  `json:"system,omitempty"`
	Messages    []messageParam `json:"messages"`
	Stream      bool           `json:"stream"`
}

type systemBlock struct {
	Type         string        `json:"type"`
	Text         string        `json:"text"`
	CacheControl *cacheControl `json:"cache_control,omitempty"`
}

type messageParam struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type         string        `json:"type"`
	Text         string        `json:"text,omitempty"`
	Source       *imageSource  `json:"source,omitempty"`
	CacheControl *cacheControl `json:"cache_control,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type cacheControl struct {
	Type string `json:"type"`
}

// Stream event types emitted by the Messages API.
const (
	eventMessageStart      = "message_start"
	eventMessageDelta      = "message_delta"
	eventMessageStop       = "message_stop"
	eventContentBlockStart = "content_block_start"
	eventContentBlockDelta = "content_block_delta"
	eventContentBlockStop  = "content_block_stop"
	eventPing              = "ping"
	eventError             = "error"
)

// streamEvent is one decoded SSE payload. The field set is the union of
// all event shapes; unused fields stay nil for a given type.
type streamEvent struct {
	Type         string        `json:"type"`
	Index        int           `json:"index"`
	Message      *messageInfo  `json:"message,omitempty"`
	ContentBlock *contentInfo  `json:"content_block,omitempty"`
	Delta        *deltaInfo    `json:"delta,omitempty"`
	Usage        *usageInfo    `json:"usage,omitempty"`
	Error        *errorInfo    `json:"error,omitempty"`
}

type messageInfo struct {
	ID    string     `json:"id"`
	Role  string     `json:"role"`
	Model string     `json:"model"`
	Usage *usageInfo `json:"usage"`
}

type contentInfo struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// deltaInfo covers both delta shapes: content_block_delta carries a typed
// text fragment, message_delta carries the stop reason.
type deltaInfo struct {
	Type       string `json:"type"`
	Text       string `json:"text"`
	StopReason string `json:"stop_reason"`
}

// usageInfo mirrors the provider's usage object. The cache counters are
// pointers so that an absent field is distinguishable from a zero count.
type usageInfo struct {
	InputTokens              int  `json:"input_tokens"`
	OutputTokens             int  `json:"output_tokens"`
	CacheCreationInputTokens *int `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     *int `json:"cache_read_input_tokens,omitempty"`
}

type errorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// errorResponse is the JSON body of a non-streaming error reply.
type errorResponse struct {
	Type  string    `json:"type"`
	Error errorInfo `json:"error"`
}
