package api

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ContentPartType discriminates the payload of a ContentPart.
type ContentPartType string

const (
	ContentTypeText  ContentPartType = "text"
	ContentTypeImage ContentPartType = "image"
)

// ContentPart is one span of turn content. Text parts carry Text; image
// parts carry a base64 payload in Data plus its MediaType. Cache flags the
// part as a cache-affinity target. The request builder owns final marker
// placement and clears any markers the caller set.
type ContentPart struct {
	Type      ContentPartType `json:"type"`
	Text      string          `json:"text,omitempty"`
	MediaType string          `json:"media_type,omitempty"`
	Data      string          `json:"data,omitempty"`
	Cache     bool            `json:"cache,omitempty"`
}

// TextPart returns a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: ContentTypeText, Text: text}
}

// ImagePart returns an image content part with base64-encoded data.
func ImagePart(mediaType, data string) ContentPart {
	return ContentPart{Type: ContentTypeImage, MediaType: mediaType, Data: data}
}

// Turn is one conversation turn: who authored it and its ordered content.
type Turn struct {
	Role    Role          `json:"role"`
	Content []ContentPart `json:"content"`
}

// UserTurn returns a single text turn authored by the user.
func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Content: []ContentPart{TextPart(text)}}
}

// AssistantTurn returns a single text turn authored by the assistant.
func AssistantTurn(text string) Turn {
	return Turn{Role: RoleAssistant, Content: []ContentPart{TextPart(text)}}
}

// ModelLimits describes the hard size limits of a model.
type ModelLimits struct {
	MaxOutputTokens int `json:"max_output_tokens"`
	ContextWindow   int `json:"context_window"`
}

// ModelCapabilities describes the optional features a model supports.
type ModelCapabilities struct {
	SupportsImages        bool `json:"supports_images"`
	SupportsCachedPrompts bool `json:"supports_cached_prompts"`
	SupportsToolUse       bool `json:"supports_tool_use"`
}

// ModelPricing is the list price per million tokens, in USD.
type ModelPricing struct {
	InputPerMTok  float64 `json:"input_per_mtok"`
	OutputPerMTok float64 `json:"output_per_mtok"`
}

// ModelDescriptor is the static, read-only description of a model. A handler
// selects one descriptor at construction and it never changes afterwards.
type ModelDescriptor struct {
	ID           string            `json:"id"`
	Limits       ModelLimits       `json:"limits"`
	Capabilities ModelCapabilities `json:"capabilities"`
	Pricing      ModelPricing      `json:"pricing"`
}
