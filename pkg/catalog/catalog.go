// Package catalog holds the static model catalog for the strom adapter.
//
// Descriptors are compiled in: limits, capabilities, and pricing change only
// with releases, and the model accessor contract has no failure mode, which
// rules out dynamic discovery. Unknown model IDs resolve to a conservative
// fallback descriptor carrying the requested ID.
package catalog

import "github.com/rhuss/strom/pkg/api"

// DefaultModelID is the model used when none is configured.
const DefaultModelID = "claude-3-5-sonnet-20241022"

var models = map[string]api.ModelDescriptor{
	"claude-3-5-sonnet-20241022": {
		ID:     "claude-3-5-sonnet-20241022",
		Limits: api.ModelLimits{MaxOutputTokens: 8192, ContextWindow: 200000},
		Capabilities: api.ModelCapabilities{
			SupportsImages:        true,
			SupportsCachedPrompts: true,
			SupportsToolUse:       true,
		},
		Pricing: api.ModelPricing{InputPerMTok: 3, OutputPerMTok: 15},
	},
	"claude-3-5-haiku-20241022": {
		ID:     "claude-3-5-haiku-20241022",
		Limits: api.ModelLimits{MaxOutputTokens: 8192, ContextWindow: 200000},
		Capabilities: api.ModelCapabilities{
			SupportsCachedPrompts: true,
			SupportsToolUse:       true,
		},
		Pricing: api.ModelPricing{InputPerMTok: 0.8, OutputPerMTok: 4},
	},
	"claude-3-opus-20240229": {
		ID:     "claude-3-opus-20240229",
		Limits: api.ModelLimits{MaxOutputTokens: 4096, ContextWindow: 200000},
		Capabilities: api.ModelCapabilities{
			SupportsImages:        true,
			SupportsCachedPrompts: true,
			SupportsToolUse:       true,
		},
		Pricing: api.ModelPricing{InputPerMTok: 15, OutputPerMTok: 75},
	},
	"claude-3-haiku-20240307": {
		ID:     "claude-3-haiku-20240307",
		Limits: api.ModelLimits{MaxOutputTokens: 4096, ContextWindow: 200000},
		Capabilities: api.ModelCapabilities{
			SupportsImages:        true,
			SupportsCachedPrompts: true,
			SupportsToolUse:       true,
		},
		Pricing: api.ModelPricing{InputPerMTok: 0.25, OutputPerMTok: 1.25},
	},
}

// Default returns the descriptor of DefaultModelID.
func Default() api.ModelDescriptor {
	return models[DefaultModelID]
}

// Lookup returns the descriptor for the given model ID.
func Lookup(id string) (api.ModelDescriptor, bool) {
	d, ok := models[id]
	return d, ok
}

// Resolve returns the descriptor a handler should use for the given model
// ID: the default when id is empty, the cataloged descriptor when known,
// and a conservative fallback carrying the requested ID otherwise.
func Resolve(id string) api.ModelDescriptor {
	if id == "" {
		return Default()
	}
	if d, ok := models[id]; ok {
		return d
	}
	return api.ModelDescriptor{
		ID:     id,
		Limits: api.ModelLimits{MaxOutputTokens: 4096, ContextWindow: 200000},
		Capabilities: api.ModelCapabilities{
			SupportsCachedPrompts: true,
		},
	}
}

// IDs returns all cataloged model IDs in no particular order.
func IDs() []string {
	ids := make([]string, 0, len(models))
	for id := range models {
		ids = append(ids, id)
	}
	return ids
}

// ValidateContent checks whether the given turns are compatible with the
// model's declared capabilities. Returns an *api.Error identifying the
// first unsupported feature, or nil if the turns are compatible.
func ValidateContent(desc api.ModelDescriptor, turns []api.Turn) *api.Error {
	for _, turn := range turns {
		for _, part := range turn.Content {
			if part.Type == api.ContentTypeImage && !desc.Capabilities.SupportsImages {
				return api.NewCompletionError("model "+desc.ID+" does not support image inputs", nil)
			}
		}
	}
	return nil
}
