package messages

import (
	"github.com/rhuss/strom/pkg/api"
)

// buildRequest shapes a provider request from a conversation. The turns
// are copied before annotation; the caller's slices are never modified.
func buildRequest(desc api.ModelDescriptor, system string, turns []api.Turn) *messageRequest {
	marked := markCacheTargets(turns)

	msgs := make([]messageParam, 0, len(marked))
	for _, turn := range marked {
		msgs = append(msgs, messageParam{
			Role:    string(turn.Role),
			Content: wireContent(turn.Content),
		})
	}

	req := &messageRequest{
		Model:       desc.ID,
		MaxTokens:   desc.Limits.MaxOutputTokens,
		Temperature: 0,
		Messages:    msgs,
		Stream:      true,
	}
	if system != "" {
		req.System = []systemBlock{{
			Type:         blockTypeText,
			Text:         system,
			CacheControl: &cacheControl{Type: cacheEphemeral},
		}}
	}
	return req
}

// markCacheTargets applies the cache-affinity policy: only the final
// content part of the last and second-to-last user turns carries a cache
// marker. Markers set by the caller are cleared first, so the policy is
// the single source of truth for cache placement. Order and content of
// the conversation are preserved untouched.
func markCacheTargets(turns []api.Turn) []api.Turn {
	out := make([]api.Turn, len(turns))
	lastUser, prevUser := -1, -1

	for i, turn := range turns {
		content := make([]api.ContentPart, len(turn.Content))
		copy(content, turn.Content)
		for j := range content {
			content[j].Cache = false
		}
		out[i] = api.Turn{Role: turn.Role, Content: content}

		if turn.Role == api.RoleUser {
			prevUser = lastUser
			lastUser = i
		}
	}

	for _, idx := range []int{lastUser, prevUser} {
		if idx < 0 {
			continue
		}
		content := out[idx].Content
		if len(content) > 0 {
			content[len(content)-1].Cache = true
		}
	}
	return out
}

func wireContent(parts []api.ContentPart) []contentBlock {
	blocks := make([]contentBlock, 0, len(parts))
	for _, part := range parts {
		var block contentBlock
		switch part.Type {
		case api.ContentTypeImage:
			block = contentBlock{
				Type: blockTypeImage,
				Source: &imageSource{
					Type:      sourceTypeBase64,
					MediaType: part.MediaType,
					Data:      part.Data,
				},
			}
		default:
			block = contentBlock{
				Type: blockTypeText,
				Text: part.Text,
			}
		}
		if part.Cache {
			block.CacheControl = &cacheControl{Type: cacheEphemeral}
		}
		blocks = append(blocks, block)
	}
	return blocks
}
