package messages

import (
	"github.com/rhuss/strom/pkg/api"
)

// translateEvent maps one decoded stream event to its normalized output.
// The mapping is total: event shapes not listed here produce no output,
// and only the provider's error event produces an error. Lifecycle events
// (content_block_stop, message_stop, ping) carry no payload worth
// republishing and translate to nothing.
func translateEvent(ev *streamEvent) ([]api.Event, error) {
	switch ev.Type {
	case eventMessageStart:
		if ev.Message == nil || ev.Message.Usage == nil {
			return nil, nil
		}
		return []api.Event{api.UsageEvent(normalizeUsage(ev.Message.Usage))}, nil

	case eventMessageDelta:
		if ev.Usage == nil {
			return nil, nil
		}
		// The delta usage only reports output growth; input was already
		// accounted for by message_start.
		return []api.Event{api.UsageEvent(api.Usage{
			OutputTokens: ev.Usage.OutputTokens,
		})}, nil

	case eventContentBlockStart:
		if ev.ContentBlock == nil || ev.ContentBlock.Type != blockTypeText {
			return nil, nil
		}
		if ev.Index > 0 {
			return []api.Event{
				api.TextEvent("\n"),
				api.TextEvent(ev.ContentBlock.Text),
			}, nil
		}
		return []api.Event{api.TextEvent(ev.ContentBlock.Text)}, nil

	case eventContentBlockDelta:
		if ev.Delta == nil || ev.Delta.Type != deltaTypeText {
			return nil, nil
		}
		return []api.Event{api.TextEvent(ev.Delta.Text)}, nil

	case eventError:
		message := "provider reported an error"
		if ev.Error != nil && ev.Error.Message != "" {
			message = ev.Error.Message
			if ev.Error.Type != "" {
				message = ev.Error.Type + ": " + message
			}
		}
		return nil, api.NewCompletionError(message, nil)

	default:
		return nil, nil
	}
}

// normalizeUsage converts wire usage to the normalized form, carrying the
// cache counters over only when the provider actually sent them.
func normalizeUsage(u *usageInfo) api.Usage {
	usage := api.Usage{
		InputTokens:  u.InputTokens,
		OutputTokens: u.OutputTokens,
	}
	if u.CacheCreationInputTokens != nil {
		v := *u.CacheCreationInputTokens
		usage.CacheWriteTokens = &v
	}
	if u.CacheReadInputTokens != nil {
		v := *u.CacheReadInputTokens
		usage.CacheReadTokens = &v
	}
	return usage
}
