package tokenizer

import "github.com/rhuss/strom/pkg/api"

// Approximation constants for conversation framing.
const (
	// turnOverheadTokens covers the role framing around each turn.
	turnOverheadTokens = 4

	// replyPrimingTokens covers the assistant response start.
	replyPrimingTokens = 3

	// imageApproxTokens is a flat estimate per image part. Providers charge
	// by resolution; this assumes a full-size image.
	imageApproxTokens = 1600
)

// EstimateConversation approximates the prompt size of a conversation as
// the provider will count it: the system prompt, every text part, flat
// charges for image parts, and per-turn framing overhead.
func EstimateConversation(est Estimator, system string, turns []api.Turn) (int, error) {
	total := replyPrimingTokens

	if system != "" {
		n, err := est.EstimateText(system)
		if err != nil {
			return 0, err
		}
		total += n
	}

	for _, turn := range turns {
		total += turnOverheadTokens
		for _, part := range turn.Content {
			switch part.Type {
			case api.ContentTypeText:
				n, err := est.EstimateText(part.Text)
				if err != nil {
					return 0, err
				}
				total += n
			case api.ContentTypeImage:
				total += imageApproxTokens
			}
		}
	}

	return total, nil
}
