package api

import "fmt"

// ValidationConfig holds configurable limits for conversation validation.
type ValidationConfig struct {
	MaxTurns       int
	MaxContentSize int
}

// DefaultValidationConfig returns a ValidationConfig sized for interactive
// chat workloads.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxTurns:       1000,
		MaxContentSize: 10 * 1024 * 1024, // 10MB
	}
}

// ValidateTurns checks a conversation for structural validity before it is
// shaped into a provider request. It returns an *Error describing the first
// failure, or nil when the turns are valid. Validation failures are fatal to
// the call but never to the handler.
func ValidateTurns(turns []Turn, cfg ValidationConfig) *Error {
	if len(turns) == 0 {
		return NewCompletionError("turns must contain at least one turn", nil)
	}

	if cfg.MaxTurns > 0 && len(turns) > cfg.MaxTurns {
		return NewCompletionError(
			fmt.Sprintf("turns exceed maximum of %d", cfg.MaxTurns), nil)
	}

	for i, turn := range turns {
		if turn.Role != RoleUser && turn.Role != RoleAssistant {
			return NewCompletionError(
				fmt.Sprintf("turn %d: invalid role %q", i, turn.Role), nil)
		}
		if len(turn.Content) == 0 {
			return NewCompletionError(
				fmt.Sprintf("turn %d: content must contain at least one part", i), nil)
		}
		for j, part := range turn.Content {
			if err := validatePart(i, j, part, cfg); err != nil {
				return err
			}
		}
	}

	return nil
}

func validatePart(turn, idx int, part ContentPart, cfg ValidationConfig) *Error {
	switch part.Type {
	case ContentTypeText:
		if cfg.MaxContentSize > 0 && len(part.Text) > cfg.MaxContentSize {
			return NewCompletionError(
				fmt.Sprintf("turn %d part %d: text exceeds maximum of %d bytes", turn, idx, cfg.MaxContentSize), nil)
		}
	case ContentTypeImage:
		if part.MediaType == "" {
			return NewCompletionError(
				fmt.Sprintf("turn %d part %d: image part requires a media type", turn, idx), nil)
		}
		if part.Data == "" {
			return NewCompletionError(
				fmt.Sprintf("turn %d part %d: image part requires data", turn, idx), nil)
		}
		if cfg.MaxContentSize > 0 && len(part.Data) > cfg.MaxContentSize {
			return NewCompletionError(
				fmt.Sprintf("turn %d part %d: image data exceeds maximum of %d bytes", turn, idx, cfg.MaxContentSize), nil)
		}
	default:
		return NewCompletionError(
			fmt.Sprintf("turn %d part %d: invalid content type %q", turn, idx, part.Type), nil)
	}
	return nil
}
