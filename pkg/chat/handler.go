package chat

import (
	"context"
	"log/slog"

	"github.com/rhuss/strom/pkg/api"
	"github.com/rhuss/strom/pkg/auth"
	"github.com/rhuss/strom/pkg/auth/token"
	"github.com/rhuss/strom/pkg/catalog"
	"github.com/rhuss/strom/pkg/debug"
	"github.com/rhuss/strom/pkg/messages"
	"github.com/rhuss/strom/pkg/observability"
	"github.com/rhuss/strom/pkg/tokenizer"
)

// defaultWarnFraction is the share of the context window at which the
// estimated prompt size triggers a warning.
const defaultWarnFraction = 0.8

// Config holds handler construction parameters. Credential is required;
// everything else has a working default.
type Config struct {
	// Credential identifies the caller. Authentication happens once,
	// during New.
	Credential auth.Credential

	// Model selects the model by ID. Empty selects the catalog default;
	// unknown IDs are passed through with conservative limits.
	Model string

	// BaseURL overrides the backend endpoint, for tests and proxies.
	BaseURL string

	// Authenticator turns the credential into a session. If nil, the
	// token authenticator is used.
	Authenticator auth.Authenticator

	// Logger receives handler logs. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Estimator overrides the prompt-size estimator. If nil, a cached
	// tiktoken estimator for the selected model is used.
	Estimator tokenizer.Estimator

	// DisableEstimation turns prompt-size estimation off entirely.
	DisableEstimation bool

	// WarnFraction overrides the context-window share that triggers a
	// size warning. Values outside (0, 1] select the default.
	WarnFraction float64

	// Validation overrides the conversation limits. The zero value
	// selects the defaults.
	Validation api.ValidationConfig
}

// Handler is a chat completion handler bound to one credential and one
// model. Handlers are safe for concurrent use; each CreateMessage call
// produces an independent stream.
type Handler struct {
	model        api.ModelDescriptor
	session      *auth.Session
	client       *messages.Client
	estimator    tokenizer.Estimator
	logger       *slog.Logger
	warnFraction float64
	validation   api.ValidationConfig
}

// New creates a handler and establishes its session. Authentication is
// eager: a failure here is the only way to observe one, and the returned
// handler is fully usable. The model descriptor is fixed at this point
// and never changes.
func New(ctx context.Context, cfg Config) (*Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	desc := catalog.Resolve(cfg.Model)

	authenticator := cfg.Authenticator
	if authenticator == nil {
		authenticator = token.New(token.Config{Logger: logger})
	}

	session, err := authenticator.Authenticate(ctx, cfg.Credential)
	if err != nil {
		return nil, err
	}

	estimator := cfg.Estimator
	if estimator == nil && !cfg.DisableEstimation {
		cached, err := tokenizer.NewCached(tokenizer.New(desc.ID), 0)
		if err != nil {
			// Estimation is advisory; losing it costs only the warning.
			logger.Warn("prompt estimation disabled", "error", err)
		} else {
			estimator = cached
		}
	}

	warnFraction := cfg.WarnFraction
	if warnFraction <= 0 || warnFraction > 1 {
		warnFraction = defaultWarnFraction
	}

	validation := cfg.Validation
	if validation == (api.ValidationConfig{}) {
		validation = api.DefaultValidationConfig()
	}

	debug.Log("chat", "handler created", "model", desc.ID)

	return &Handler{
		model:        desc,
		session:      session,
		client:       messages.NewClient(messages.Config{BaseURL: cfg.BaseURL}, session),
		estimator:    estimator,
		logger:       logger,
		warnFraction: warnFraction,
		validation:   validation,
	}, nil
}

// CreateMessage submits one completion request and returns its event
// stream. The conversation is validated and annotated before submission;
// the handler itself is never invalidated by a failed call. A handler
// without a session rejects the call before any I/O happens.
func (h *Handler) CreateMessage(ctx context.Context, system string, turns []api.Turn) (*messages.Stream, error) {
	if h.session == nil {
		return nil, api.NewNotAuthenticatedError()
	}

	if err := api.ValidateTurns(turns, h.validation); err != nil {
		return nil, err
	}
	if err := catalog.ValidateContent(h.model, turns); err != nil {
		return nil, err
	}

	h.estimatePrompt(system, turns)

	debug.Log("chat", "create message", "model", h.model.ID, "turns", len(turns))
	return h.client.CreateMessage(ctx, h.model, system, turns)
}

// Model returns the descriptor selected at construction. The value is
// stable for the handler's lifetime.
func (h *Handler) Model() api.ModelDescriptor {
	return h.model
}

// Close releases handler-owned resources. In-flight streams are not
// affected; they hold their own connections.
func (h *Handler) Close() {
	if closer, ok := h.estimator.(interface{ Close() }); ok {
		closer.Close()
	}
}

// estimatePrompt records the advisory prompt size and warns when the
// conversation approaches the context window. A broken estimator only
// loses the warning, never the completion.
func (h *Handler) estimatePrompt(system string, turns []api.Turn) {
	if h.estimator == nil {
		return
	}

	count, err := tokenizer.EstimateConversation(h.estimator, system, turns)
	if err != nil {
		debug.Log("tokens", "estimation failed", "error", err)
		return
	}

	observability.EstimatedPromptTokens.WithLabelValues(h.model.ID).Observe(float64(count))
	debug.Log("tokens", "prompt estimated",
		"tokens", count,
		"context_window", h.model.Limits.ContextWindow)

	if window := h.model.Limits.ContextWindow; window > 0 {
		if float64(count) >= h.warnFraction*float64(window) {
			h.logger.Warn("prompt approaching context window",
				"model", h.model.ID,
				"estimated_tokens", count,
				"context_window", window)
		}
	}
}
