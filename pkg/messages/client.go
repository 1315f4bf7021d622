package messages

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/rhuss/strom/pkg/api"
	"github.com/rhuss/strom/pkg/auth"
	"github.com/rhuss/strom/pkg/debug"
	"github.com/rhuss/strom/pkg/transport"
)

// Client submits completion requests to a Messages API backend and exposes
// each response as a normalized event stream. The session's HTTP client
// carries authentication; Client only adds protocol headers.
type Client struct {
	config  Config
	session *auth.Session
}

// NewClient creates a Messages client bound to an authenticated session.
func NewClient(config Config, session *auth.Session) *Client {
	config.applyDefaults()
	return &Client{
		config:  config,
		session: session,
	}
}

// CreateMessage submits one completion request and returns its stream.
// All failures map to completion errors: a non-2xx status, a connection
// failure, and anything that goes wrong after streaming starts. The
// returned stream must be closed by the caller unless drained to io.EOF.
//
// The request context governs the whole exchange. Cancelling it tears
// down the connection and fails the stream.
func (c *Client) CreateMessage(ctx context.Context, desc api.ModelDescriptor, system string, turns []api.Turn) (*Stream, error) {
	req := buildRequest(desc, system, turns)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, api.NewCompletionError("encoding request", err)
	}

	// One request ID correlates this call's log lines with the
	// X-Request-ID header the transport middleware stamps.
	requestID := api.NewRequestID()
	ctx = transport.ContextWithRequestID(ctx, requestID)

	debug.Log("messages", "completion request",
		"request_id", requestID,
		"model", desc.ID,
		"turns", len(turns),
		"max_tokens", req.MaxTokens)
	if debug.Enabled("messages") {
		debug.Raw("messages", string(body))
	}

	// The stream outlives this call, so it gets its own cancellation
	// scope. Stream.Close and the consumer goroutine both release it.
	streamCtx, cancel := context.WithCancel(ctx)

	httpReq, err := http.NewRequestWithContext(streamCtx, http.MethodPost,
		c.config.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, api.NewCompletionError("building request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set(headerAPIVersion, c.config.APIVersion)
	httpReq.Header.Set(headerBeta, c.config.Beta)

	httpResp, err := c.session.Client.Do(httpReq)
	if err != nil {
		cancel()
		return nil, mapNetworkError(err)
	}

	// Error statuses carry a JSON body instead of a stream.
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		mapped := mapHTTPError(httpResp)
		httpResp.Body.Close()
		cancel()
		return nil, mapped
	}

	s := newStream(cancel, desc.ID)
	go s.run(streamCtx, httpResp.Body)
	return s, nil
}
