// Package messages implements the streaming adapter for Anthropic-style
// Messages API backends.
//
// The package owns both directions of the boundary. Outbound, it shapes a
// conversation into the provider request: wire content blocks, the model's
// output limit, temperature zero, and the cache-affinity markers (system
// prompt always, plus the final content part of the last two user turns).
// Inbound, it consumes the provider's SSE event stream and republishes it
// as the normalized [api.Event] vocabulary.
//
// Normalization is a pure per-event translation:
//
//	message_start         -> usage snapshot (cache counters only when present)
//	message_delta         -> usage snapshot (output delta)
//	content_block_start   -> "\n" separator for blocks after the first, then initial text
//	content_block_delta   -> text fragment (text_delta only)
//	anything else         -> nothing
//
// A provider error event, a malformed payload, or a transport failure ends
// the stream with a completion error; events already emitted remain valid.
//
// Streams are pull-based: [Stream.Recv] yields events in arrival order and
// io.EOF after a clean end, [Stream.Close] abandons an in-flight stream.
// The response body is released exactly once on every exit path.
package messages
