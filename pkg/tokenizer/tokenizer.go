// Package tokenizer provides advisory prompt-size estimation for the strom
// adapter.
//
// Estimates are approximate: Claude models do not publish their tokenizer,
// so text is counted with tiktoken's cl100k_base encoding as a stand-in.
// The estimate exists to warn before a conversation approaches the model's
// context window; it never gates or truncates a request.
package tokenizer

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Estimator estimates the token count of a text span.
type Estimator interface {
	EstimateText(text string) (int, error)
}

// Encoding names used by tiktoken.
const (
	EncodingCL100kBase = "cl100k_base"
	EncodingO200kBase  = "o200k_base"
)

// modelEncoding pairs a model ID prefix with its encoding.
type modelEncoding struct {
	prefix   string
	encoding string
}

// modelEncodings lists model prefixes and their encodings.
// Ordered by prefix length (longest first) to ensure correct matching.
var modelEncodings = []modelEncoding{
	{"claude-3-5", EncodingCL100kBase},
	{"claude-3", EncodingCL100kBase},
	{"claude", EncodingCL100kBase},
}

// Tiktoken implements Estimator using tiktoken-go.
type Tiktoken struct {
	encodingName string

	mu        sync.RWMutex
	encodings map[string]*tiktoken.Tiktoken
}

// New creates an estimator for the given model ID.
func New(model string) *Tiktoken {
	return &Tiktoken{
		encodingName: resolveEncoding(model),
		encodings:    make(map[string]*tiktoken.Tiktoken),
	}
}

// EstimateText counts tokens in a text string.
func (t *Tiktoken) EstimateText(text string) (int, error) {
	enc, err := t.getEncoding(t.encodingName)
	if err != nil {
		return 0, err
	}
	tokens := enc.Encode(text, nil, nil)
	return len(tokens), nil
}

// getEncoding returns the tiktoken encoding by name, with caching.
func (t *Tiktoken) getEncoding(name string) (*tiktoken.Tiktoken, error) {
	// Check cache first
	t.mu.RLock()
	enc, ok := t.encodings[name]
	t.mu.RUnlock()
	if ok {
		return enc, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Double-check after acquiring write lock
	if enc, ok = t.encodings[name]; ok {
		return enc, nil
	}

	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, err
	}
	t.encodings[name] = enc
	return enc, nil
}

// resolveEncoding determines the encoding name for a model.
func resolveEncoding(model string) string {
	modelLower := strings.ToLower(model)

	for _, me := range modelEncodings {
		if strings.HasPrefix(modelLower, me.prefix) {
			return me.encoding
		}
	}

	// Unknown models get cl100k_base as the closest general-purpose encoding.
	return EncodingCL100kBase
}
