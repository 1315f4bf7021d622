// Command mock-backend runs a deterministic Messages API server for
// conformance testing. It classifies the request content and replays a
// predictable event stream, covering the scenarios the adapter has to
// normalize: single and multi-block replies, prompt cache counters, and
// mid-stream provider errors.
//
// Configuration:
//
//	MOCK_PORT - Listen port (default: 9091)
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rhuss/strom/pkg/api"
)

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "9091"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/messages", handleMessages)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	srv := &http.Server{Addr: ":" + port, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock backend starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock backend failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock backend shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

// --- Request types ---

type messagesRequest struct {
	Model     string         `json:"model"`
	MaxTokens int            `json:"max_tokens"`
	System    []contentBlock `json:"system"`
	Messages  []turnParam    `json:"messages"`
	Stream    bool           `json:"stream"`
}

type turnParam struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type         string          `json:"type"`
	Text         string          `json:"text"`
	CacheControl json.RawMessage `json:"cache_control"`
}

// --- Handler ---

func handleMessages(w http.ResponseWriter, r *http.Request) {
	var req messagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_error", "request body is not valid JSON")
		return
	}
	if !req.Stream {
		writeError(w, http.StatusBadRequest, "invalid_request_error", "this mock only serves streaming requests")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request_error", "messages must not be empty")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	model := req.Model
	if model == "" {
		model = "mock-model"
	}

	s := sender{w: w, flusher: flusher}
	prompt := strings.ToLower(lastUserText(&req))

	// message_start with the usage snapshot. Cache counters appear only
	// when the request actually carried cache markers, mirroring how the
	// real backend gates them on the caching feature.
	startUsage := map[string]any{
		"input_tokens":  estimateInput(&req),
		"output_tokens": 0,
	}
	if hasCacheMarkers(&req) {
		startUsage["cache_creation_input_tokens"] = 24
		startUsage["cache_read_input_tokens"] = 0
	}
	s.send("message_start", map[string]any{
		"type": "message_start",
		"message": map[string]any{
			"id":    api.NewMessageID(),
			"role":  "assistant",
			"model": model,
			"usage": startUsage,
		},
	})

	// Mid-stream provider failure scenario.
	if strings.Contains(prompt, "trigger overload") {
		s.block(0, "One moment")
		s.send("error", map[string]any{
			"type": "error",
			"error": map[string]any{
				"type":    "overloaded_error",
				"message": "Overloaded",
			},
		})
		return
	}

	blocks := classify(prompt)
	outputTokens := 0
	for i, tokens := range blocks {
		outputTokens += len(tokens)
		s.block(i, tokens...)
	}

	s.send("message_delta", map[string]any{
		"type":  "message_delta",
		"delta": map[string]any{"stop_reason": "end_turn"},
		"usage": map[string]any{"output_tokens": outputTokens},
	})
	s.send("message_stop", map[string]any{"type": "message_stop"})
}

// classify picks the reply token blocks for a prompt.
func classify(prompt string) [][]string {
	switch {
	case strings.Contains(prompt, "count from 1 to 5"):
		return [][]string{{"1", ", 2", ", 3", ", 4", ", 5"}}
	case strings.Contains(prompt, "two paragraphs"):
		return [][]string{
			{"First", " paragraph."},
			{"Second", " paragraph."},
		}
	default:
		return [][]string{{"Hello,", " nice", " day!"}}
	}
}

// --- Streaming ---

type sender struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func (s sender) send(event string, payload map[string]any) {
	data, _ := json.Marshal(payload)
	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data)
	s.flusher.Flush()
}

// block emits a full content block lifecycle: start with the first token
// as initial text, one delta per remaining token, then the stop.
func (s sender) block(index int, tokens ...string) {
	initial := ""
	if len(tokens) > 0 {
		initial = tokens[0]
		tokens = tokens[1:]
	}

	s.send("content_block_start", map[string]any{
		"type":  "content_block_start",
		"index": index,
		"content_block": map[string]any{
			"type": "text",
			"text": initial,
		},
	})
	for _, token := range tokens {
		s.send("content_block_delta", map[string]any{
			"type":  "content_block_delta",
			"index": index,
			"delta": map[string]any{
				"type": "text_delta",
				"text": token,
			},
		})
	}
	s.send("content_block_stop", map[string]any{
		"type":  "content_block_stop",
		"index": index,
	})
}

// --- Helpers ---

func writeError(w http.ResponseWriter, status int, errType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"type": "error",
		"error": map[string]any{
			"type":    errType,
			"message": message,
		},
	})
}

func lastUserText(req *messagesRequest) string {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role != "user" {
			continue
		}
		for _, block := range req.Messages[i].Content {
			if block.Type == "text" {
				return block.Text
			}
		}
	}
	return ""
}

func hasCacheMarkers(req *messagesRequest) bool {
	for _, block := range req.System {
		if len(block.CacheControl) > 0 {
			return true
		}
	}
	for _, msg := range req.Messages {
		for _, block := range msg.Content {
			if len(block.CacheControl) > 0 {
				return true
			}
		}
	}
	return false
}

// estimateInput counts request text very roughly, four characters per
// token, so different prompts yield different input counts.
func estimateInput(req *messagesRequest) int {
	chars := 0
	for _, block := range req.System {
		chars += len(block.Text)
	}
	for _, msg := range req.Messages {
		for _, block := range msg.Content {
			chars += len(block.Text)
		}
	}
	return chars/4 + 1
}
