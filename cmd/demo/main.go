// Command demo sends one completion request through the strom adapter and
// streams the reply to stdout.
//
// Credentials and endpoint come from the layered config (strom.yaml,
// STROM_* environment variables); the prompt comes from flags:
//
//	demo -prompt "Name three rivers." [-system "..."] [-model ID] [-config PATH]
//
// Reply text goes to stdout, logs and the usage summary to stderr, so the
// output can be piped.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhuss/strom/pkg/api"
	"github.com/rhuss/strom/pkg/auth"
	"github.com/rhuss/strom/pkg/chat"
	"github.com/rhuss/strom/pkg/config"
	"github.com/rhuss/strom/pkg/debug"
	"github.com/rhuss/strom/pkg/tokenizer"
)

func main() {
	if err := run(); err != nil {
		slog.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file path (default: discovered)")
	prompt := flag.String("prompt", "Say hello in one short sentence.", "user prompt")
	system := flag.String("system", "", "system prompt")
	model := flag.String("model", "", "model ID (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *model != "" {
		cfg.Model = *model
	}

	debug.Init(cfg.Debug.Categories, cfg.Debug.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics)
	}

	var estimator tokenizer.Estimator
	if cfg.Tokenizer.Enabled {
		cached, err := tokenizer.NewCached(tokenizer.New(cfg.Model), cfg.Tokenizer.CacheSize)
		if err != nil {
			return fmt.Errorf("creating estimator: %w", err)
		}
		defer cached.Close()
		estimator = cached
	}

	handler, err := chat.New(ctx, chat.Config{
		Credential: auth.Credential{
			Key:    cfg.Credentials.Key,
			Secret: cfg.Credentials.Secret,
		},
		Model:             cfg.Model,
		BaseURL:           cfg.API.BaseURL,
		Estimator:         estimator,
		DisableEstimation: !cfg.Tokenizer.Enabled,
	})
	if err != nil {
		return fmt.Errorf("creating handler: %w", err)
	}
	defer handler.Close()

	desc := handler.Model()
	slog.Info("handler ready",
		"model", desc.ID,
		"context_window", desc.Limits.ContextWindow,
		"max_output_tokens", desc.Limits.MaxOutputTokens)

	reqCtx := ctx
	if cfg.API.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, cfg.API.Timeout)
		defer cancel()
	}

	stream, err := handler.CreateMessage(reqCtx, *system, []api.Turn{api.UserTurn(*prompt)})
	if err != nil {
		return err
	}
	defer stream.Close()

	var usage api.Usage
	for {
		ev, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Println()
			return err
		}

		switch ev.Kind {
		case api.EventText:
			fmt.Print(ev.Text)
		case api.EventUsage:
			mergeUsage(&usage, ev.Usage)
		}
	}
	fmt.Println()

	logUsage(usage)
	return nil
}

func serveMetrics(cfg config.MetricsConfig) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.Handler())

	slog.Info("metrics endpoint starting", "addr", cfg.Addr, "path", cfg.Path)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("metrics endpoint failed", "error", err)
	}
}

func mergeUsage(total *api.Usage, u *api.Usage) {
	if u == nil {
		return
	}
	if u.InputTokens > 0 {
		total.InputTokens = u.InputTokens
	}
	if u.OutputTokens > 0 {
		total.OutputTokens = u.OutputTokens
	}
	if u.CacheWriteTokens != nil {
		total.CacheWriteTokens = u.CacheWriteTokens
	}
	if u.CacheReadTokens != nil {
		total.CacheReadTokens = u.CacheReadTokens
	}
}

func logUsage(usage api.Usage) {
	args := []any{
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
	}
	if usage.CacheWriteTokens != nil {
		args = append(args, "cache_write_tokens", *usage.CacheWriteTokens)
	}
	if usage.CacheReadTokens != nil {
		args = append(args, "cache_read_tokens", *usage.CacheReadTokens)
	}
	slog.Info("completion finished", args...)
}
