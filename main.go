package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/lmittmann/tint"

	"ipo-notifier/config"
	"ipo-notifier/handler"
	"ipo-notifier/model"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".")
	if err != nil {
		setupLogger(config.DefaultLogLevel)
		slog.Error("can't load config", slog.Any("error", err))
		os.Exit(report(handler.Failure(err)))
	}
	setupLogger(cfg.LogLevel)

	res := handler.New(cfg).Run(ctx)
	stop()
	os.Exit(report(res))
}

// report prints res to stdout and returns the process exit code for it.
func report(res model.Result) int {
	out, err := json.Marshal(res)
	if err != nil {
		slog.Error("can't encode result", slog.Any("error", err))
		return 1
	}
	fmt.Println(string(out))
	if res.StatusCode != http.StatusOK {
		return 1
	}
	return 0
}

func setupLogger(level string) *slog.Logger {
	envLogLevel := strings.ToLower(level)
	var slogLevel slog.Level
	err := slogLevel.UnmarshalText([]byte(envLogLevel))
	if err != nil {
		log.Printf("encountered log level: '%s'. The package does not support custom log levels", envLogLevel)
		slogLevel = slog.LevelDebug
	}

	replaceAttrs := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.SourceKey {
			source := a.Value.Any().(*slog.Source)
			source.File = filepath.Base(source.File)
		}
		return a
	}

	// stdout carries the result line, logs go to stderr
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		AddSource:   true,
		Level:       slogLevel,
		ReplaceAttr: replaceAttrs,
	}))

	slog.SetDefault(logger)
	logger.Debug("debug messages are enabled")

	return logger
}
