// Package handler runs one fetch, filter, format and notify pass and reports
// the outcome as a status code plus JSON body.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"ipo-notifier/config"
	"ipo-notifier/ipo"
	"ipo-notifier/model"
	"ipo-notifier/utils"
)

const SentMessage = "Sent IPO list to ntfy"

type Source interface {
	Fetch(ctx context.Context) (*ipo.FetchResult, error)
}

type Sender interface {
	SendNotification(ctx context.Context, ntf *model.Notification) error
}

type Handler struct {
	Topic    string
	Source   Source
	Notifier Sender
	Now      func() time.Time
}

func New(cfg *config.Config) *Handler {
	return &Handler{
		Topic:    cfg.NtfyTopic,
		Source:   ipo.NewFetcher(cfg.IPOSourceURL, cfg.RequestTimeout),
		Notifier: utils.NewNotifier(cfg.RequestTimeout),
		Now:      time.Now,
	}
}

// Run never returns an error: every failure becomes a 500 result.
func (h *Handler) Run(ctx context.Context) model.Result {
	count, err := h.run(ctx)
	if err != nil {
		slog.Error("ipo notifier failed", slog.Any("error", err))
		return Failure(err)
	}
	return result(http.StatusOK, model.SuccessBody{Message: SentMessage, Count: count})
}

func (h *Handler) run(ctx context.Context) (int, error) {
	fetched, err := h.Source.Fetch(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	today := now()
	slog.Info("matching IPOs", slog.String("date", ipo.FormatDate(today)),
		slog.Int("listed", len(fetched.Items)))

	matches := ipo.Match(fetched.Items, today)
	title, body := ipo.Format(matches)
	slog.Info("sending notification", slog.String("title", title), slog.Int("count", len(matches)))

	err = h.Notifier.SendNotification(ctx, &model.Notification{
		Topic:   h.Topic,
		Title:   title,
		Message: body,
	})
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

// Failure converts err into a 500 result.
func Failure(err error) model.Result {
	return result(http.StatusInternalServerError, model.ErrorBody{Error: err.Error()})
}

func result(status int, body any) model.Result {
	encoded, err := json.Marshal(body)
	if err != nil {
		return model.Result{StatusCode: http.StatusInternalServerError, Body: `{"error":"encode result"}`}
	}
	return model.Result{StatusCode: status, Body: string(encoded)}
}
