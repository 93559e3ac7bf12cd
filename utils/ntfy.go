package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ipo-notifier/model"
)

const NtfyBaseURL = "https://ntfy.sh/"

// NotifyDeliveryError is returned when ntfy could not be reached or refused the message.
type NotifyDeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *NotifyDeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("can't send notification to ntfy: %v", e.Err)
	}
	return fmt.Sprintf("ntfy returned %d: %s", e.StatusCode, e.Body)
}

func (e *NotifyDeliveryError) Unwrap() error { return e.Err }

type Notifier struct {
	BaseURL string
	Client  *http.Client
}

func NewNotifier(timeout time.Duration) *Notifier {
	return &Notifier{
		BaseURL: NtfyBaseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// SendNotification posts ntf to its topic. It is not retried.
func (n *Notifier) SendNotification(ctx context.Context, ntf *model.Notification) error {
	endpoint := n.BaseURL + url.PathEscape(ntf.Topic)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(ntf.Message))
	if err != nil {
		return &NotifyDeliveryError{Err: err}
	}

	req.Header.Set("Content-Type", "text/plain")
	if ntf.Title != "" {
		req.Header.Set("Title", ntf.Title)
	}

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		slog.Error("can't send request to NTFY", slog.String("error", err.Error()))
		return &NotifyDeliveryError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		slog.Error("NTFY error response", slog.String("status", resp.Status),
			slog.String("body", string(bodyBytes)))
		return &NotifyDeliveryError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(bodyBytes))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	slog.Debug("notification sent to NTFY", slog.String("topic", ntf.Topic))
	return nil
}
