package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// NotifyService posts plain-text messages to the configured messaging
// webhook. Without a webhook URL it degrades to log-only mode.
type NotifyService struct {
	webhookURL string
	channelID  string
	client     *http.Client
}

func NewNotifyService(webhookURL, channelID string) *NotifyService {
	return &NotifyService{
		webhookURL: webhookURL,
		channelID:  channelID,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *NotifyService) Send(ctx context.Context, content string) error {
	if s.webhookURL == "" {
		slog.Info("webhook message (log mode)", "content", content)
		return nil
	}

	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return err
	}

	url := s.webhookURL
	if s.channelID != "" {
		url += "?thread_id=" + s.channelID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook post returned status %d", resp.StatusCode)
	}

	return nil
}
