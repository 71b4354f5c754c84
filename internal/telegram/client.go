// Package telegram pushes new-lead alerts to the sales channel via the
// Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"aurora_leads_backend/internal/leads/domain"
	"aurora_leads_backend/platform/config"
	"aurora_leads_backend/platform/logger"
)

const defaultBaseURL = "https://api.telegram.org"

// Client sends messages to a fixed Telegram chat. A nil Client is valid and
// silently drops every notification; NewClient returns nil when the bot token
// or chat ID is not configured.
type Client struct {
	baseURL string
	token   string
	chatID  string
	http    *http.Client
	log     *logger.Logger
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// NewClient creates a Telegram client, or nil when not configured.
func NewClient(cfg config.TelegramConfig, log *logger.Logger) *Client {
	if cfg.GetTelegramBotToken() == "" || cfg.GetTelegramChatID() == "" {
		return nil
	}

	return &Client{
		baseURL: defaultBaseURL,
		token:   cfg.GetTelegramBotToken(),
		chatID:  cfg.GetTelegramChatID(),
		http:    &http.Client{Timeout: 5 * time.Second},
		log:     log,
	}
}

// NotifyLead alerts the sales channel about a freshly processed lead.
func (c *Client) NotifyLead(ctx context.Context, record domain.LeadRecord) error {
	if c == nil {
		return nil
	}

	payload := sendMessageRequest{
		ChatID: c.chatID,
		Text:   FormatLeadAlert(record),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	c.log.Info("telegram lead alert sent", "lead_id", record.ID)
	return nil
}

// FormatLeadAlert renders the sales-channel message for one lead.
func FormatLeadAlert(record domain.LeadRecord) string {
	message := record.Message
	if len(message) > 100 {
		message = message[:100]
	}

	return fmt.Sprintf(`🔔 New Lead Alert

👤 %s from %s
📧 %s
🎯 Intent: %s
⭐ Score: %d/10
⚡ Response: %dms

Message: %s...`,
		record.Name, record.Company, record.Email,
		record.Intent, record.Score, record.ResponseTimeMs, message)
}
