package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"awardsearch-service/internal/domain/repository"
	"awardsearch-service/pkg/logger"
)

// HTTPNotifier pushes result text to the chat gateway, which owns rendering
// and delivery to the user's chat platform
type HTTPNotifier struct {
	logger      logger.Logger
	endpoint    string
	bearerToken string
	client      *http.Client
}

// NewHTTPNotifier creates a new chat-gateway notifier
func NewHTTPNotifier(endpoint, bearerToken string, log logger.Logger) repository.Notifier {
	return &HTTPNotifier{
		logger:      log,
		endpoint:    endpoint,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type notifyMessage struct {
	ChatID int64  `json:"chatId"`
	Text   string `json:"text"`
}

// SendMessage posts one text message to the gateway
func (n *HTTPNotifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	if n.endpoint == "" {
		n.logger.Warn("notify endpoint not configured, dropping message", "chatId", chatID)
		return nil
	}

	jsonData, err := json.Marshal(notifyMessage{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("chat gateway returned status %d: %v", resp.StatusCode, errorBody)
	}

	return nil
}
