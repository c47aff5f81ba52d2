package repository

import "context"

// Notifier defines the interface for pushing result text to the user's chat.
// Rendering beyond the raw text is owned by the chat gateway, not the core.
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}
